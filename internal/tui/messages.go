package tui

import (
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Tab is one of the dashboard's result views
type Tab int

const (
	TabHealth Tab = iota
	TabGoal
	TabScenarios
	TabWealth
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabHealth, TabGoal, TabScenarios, TabWealth}

func (t Tab) String() string {
	switch t {
	case TabHealth:
		return "Health"
	case TabGoal:
		return "Goal"
	case TabScenarios:
		return "Scenarios"
	case TabWealth:
		return "Wealth"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the plan file has been parsed
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ReportReadyMsg carries the result of running every section of the plan
type ReportReadyMsg struct {
	Report *domain.Report
	Err    error
}

// ScenariosReadyMsg carries a scenario re-run with a new seed
type ScenariosReadyMsg struct {
	Comparison *domain.ScenarioComparison
	Seed       int64
	Err        error
}
