package domain

import "time"

// Configuration is a plan file: any combination of the four calculator inputs
type Configuration struct {
	Snapshot *FinancialSnapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Goal     *GoalRequest       `json:"goal,omitempty" yaml:"goal,omitempty"`
	Scenario *ScenarioRequest   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Wealth   *WealthProfile     `json:"wealth,omitempty" yaml:"wealth,omitempty"`
}

// IsEmpty reports whether no section is present
func (c *Configuration) IsEmpty() bool {
	return c == nil || (c.Snapshot == nil && c.Goal == nil && c.Scenario == nil && c.Wealth == nil)
}

// Report aggregates whichever calculator results a plan produced
type Report struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Source      string              `json:"source,omitempty"`
	Health      *HealthAssessment   `json:"health,omitempty"`
	Goal        *GoalPlan           `json:"goal,omitempty"`
	Scenarios   *ScenarioComparison `json:"scenarios,omitempty"`
	Wealth      *WealthPlan         `json:"wealth,omitempty"`
	Assumptions []string            `json:"assumptions"`
}
