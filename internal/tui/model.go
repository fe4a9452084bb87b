package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Model represents the entire application state
type Model struct {
	activeTab Tab

	// Terminal dimensions
	width  int
	height int

	configPath string
	config     *domain.Configuration
	report     *domain.Report

	engine *calculation.CalculationEngine

	keys keyMap
	help help.Model

	// seed of the last scenario re-run; zero means the initial run
	seed int64

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a dashboard for the plan at configPath. A nil engine
// gets a default one.
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		activeTab:      TabHealth,
		configPath:     configPath,
		engine:         engine,
		keys:           defaultKeyMap(),
		help:           help.New(),
		loading:        true,
		loadingMessage: "Loading plan...",
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the plan file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// runPlanCmd runs every section of the plan
func runPlanCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, source string) tea.Cmd {
	return func() tea.Msg {
		report, err := engine.RunConfiguration(cfg, source)
		return ReportReadyMsg{Report: report, Err: err}
	}
}

// rerunScenariosCmd re-runs the scenario section with an explicit seed
func rerunScenariosCmd(engine *calculation.CalculationEngine, req domain.ScenarioRequest, seed int64) tea.Cmd {
	return func() tea.Msg {
		c, err := engine.SeededScenarios(req, seed)
		return ScenariosReadyMsg{Comparison: c, Seed: seed, Err: err}
	}
}

// firstPopulatedTab picks the first tab the report has data for
func firstPopulatedTab(r *domain.Report) Tab {
	switch {
	case r == nil:
		return TabHealth
	case r.Health != nil:
		return TabHealth
	case r.Goal != nil:
		return TabGoal
	case r.Scenarios != nil:
		return TabScenarios
	case r.Wealth != nil:
		return TabWealth
	}
	return TabHealth
}
