package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

const testPlan = "../config/testdata/plan.yaml"

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	engine.Sources = calculation.SeededSources(1)
	return NewModel(testPlan, engine)
}

// loadedModel runs the load and plan commands the way the program would
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)

	msg := m.Init()()
	require.IsType(t, ConfigLoadedMsg{}, msg)
	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)

	next, _ = next.Update(cmd())
	loaded := next.(Model)
	require.NoError(t, loaded.err)
	require.NotNil(t, loaded.report)
	return loaded
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel("plan.yaml", nil)
	assert.NotNil(t, m.engine)
	assert.True(t, m.loading)
	assert.Equal(t, TabHealth, m.activeTab)
	assert.Contains(t, m.View(), "Loading plan...")
}

func TestModel_LoadAndRunPlan(t *testing.T) {
	m := loadedModel(t)

	assert.False(t, m.loading)
	assert.NotNil(t, m.report.Health)
	assert.NotNil(t, m.report.Goal)
	assert.NotNil(t, m.report.Scenarios)
	assert.NotNil(t, m.report.Wealth)
	assert.Equal(t, TabHealth, m.activeTab)
}

func TestModel_LoadMissingFile(t *testing.T) {
	m := NewModel("does-not-exist.yaml", nil)
	msg := m.Init()()
	require.IsType(t, ErrorMsg{}, msg)

	next, _ := m.Update(msg)
	got := next.(Model)
	assert.False(t, got.loading)
	assert.Error(t, got.err)
	assert.Contains(t, got.View(), "Error:")
}

func TestModel_TabNavigation(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabGoal, m.activeTab)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, TabScenarios, m.activeTab)

	m, _ = press(m, runes("1"))
	assert.Equal(t, TabHealth, m.activeTab)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, TabWealth, m.activeTab, "previous wraps around")

	m, _ = press(m, runes("3"))
	assert.Equal(t, TabScenarios, m.activeTab)
}

func TestModel_RerunScenarios(t *testing.T) {
	m := loadedModel(t)
	before := m.report.Scenarios

	_, cmd := press(m, runes("r"))
	assert.Nil(t, cmd, "re-run only applies on the scenarios tab")

	m, _ = press(m, runes("3"))
	m, cmd = press(m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	msg := cmd()
	ready, ok := msg.(ScenariosReadyMsg)
	require.True(t, ok)
	assert.Equal(t, int64(1), ready.Seed)

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.False(t, m.loading)
	assert.Equal(t, int64(1), m.seed)
	assert.NotSame(t, before, m.report.Scenarios)
	assert.Contains(t, m.View(), "seed 1")
}

func TestModel_ErrorDismissedByKey(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(ErrorMsg{Err: errors.New("bad things")})
	m = next.(Model)
	assert.Contains(t, m.View(), "bad things")

	m, _ = press(m, runes("2"))
	assert.NoError(t, m.err)
	assert.Equal(t, TabHealth, m.activeTab, "the dismissing key is not acted on")
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m := loadedModel(t)
	assert.False(t, m.help.ShowAll)
	m, _ = press(m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "re-run scenarios")
}

func TestModel_ViewPerTab(t *testing.T) {
	m := loadedModel(t)
	m.width = 100

	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabHealth, []string{"Financial health", "Savings rate", "Emergency fund"}},
		{TabGoal, []string{"Monthly savings", "Projected balance"}},
		{TabScenarios, []string{"Conservative", "Aggressive", "Yearly balance by risk tier", "initial run"}},
		{TabWealth, []string{"Net worth", "At retirement", "Recommended allocation"}},
	}
	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m.activeTab = tt.tab
			out := m.View()
			assert.Contains(t, out, "FINPLAN")
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestModel_ViewMissingSection(t *testing.T) {
	m := NewModel(testPlan, nil)
	m.loading = false
	m.report = &domain.Report{}
	m.activeTab = TabWealth
	assert.Contains(t, m.View(), "This plan has no wealth section")
}

func TestFirstPopulatedTab(t *testing.T) {
	assert.Equal(t, TabHealth, firstPopulatedTab(nil))
	assert.Equal(t, TabHealth, firstPopulatedTab(&domain.Report{}))
	assert.Equal(t, TabScenarios, firstPopulatedTab(&domain.Report{Scenarios: &domain.ScenarioComparison{}}))
	assert.Equal(t, TabWealth, firstPopulatedTab(&domain.Report{Wealth: &domain.WealthPlan{}}))
}

func TestTab_String(t *testing.T) {
	assert.Equal(t, "Health", TabHealth.String())
	assert.Equal(t, "Wealth", TabWealth.String())
	assert.Equal(t, "Unknown", Tab(9).String())
}
