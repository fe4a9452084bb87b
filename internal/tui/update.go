package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loadingMessage = "Running plan..."
		return m, runPlanCmd(m.engine, msg.Config, m.configPath)

	case ReportReadyMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.report = msg.Report
		m.activeTab = firstPopulatedTab(msg.Report)
		return m, nil

	case ScenariosReadyMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.seed = msg.Seed
		if m.report != nil {
			m.report.Scenarios = msg.Comparison
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any other key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Next):
		m.activeTab = Tabs[(int(m.activeTab)+1)%len(Tabs)]

	case key.Matches(msg, m.keys.Prev):
		m.activeTab = Tabs[(int(m.activeTab)-1+len(Tabs))%len(Tabs)]

	case key.Matches(msg, m.keys.Jump):
		m.activeTab = Tabs[int(msg.Runes[0]-'1')]

	case key.Matches(msg, m.keys.Rerun):
		if m.activeTab == TabScenarios && m.config != nil && m.config.Scenario != nil && !m.loading {
			m.loading = true
			m.loadingMessage = "Re-running scenarios..."
			return m, rerunScenariosCmd(m.engine, *m.config.Scenario, m.seed+1)
		}
	}

	return m, nil
}
