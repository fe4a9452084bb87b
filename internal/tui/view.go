package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/tui/components"
)

var tierColors = map[domain.RiskTier]lipgloss.Color{
	domain.TierConservative: ColorChartLine1,
	domain.TierModerate:     ColorChartLine2,
	domain.TierAggressive:   ColorChartLine3,
}

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}

	var content string
	switch m.activeTab {
	case TabHealth:
		content = m.renderHealth()
	case TabGoal:
		content = m.renderGoal()
	case TabScenarios:
		content = m.renderScenarios()
	case TabWealth:
		content = m.renderWealth()
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar, tab bar and status bar
func (m Model) renderApp(content string) string {
	titleBar := TitleStyle.Render("FINPLAN - Financial Planning")
	if m.configPath != "" {
		titleBar = lipgloss.JoinHorizontal(lipgloss.Top, titleBar, SubtitleStyle.Render(m.configPath))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		m.renderTabBar(),
		content,
		StatusBarStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderTabBar() string {
	parts := make([]string, 0, len(Tabs))
	for i, t := range Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.activeTab {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) chartWidth() int {
	return min(max(m.width-4, 40), 100)
}

func missingSection(name string) string {
	return BorderStyle.Render(InfoStyle.Render(fmt.Sprintf("This plan has no %s section", name)))
}

func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(SectionStyle.Render(title))
	for _, item := range items {
		b.WriteString("\n  • " + item)
	}
	return b.String() + "\n"
}

func (m Model) renderHealth() string {
	if m.report == nil || m.report.Health == nil {
		return missingSection("snapshot")
	}
	a := m.report.Health
	b := a.Breakdown

	card := components.NewScoreCard("Financial health", a.Score, 100).
		WithNote(strings.ToUpper(string(a.Category)))

	bars := []string{
		components.NewScoreBar("Savings rate", b.SavingsRatePoints, 25).Render(),
		components.NewScoreBar("Debt management", b.DebtManagementPoints, 25).Render(),
		components.NewScoreBar("Emergency fund", b.EmergencyFundPoints, 20).Render(),
		components.NewScoreBar("Expense ratio", b.ExpenseRatioPoints, 15).Render(),
		components.NewScoreBar("Goal planning", b.GoalPlanningPoints, 15).Render(),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, card.Render(), "  ", strings.Join(bars, "\n")),
		bulletList("Strengths", a.Strengths),
		bulletList("Risk areas", a.RiskAreas),
		bulletList("Recommendations", a.Recommendations),
	)
}

func (m Model) renderGoal() string {
	if m.report == nil || m.report.Goal == nil {
		return missingSection("goal")
	}
	p := m.report.Goal

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Monthly savings", p.MonthlySavings, components.Money),
		components.NewMetricCard("Expected return", p.ExpectedAnnualReturn, components.Fraction),
		components.NewMetricCard("Final total", p.FinalTotal(), components.Money),
	}, 3)

	totals := make([]decimal.Decimal, len(p.MonthlyPlans))
	labels := make([]string, 0, len(p.MonthlyPlans)/12+1)
	for i, pt := range p.MonthlyPlans {
		totals[i] = pt.Total
		if pt.Month%12 == 0 {
			labels = append(labels, "y"+strconv.Itoa(pt.Month/12))
		}
	}
	chart := components.NewASCIIChart("Projected balance").
		AddSeries("Total", totals, ColorChartLine2).
		WithLabels(labels).
		WithSize(m.chartWidth(), 10)

	return lipgloss.JoinVertical(lipgloss.Left,
		InfoStyle.Render(p.Summary),
		cards,
		chart.Render(),
		bulletList("Milestones", p.Milestones),
		bulletList("Recommendations", p.Recommendations),
	)
}

func (m Model) renderScenarios() string {
	if m.report == nil || m.report.Scenarios == nil {
		return missingSection("scenario")
	}
	c := m.report.Scenarios

	cards := make([]*components.MetricCard, 0, len(domain.RiskTiers))
	for _, r := range c.Results() {
		cards = append(cards, components.NewMetricCard(r.Tier.Title(), r.FinalValue, components.Money).
			WithDelta(r.TotalReturn).
			WithNote(fmt.Sprintf("%s/yr, %s drawdown",
				output.FormatPercentage(r.AnnualizedReturn), output.FormatFraction(r.MaxDrawdown))).
			WithWidth(34))
	}

	labels := make([]string, len(c.Projections))
	for i, p := range c.Projections {
		labels[i] = strconv.Itoa(p.Year)
	}
	chart := components.NewASCIIChart("Yearly balance by risk tier").
		WithLabels(labels).
		WithSize(m.chartWidth(), 12).
		WithXAxis("year")
	for _, t := range domain.RiskTiers {
		chart.AddSeries(t.Title(), c.Series(t), tierColors[t])
	}

	seed := "initial run"
	if m.seed != 0 {
		seed = fmt.Sprintf("seed %d", m.seed)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		InfoStyle.Render(fmt.Sprintf("%d years, %s contributed (%s)",
			c.Request.DurationYears, FormatCurrency(c.Request.TotalContributed()), seed)),
		components.MetricGrid(cards, 3),
		chart.Render(),
	)
}

func (m Model) renderWealth() string {
	if m.report == nil || m.report.Wealth == nil {
		return missingSection("wealth")
	}
	w := m.report.Wealth

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Net worth", w.NetWorth, components.Money),
		components.NewMetricCard("At retirement", w.RetirementTotal(), components.Money).
			WithDelta(w.RetirementTotal().Sub(w.NetWorth)),
	}, 2)

	totals := make([]decimal.Decimal, len(w.Projections))
	labels := make([]string, len(w.Projections))
	for i, p := range w.Projections {
		totals[i] = p.Total
		labels[i] = strconv.Itoa(p.Age)
	}
	chart := components.NewASCIIChart("Projected wealth by age").
		AddSeries("Total", totals, ColorChartLine2).
		WithLabels(labels).
		WithSize(m.chartWidth(), 10)

	allocation := make([]string, 0, len(w.Allocation))
	for _, s := range w.Allocation {
		allocation = append(allocation, fmt.Sprintf("%-12s %3d%%  %s", s.Category, s.Percentage, FormatCurrency(s.Value)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		chart.Render(),
		bulletList("Recommended allocation", allocation),
	)
}
