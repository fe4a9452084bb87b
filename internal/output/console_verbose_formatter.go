package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ConsoleVerboseFormatter renders the full console report, section by section.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "FINANCIAL PLAN REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	if report.Source != "" {
		fmt.Fprintf(&buf, "Source:    %s\n", report.Source)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Health != nil {
		writeHealth(&buf, report.Health)
	}
	if report.Goal != nil {
		writeGoal(&buf, report.Goal)
	}
	if report.Scenarios != nil {
		writeScenarios(&buf, report.Scenarios)
	}
	if report.Wealth != nil {
		writeWealth(&buf, report.Wealth)
	}

	return buf.Bytes(), nil
}

func sectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

func writeHealth(w io.Writer, a *domain.HealthAssessment) {
	b := a.Breakdown
	sectionHeader(w, "FINANCIAL HEALTH")
	fmt.Fprintf(w, "Score: %d/100 (%s)\n", a.Score, a.Category)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SCORE BREAKDOWN:")
	fmt.Fprintf(w, "  Savings rate:     %2d/25  (%s of income saved)\n", b.SavingsRatePoints, FormatFraction(b.SavingsRate))
	fmt.Fprintf(w, "  Debt management:  %2d/25  (debt is %s of annual income)\n", b.DebtManagementPoints, FormatFraction(b.DebtRatio))
	fmt.Fprintf(w, "  Emergency fund:   %2d/20\n", b.EmergencyFundPoints)
	fmt.Fprintf(w, "  Expense ratio:    %2d/15  (%s of income spent)\n", b.ExpenseRatioPoints, FormatFraction(b.ExpenseRatio))
	fmt.Fprintf(w, "  Goal planning:    %2d/15\n", b.GoalPlanningPoints)
	fmt.Fprintln(w)
	writeList(w, "STRENGTHS", a.Strengths)
	writeList(w, "RISK AREAS", a.RiskAreas)
	writeList(w, "RECOMMENDATIONS", a.Recommendations)
	fmt.Fprintln(w)
}

func writeGoal(w io.Writer, p *domain.GoalPlan) {
	sectionHeader(w, "GOAL PLAN")
	fmt.Fprintln(w, p.Summary)
	fmt.Fprintf(w, "Monthly savings:        %s\n", FormatCurrency(p.MonthlySavings))
	fmt.Fprintf(w, "Expected annual return: %s\n", FormatFraction(p.ExpectedAnnualReturn))
	fmt.Fprintf(w, "Projected final total:  %s\n", FormatCurrency(p.FinalTotal()))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %16s %16s %16s\n", "Month", "Savings", "Investments", "Total")
	fmt.Fprintln(w, strings.Repeat("-", 59))
	for _, pt := range p.MonthlyPlans {
		if pt.Milestone == "" {
			continue
		}
		fmt.Fprintf(w, "%-8d %16s %16s %16s\n", pt.Month,
			FormatCurrency(pt.Savings), FormatCurrency(pt.Investments), FormatCurrency(pt.Total))
	}
	fmt.Fprintln(w)
	writeList(w, "MILESTONES", p.Milestones)
	writeList(w, "RECOMMENDATIONS", p.Recommendations)
	fmt.Fprintln(w)
}

func writeScenarios(w io.Writer, c *domain.ScenarioComparison) {
	sectionHeader(w, "INVESTMENT SCENARIOS")
	fmt.Fprintf(w, "Initial %s, %s per month for %d years (%s contributed)\n",
		FormatCurrency(c.Request.InitialAmount), FormatCurrency(c.Request.MonthlyContribution),
		c.Request.DurationYears, FormatCurrency(c.Request.TotalContributed()))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-14s %16s %16s %11s %9s %11s\n",
		"Tier", "Final Value", "Total Return", "Annualized", "Drawdown", "Volatility")
	fmt.Fprintln(w, strings.Repeat("-", 82))
	for _, r := range c.Results() {
		fmt.Fprintf(w, "%-14s %16s %16s %11s %9s %11s\n", r.Tier.Title(),
			FormatCurrency(r.FinalValue), FormatCurrency(r.TotalReturn), FormatPercentage(r.AnnualizedReturn),
			FormatFraction(r.MaxDrawdown), FormatFraction(r.Volatility))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "YEARLY PROJECTION:")
	fmt.Fprintf(w, "%-6s %16s %16s %16s\n", "Year", "Conservative", "Moderate", "Aggressive")
	for _, pt := range c.Projections {
		fmt.Fprintf(w, "%-6d %16s %16s %16s\n", pt.Year,
			FormatCurrency(pt.Conservative), FormatCurrency(pt.Moderate), FormatCurrency(pt.Aggressive))
	}
	fmt.Fprintln(w)
}

func writeWealth(w io.Writer, p *domain.WealthPlan) {
	sectionHeader(w, "RETIREMENT PROJECTION")
	fmt.Fprintf(w, "Current net worth:  %s\n", FormatCurrency(p.NetWorth))
	fmt.Fprintf(w, "Total at retirement: %s\n", FormatCurrency(p.RetirementTotal()))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-5s %16s %16s %16s\n", "Age", "Savings", "Investments", "Total")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, pt := range p.Projections {
		fmt.Fprintf(w, "%-5d %16s %16s %16s\n", pt.Age,
			FormatCurrency(pt.Savings), FormatCurrency(pt.Investments), FormatCurrency(pt.Total))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RECOMMENDED ALLOCATION:")
	for _, s := range p.Allocation {
		fmt.Fprintf(w, "  %-12s %3d%%  %s\n", s.Category, s.Percentage, FormatCurrency(s.Value))
	}
	fmt.Fprintln(w)
}
