package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ConsoleFormatter renders a compact summary, one line per section.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PLAN SUMMARY")
	fmt.Fprintln(&buf, "======================")

	if a := report.Health; a != nil {
		fmt.Fprintf(&buf, "Health score: %d/100 (%s), %d risk areas, %d strengths\n",
			a.Score, a.Category, len(a.RiskAreas), len(a.Strengths))
	}
	if p := report.Goal; p != nil && len(p.MonthlyPlans) > 0 {
		last := p.MonthlyPlans[len(p.MonthlyPlans)-1]
		fmt.Fprintf(&buf, "Goal plan: save %s/month, %s by month %d\n",
			FormatCurrency(p.MonthlySavings), FormatCurrency(last.Total), last.Month)
	}
	if s := report.Scenarios; s != nil {
		fmt.Fprintf(&buf, "Scenarios (%dy): Conservative %s | Moderate %s | Aggressive %s\n",
			s.Request.DurationYears,
			FormatCurrency(s.Conservative.FinalValue),
			FormatCurrency(s.Moderate.FinalValue),
			FormatCurrency(s.Aggressive.FinalValue))
	}
	if w := report.Wealth; w != nil && len(w.Projections) > 0 {
		last := w.Projections[len(w.Projections)-1]
		fmt.Fprintf(&buf, "Retirement: %s at age %d (net worth today %s)\n",
			FormatCurrency(last.Total), last.Age, FormatCurrency(w.NetWorth))
	}
	if report.Health == nil && report.Goal == nil && report.Scenarios == nil && report.Wealth == nil {
		fmt.Fprintln(&buf, "No results")
	}
	return buf.Bytes(), nil
}
