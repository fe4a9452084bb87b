package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per section metric).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Section", "Metric", "Value"}}

	if a := report.Health; a != nil {
		b := a.Breakdown
		rows = append(rows,
			[]string{"health", "score", strconv.Itoa(a.Score)},
			[]string{"health", "category", string(a.Category)},
			[]string{"health", "savings_rate_points", strconv.Itoa(b.SavingsRatePoints)},
			[]string{"health", "debt_management_points", strconv.Itoa(b.DebtManagementPoints)},
			[]string{"health", "emergency_fund_points", strconv.Itoa(b.EmergencyFundPoints)},
			[]string{"health", "expense_ratio_points", strconv.Itoa(b.ExpenseRatioPoints)},
			[]string{"health", "goal_planning_points", strconv.Itoa(b.GoalPlanningPoints)},
		)
	}
	if p := report.Goal; p != nil {
		rows = append(rows,
			[]string{"goal", "monthly_savings", p.MonthlySavings.StringFixed(2)},
			[]string{"goal", "expected_annual_return", p.ExpectedAnnualReturn.StringFixed(4)},
			[]string{"goal", "months", strconv.Itoa(len(p.MonthlyPlans))},
			[]string{"goal", "final_total", p.FinalTotal().StringFixed(2)},
		)
	}
	if s := report.Scenarios; s != nil {
		for _, r := range s.Results() {
			section := "scenario_" + string(r.Tier)
			rows = append(rows,
				[]string{section, "final_value", r.FinalValue.StringFixed(2)},
				[]string{section, "total_return", r.TotalReturn.StringFixed(2)},
				[]string{section, "annualized_return_pct", r.AnnualizedReturn.StringFixed(4)},
				[]string{section, "max_drawdown", r.MaxDrawdown.StringFixed(2)},
				[]string{section, "volatility", r.Volatility.StringFixed(2)},
			)
		}
	}
	if wp := report.Wealth; wp != nil {
		rows = append(rows,
			[]string{"wealth", "net_worth", wp.NetWorth.StringFixed(2)},
			[]string{"wealth", "retirement_total", wp.RetirementTotal().StringFixed(2)},
		)
		for _, s := range wp.Allocation {
			rows = append(rows, []string{"wealth", "allocation_" + s.Category, s.Value.StringFixed(2)})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
