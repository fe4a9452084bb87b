package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Share of each monthly contribution shown as cash savings vs. invested
var (
	goalSavingsShare    = decimal.NewFromFloat(0.6)
	goalInvestmentShare = decimal.NewFromFloat(0.4)
)

// investmentBonus is the flat uplift applied to the invested share
func investmentBonus(t domain.RiskTier) decimal.Decimal {
	if t == domain.TierAggressive {
		return decimal.NewFromFloat(0.01)
	}
	return decimal.NewFromFloat(0.005)
}

// GeneratePlan produces a month-by-month linear savings trajectory toward a
// goal. Growth is not compounded: month m holds m contributions split 60/40
// with a small flat bonus on the invested part.
func GeneratePlan(req domain.GoalRequest) (*domain.GoalPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	months := req.TimeHorizonYears * 12
	monthlySavings := req.TargetAmount.Sub(req.CurrentSavings).Div(decimal.NewFromInt(int64(months)))
	investFactor := decimal.NewFromInt(1).Add(investmentBonus(req.RiskTolerance))

	plans := make([]domain.MonthlyPlanPoint, 0, months)
	for m := 1; m <= months; m++ {
		dm := decimal.NewFromInt(int64(m))
		savings := monthlySavings.Mul(goalSavingsShare).Mul(dm)
		investments := monthlySavings.Mul(goalInvestmentShare).Mul(dm).Mul(investFactor)
		point := domain.MonthlyPlanPoint{
			Month:       m,
			Savings:     savings,
			Investments: investments,
			Total:       req.CurrentSavings.Add(savings).Add(investments),
		}
		if m%12 == 0 {
			point.Milestone = fmt.Sprintf("Year %d milestone", m/12)
		}
		plans = append(plans, point)
	}

	profile, _ := domain.RiskProfileFor(req.RiskTolerance)
	plan := &domain.GoalPlan{
		MonthlySavings:       monthlySavings,
		ExpectedAnnualReturn: profile.AnnualReturn,
		MonthlyPlans:         plans,
		Milestones:           goalMilestones(plans),
		Recommendations:      goalRecommendations(req, monthlySavings),
	}
	plan.Summary = fmt.Sprintf("To reach %s for %s in %d years, set aside %s per month (%s allocation).",
		money(req.TargetAmount), goalLabel(req.TargetGoal), req.TimeHorizonYears,
		money(monthlySavings), req.RiskTolerance)

	return plan, nil
}

// goalMilestones reports the projected total at months 12, 24 and the final
// month, skipping checkpoints beyond the horizon and duplicates.
func goalMilestones(plans []domain.MonthlyPlanPoint) []string {
	last := len(plans)
	seen := make(map[int]bool, 3)
	milestones := make([]string, 0, 3)
	for _, m := range []int{12, 24, last} {
		if m < 1 || m > last || seen[m] {
			continue
		}
		seen[m] = true
		milestones = append(milestones,
			fmt.Sprintf("Month %d: projected total %s", m, money(plans[m-1].Total)))
	}
	return milestones
}

func goalRecommendations(req domain.GoalRequest, monthlySavings decimal.Decimal) []string {
	recs := []string{}

	if !monthlySavings.IsPositive() {
		recs = append(recs, "Current savings already cover the target; consider a larger goal or a shorter horizon")
	}

	monthlyIncome := req.Income.Div(twelve)
	if req.Income.IsPositive() && monthlySavings.GreaterThan(monthlyIncome.Div(decimal.NewFromInt(2))) {
		recs = append(recs, fmt.Sprintf(
			"Required savings of %s exceed half of monthly income (%s); extend the horizon or lower the target",
			money(monthlySavings), money(monthlyIncome)))
	}

	switch req.TargetGoal {
	case domain.GoalRetirement:
		recs = append(recs, "Maximize tax-advantaged retirement accounts and capture any employer match")
	case domain.GoalHome:
		recs = append(recs, "Keep the down payment fund in low-volatility accounts as the purchase date nears")
	case domain.GoalEducation:
		recs = append(recs, "Use an education savings plan to grow contributions tax-free")
	case domain.GoalWealth:
		recs = append(recs, "Invest surplus income in low-cost diversified index funds")
	}

	switch req.RiskTolerance {
	case domain.TierAggressive:
		recs = append(recs, "Review the allocation yearly; an aggressive mix can swing widely before the goal date")
	case domain.TierConservative:
		recs = append(recs, "A conservative mix favors stability; expect slower progress than equity-heavy plans")
	default:
		recs = append(recs, "Rebalance annually to keep the moderate stock/bond mix on target")
	}

	return recs
}

func goalLabel(g domain.GoalType) string {
	switch g {
	case domain.GoalHome:
		return "a home purchase"
	case domain.GoalEducation:
		return "education"
	case domain.GoalWealth:
		return "wealth building"
	default:
		return "retirement"
	}
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
