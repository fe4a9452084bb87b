package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// tier maps a ratio onto points: the first row whose test passes wins
type tier struct {
	test   func(decimal.Decimal) bool
	points int
}

func atLeast(f float64) func(decimal.Decimal) bool {
	limit := decimal.NewFromFloat(f)
	return func(v decimal.Decimal) bool { return v.GreaterThanOrEqual(limit) }
}

func atMost(f float64) func(decimal.Decimal) bool {
	limit := decimal.NewFromFloat(f)
	return func(v decimal.Decimal) bool { return v.LessThanOrEqual(limit) }
}

func positive(v decimal.Decimal) bool { return v.IsPositive() }

func always(decimal.Decimal) bool { return true }

var (
	savingsRateTiers = []tier{
		{atLeast(0.25), 25}, {atLeast(0.20), 22}, {atLeast(0.15), 20},
		{atLeast(0.10), 15}, {atLeast(0.05), 10}, {positive, 5}, {always, 0},
	}
	debtRatioTiers = []tier{
		{atMost(0.3), 25}, {atMost(0.5), 20}, {atMost(0.7), 15}, {atMost(1.0), 10}, {always, 5},
	}
	emergencyFundTiers = []tier{
		{atLeast(6), 20}, {atLeast(4), 16}, {atLeast(3), 12}, {atLeast(1), 8}, {positive, 4}, {always, 0},
	}
	expenseRatioTiers = []tier{
		{atMost(0.5), 15}, {atMost(0.65), 12}, {atMost(0.75), 10}, {atMost(0.85), 7}, {always, 3},
	}
)

func scoreTier(v decimal.Decimal, tiers []tier) int {
	for _, t := range tiers {
		if t.test(v) {
			return t.points
		}
	}
	return 0
}

// ComputeHealthScore converts a snapshot into a 0-100 health score with
// category, risk flags, strengths and recommendations.
func ComputeHealthScore(s domain.FinancialSnapshot) (*domain.HealthAssessment, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	income := s.MonthlyIncome
	savingsRate := income.Sub(s.MonthlyExpenses).Div(income)
	debtRatio := s.TotalDebt.Div(income.Mul(twelve))
	expenseRatio := s.MonthlyExpenses.Div(income)

	b := domain.ScoreBreakdown{
		SavingsRatePoints:    scoreTier(savingsRate, savingsRateTiers),
		DebtManagementPoints: scoreTier(debtRatio, debtRatioTiers),
		EmergencyFundPoints:  scoreTier(s.EmergencyFundMonths, emergencyFundTiers),
		ExpenseRatioPoints:   scoreTier(expenseRatio, expenseRatioTiers),
		GoalPlanningPoints:   goalPlanningPoints(s),
		SavingsRate:          savingsRate,
		DebtRatio:            debtRatio,
		ExpenseRatio:         expenseRatio,
	}

	score := b.Total()
	assessment := &domain.HealthAssessment{
		Score:           score,
		Category:        domain.CategoryForScore(score),
		RiskAreas:       []string{},
		Strengths:       []string{},
		Recommendations: []string{},
		Breakdown:       b,
	}

	describeSavings(assessment, savingsRate)
	describeDebt(assessment, debtRatio)
	describeEmergencyFund(assessment, s.EmergencyFundMonths)
	describeExpenses(assessment, s.MonthlyExpenses, income, expenseRatio)
	recommend(assessment, s, b)

	return assessment, nil
}

func goalPlanningPoints(s domain.FinancialSnapshot) int {
	switch {
	case s.HasShortTermGoals() && s.HasLongTermGoals():
		return 15
	case s.HasShortTermGoals() || s.HasLongTermGoals():
		return 8
	default:
		return 0
	}
}

func pct(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(1) + "%"
}

func describeSavings(a *domain.HealthAssessment, rate decimal.Decimal) {
	switch {
	case rate.LessThan(decimal.NewFromFloat(0.05)):
		a.RiskAreas = append(a.RiskAreas,
			fmt.Sprintf("Low savings rate (%s) leaves little room for unexpected costs", pct(rate)))
	case rate.GreaterThanOrEqual(decimal.NewFromFloat(0.10)):
		a.Strengths = append(a.Strengths, fmt.Sprintf("Healthy savings rate of %s", pct(rate)))
	}
}

func describeDebt(a *domain.HealthAssessment, ratio decimal.Decimal) {
	switch {
	case ratio.GreaterThan(decimal.NewFromInt(1)):
		a.RiskAreas = append(a.RiskAreas,
			fmt.Sprintf("Total debt exceeds annual income (%s of income)", pct(ratio)))
	case ratio.GreaterThan(decimal.NewFromFloat(0.7)):
		a.RiskAreas = append(a.RiskAreas,
			fmt.Sprintf("High debt-to-income ratio (%s of annual income)", pct(ratio)))
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.3)):
		a.Strengths = append(a.Strengths,
			fmt.Sprintf("Manageable debt level (%s of annual income)", pct(ratio)))
	}
}

func describeEmergencyFund(a *domain.HealthAssessment, months decimal.Decimal) {
	switch {
	case months.LessThan(decimal.NewFromInt(3)):
		a.RiskAreas = append(a.RiskAreas,
			fmt.Sprintf("Emergency fund covers only %s months of expenses", months.StringFixed(1)))
	case months.GreaterThanOrEqual(decimal.NewFromInt(6)):
		a.Strengths = append(a.Strengths,
			fmt.Sprintf("Solid emergency fund of %s months", months.StringFixed(1)))
	}
}

func describeExpenses(a *domain.HealthAssessment, expenses, income, ratio decimal.Decimal) {
	switch {
	case expenses.GreaterThan(income):
		a.RiskAreas = append(a.RiskAreas, "Monthly expenses exceed monthly income")
	case ratio.GreaterThan(decimal.NewFromFloat(0.85)):
		a.RiskAreas = append(a.RiskAreas,
			fmt.Sprintf("Expenses consume %s of income", pct(ratio)))
	}
}

// recommend appends advice in a fixed order: savings, debt, emergency fund,
// expenses, goals, diversification.
func recommend(a *domain.HealthAssessment, s domain.FinancialSnapshot, b domain.ScoreBreakdown) {
	if b.SavingsRate.LessThan(decimal.NewFromFloat(0.20)) {
		a.Recommendations = append(a.Recommendations,
			"Increase your savings rate toward 20% of income by automating transfers on payday")
	}
	if b.DebtRatio.GreaterThan(decimal.NewFromFloat(0.3)) {
		a.Recommendations = append(a.Recommendations,
			"Pay down high-interest debt first to bring total debt under 30% of annual income")
	}
	if s.EmergencyFundMonths.LessThan(decimal.NewFromInt(6)) {
		a.Recommendations = append(a.Recommendations,
			"Build your emergency fund to cover 6 months of expenses")
	}
	if b.ExpenseRatio.GreaterThan(decimal.NewFromFloat(0.75)) {
		a.Recommendations = append(a.Recommendations,
			"Review recurring expenses and cut discretionary spending below 75% of income")
	}
	if b.GoalPlanningPoints < 15 {
		a.Recommendations = append(a.Recommendations,
			"Write down both short-term and long-term financial goals with target dates")
	}
	if s.SavingsAmount.IsPositive() {
		a.Recommendations = append(a.Recommendations, diversificationAdvice(s.RiskTolerance))
	}
}

func diversificationAdvice(r domain.RiskTolerance) string {
	switch r {
	case domain.RiskToleranceLow:
		return "Diversify savings across high-yield cash, bonds and a small equity index allocation"
	case domain.RiskToleranceHigh:
		return "Diversify savings across broad equity index funds while keeping some bonds as ballast"
	default:
		return "Diversify savings across a balanced mix of stock and bond index funds"
	}
}
