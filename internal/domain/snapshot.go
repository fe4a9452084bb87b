package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskTolerance is the self-reported risk appetite on the assessment form
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// IsValid reports whether r is a known tolerance. Empty is accepted and
// treated as medium.
func (r RiskTolerance) IsValid() bool {
	switch r {
	case "", RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
		return true
	}
	return false
}

// FinancialSnapshot is a household's current monthly picture, the input to
// the health score.
type FinancialSnapshot struct {
	MonthlyIncome       decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	MonthlyExpenses     decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`
	TotalDebt           decimal.Decimal `json:"totalDebt" yaml:"total_debt"`
	SavingsAmount       decimal.Decimal `json:"savingsAmount" yaml:"savings_amount"`
	EmergencyFundMonths decimal.Decimal `json:"emergencyFundMonths" yaml:"emergency_fund_months"`
	ShortTermGoals      string          `json:"shortTermGoals" yaml:"short_term_goals"`
	LongTermGoals       string          `json:"longTermGoals" yaml:"long_term_goals"`
	RiskTolerance       RiskTolerance   `json:"riskTolerance" yaml:"risk_tolerance"`
}

// Validate checks the snapshot preconditions
func (s FinancialSnapshot) Validate() error {
	if err := requirePositive("monthly_income", s.MonthlyIncome); err != nil {
		return err
	}
	if err := requireNonNegative("monthly_expenses", s.MonthlyExpenses); err != nil {
		return err
	}
	if err := requireNonNegative("total_debt", s.TotalDebt); err != nil {
		return err
	}
	if err := requireNonNegative("savings_amount", s.SavingsAmount); err != nil {
		return err
	}
	if err := requireNonNegative("emergency_fund_months", s.EmergencyFundMonths); err != nil {
		return err
	}
	if !s.RiskTolerance.IsValid() {
		return NewInvalidInputError("risk_tolerance",
			fmt.Sprintf("must be one of low, medium, high (got %q)", s.RiskTolerance))
	}
	return nil
}

// HasShortTermGoals reports whether any short-term goal text was provided.
// Whitespace counts as text.
func (s FinancialSnapshot) HasShortTermGoals() bool {
	return s.ShortTermGoals != ""
}

// HasLongTermGoals reports whether long-term goal text was provided
func (s FinancialSnapshot) HasLongTermGoals() bool {
	return s.LongTermGoals != ""
}

// HealthCategory is the categorical rating derived from a health score
type HealthCategory string

const (
	CategoryPoor      HealthCategory = "poor"
	CategoryFair      HealthCategory = "fair"
	CategoryGood      HealthCategory = "good"
	CategoryExcellent HealthCategory = "excellent"
)

// CategoryForScore maps a 0-100 score onto its category:
// >=80 excellent, >=60 good, >=40 fair, else poor.
func CategoryForScore(score int) HealthCategory {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 60:
		return CategoryGood
	case score >= 40:
		return CategoryFair
	default:
		return CategoryPoor
	}
}

// ScoreBreakdown holds the weighted sub-scores and the ratios they came from
type ScoreBreakdown struct {
	SavingsRatePoints    int `json:"savingsRatePoints"`    // 0-25
	DebtManagementPoints int `json:"debtManagementPoints"` // 0-25
	EmergencyFundPoints  int `json:"emergencyFundPoints"`  // 0-20
	ExpenseRatioPoints   int `json:"expenseRatioPoints"`   // 0-15
	GoalPlanningPoints   int `json:"goalPlanningPoints"`   // 0-15

	SavingsRate  decimal.Decimal `json:"savingsRate"`  // (income-expenses)/income
	DebtRatio    decimal.Decimal `json:"debtRatio"`    // debt/(income*12)
	ExpenseRatio decimal.Decimal `json:"expenseRatio"` // expenses/income
}

// Total sums the sub-scores
func (b ScoreBreakdown) Total() int {
	return b.SavingsRatePoints + b.DebtManagementPoints + b.EmergencyFundPoints +
		b.ExpenseRatioPoints + b.GoalPlanningPoints
}

// HealthAssessment is the derived, read-only result of the health score
type HealthAssessment struct {
	Score           int            `json:"score"`
	Category        HealthCategory `json:"category"`
	RiskAreas       []string       `json:"riskAreas"`
	Strengths       []string       `json:"strengths"`
	Recommendations []string       `json:"recommendations"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
}
