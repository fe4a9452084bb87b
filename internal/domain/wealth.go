package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WealthProfile is the retirement/wealth projector input
type WealthProfile struct {
	Age                 int             `json:"age" yaml:"age"`
	RetirementAge       int             `json:"retirementAge" yaml:"retirement_age"`
	CurrentIncome       decimal.Decimal `json:"currentIncome" yaml:"current_income"`
	CurrentAssets       decimal.Decimal `json:"currentAssets" yaml:"current_assets"`
	CurrentLiabilities  decimal.Decimal `json:"currentLiabilities" yaml:"current_liabilities"`
	MonthlySavings      decimal.Decimal `json:"monthlySavings" yaml:"monthly_savings"`
	InvestmentReturnPct decimal.Decimal `json:"investmentReturnPct" yaml:"investment_return_pct"`
	TaxBracketPct       decimal.Decimal `json:"taxBracketPct" yaml:"tax_bracket_pct"`
	EstateValue         decimal.Decimal `json:"estateValue" yaml:"estate_value"`
	RiskTolerance       RiskTier        `json:"riskTolerance" yaml:"risk_tolerance"`
}

// Validate checks the wealth profile preconditions
func (p WealthProfile) Validate() error {
	if p.Age < 0 {
		return NewInvalidInputError("age", fmt.Sprintf("cannot be negative (got %d)", p.Age))
	}
	if p.RetirementAge <= p.Age {
		return NewInvalidInputError("retirement_age",
			fmt.Sprintf("must be greater than age (got %d, age %d)", p.RetirementAge, p.Age))
	}
	if err := requireHorizon("years_to_retirement", p.YearsToRetirement()); err != nil {
		return err
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"current_income", p.CurrentIncome},
		{"current_assets", p.CurrentAssets},
		{"current_liabilities", p.CurrentLiabilities},
		{"monthly_savings", p.MonthlySavings},
		{"tax_bracket_pct", p.TaxBracketPct},
		{"estate_value", p.EstateValue},
	}
	for _, f := range fields {
		if err := requireNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if p.InvestmentReturnPct.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewInvalidInputError("investment_return_pct",
			fmt.Sprintf("must be greater than -100 (got %s)", p.InvestmentReturnPct.String()))
	}
	if !p.RiskTolerance.IsValid() {
		return NewInvalidInputError("risk_tolerance",
			fmt.Sprintf("must be one of %s (got %q)", tierList(), p.RiskTolerance))
	}
	return nil
}

// YearsToRetirement is retirementAge - age
func (p WealthProfile) YearsToRetirement() int {
	return p.RetirementAge - p.Age
}

// NetWorth is assets minus liabilities; it may be negative
func (p WealthProfile) NetWorth() decimal.Decimal {
	return p.CurrentAssets.Sub(p.CurrentLiabilities)
}

// Clone returns a copy safe to mutate. All fields are values.
func (p WealthProfile) Clone() WealthProfile {
	return p
}

// RetirementProjectionPoint is one year of the wealth projection.
// Savings and Investments are a 60/40 display split of Total.
type RetirementProjectionPoint struct {
	Age         int             `json:"age"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
	Total       decimal.Decimal `json:"total"`
}

// AllocationSlice is one category of the recommended allocation
type AllocationSlice struct {
	Category   string          `json:"category"`
	Percentage int             `json:"percentage"`
	Value      decimal.Decimal `json:"value"`
}

// WealthPlan is the wealth projector output
type WealthPlan struct {
	NetWorth    decimal.Decimal             `json:"netWorth"`
	Projections []RetirementProjectionPoint `json:"projections"`
	Allocation  []AllocationSlice           `json:"allocation"`
}

// RetirementTotal is the projected balance at retirement age
func (w *WealthPlan) RetirementTotal() decimal.Decimal {
	if w == nil || len(w.Projections) == 0 {
		return decimal.Zero
	}
	return w.Projections[len(w.Projections)-1].Total
}
