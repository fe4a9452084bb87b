package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// PostponeRetirement shifts the retirement age by whole years.
// Negative values retire earlier.
type PostponeRetirement struct {
	Years int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	if pt.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pt.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pt.Years)
}

func (pt *PostponeRetirement) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(pt.Name(), "validate", "base profile cannot be nil", nil)
	}
	newAge := base.RetirementAge + pt.Years
	if newAge <= base.Age {
		return NewTransformError(pt.Name(), "validate",
			fmt.Sprintf("retirement age %d would not be after current age %d", newAge, base.Age), nil)
	}
	if newAge-base.Age > domain.MaxHorizonYears {
		return NewTransformError(pt.Name(), "validate",
			fmt.Sprintf("retirement age %d is more than %d years away", newAge, domain.MaxHorizonYears), nil)
	}
	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	modified.RetirementAge += pt.Years
	return &modified, nil
}

// ScaleMonthlySavings multiplies monthly savings by Factor (1.10 = save 10% more).
type ScaleMonthlySavings struct {
	Factor decimal.Decimal
}

func (sm *ScaleMonthlySavings) Name() string {
	return "scale_savings"
}

func (sm *ScaleMonthlySavings) Description() string {
	pct := sm.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return fmt.Sprintf("Save %s%% less each month", pct.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Save %s%% more each month", pct.StringFixed(0))
}

func (sm *ScaleMonthlySavings) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(sm.Name(), "validate", "base profile cannot be nil", nil)
	}
	if sm.Factor.IsNegative() {
		return NewTransformError(sm.Name(), "validate",
			fmt.Sprintf("factor must be non-negative, got %s", sm.Factor.String()), nil)
	}
	return nil
}

func (sm *ScaleMonthlySavings) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	modified.MonthlySavings = base.MonthlySavings.Mul(sm.Factor)
	return &modified, nil
}

// AdjustMonthlySavings adds Delta to monthly savings.
type AdjustMonthlySavings struct {
	Delta decimal.Decimal
}

func (am *AdjustMonthlySavings) Name() string {
	return "adjust_savings"
}

func (am *AdjustMonthlySavings) Description() string {
	if am.Delta.IsNegative() {
		return fmt.Sprintf("Save $%s less each month", am.Delta.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Save $%s more each month", am.Delta.StringFixed(0))
}

func (am *AdjustMonthlySavings) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(am.Name(), "validate", "base profile cannot be nil", nil)
	}
	if base.MonthlySavings.Add(am.Delta).IsNegative() {
		return NewTransformError(am.Name(), "validate",
			fmt.Sprintf("monthly savings would drop below zero (%s + %s)",
				base.MonthlySavings.StringFixed(2), am.Delta.StringFixed(2)), nil)
	}
	return nil
}

func (am *AdjustMonthlySavings) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	modified.MonthlySavings = base.MonthlySavings.Add(am.Delta)
	return &modified, nil
}

// SetInvestmentReturn replaces the expected annual return (percent).
type SetInvestmentReturn struct {
	Pct decimal.Decimal
}

func (sr *SetInvestmentReturn) Name() string {
	return "set_return"
}

func (sr *SetInvestmentReturn) Description() string {
	return fmt.Sprintf("Assume a %s%% annual investment return", sr.Pct.String())
}

func (sr *SetInvestmentReturn) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base profile cannot be nil", nil)
	}
	if sr.Pct.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("return must be greater than -100%%, got %s", sr.Pct.String()), nil)
	}
	return nil
}

func (sr *SetInvestmentReturn) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	modified.InvestmentReturnPct = sr.Pct
	return &modified, nil
}

// SetRiskTolerance switches the allocation tier.
type SetRiskTolerance struct {
	Tier domain.RiskTier
}

func (st *SetRiskTolerance) Name() string {
	return "set_risk"
}

func (st *SetRiskTolerance) Description() string {
	return fmt.Sprintf("Switch to the %s allocation", st.Tier)
}

func (st *SetRiskTolerance) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !st.Tier.IsValid() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("unknown risk tier %q", st.Tier), nil)
	}
	return nil
}

func (st *SetRiskTolerance) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	modified.RiskTolerance = st.Tier
	return &modified, nil
}

// PayDownLiabilities clears up to Amount of liabilities with outside funds
// (a bonus or windfall), leaving assets untouched. A zero Amount clears all.
type PayDownLiabilities struct {
	Amount decimal.Decimal
}

func (pd *PayDownLiabilities) Name() string {
	return "pay_down_liabilities"
}

func (pd *PayDownLiabilities) Description() string {
	if pd.Amount.IsZero() {
		return "Pay off all liabilities"
	}
	return fmt.Sprintf("Pay down $%s of liabilities", pd.Amount.StringFixed(0))
}

func (pd *PayDownLiabilities) Validate(base *domain.WealthProfile) error {
	if base == nil {
		return NewTransformError(pd.Name(), "validate", "base profile cannot be nil", nil)
	}
	if pd.Amount.IsNegative() {
		return NewTransformError(pd.Name(), "validate",
			fmt.Sprintf("amount must be non-negative, got %s", pd.Amount.String()), nil)
	}
	return nil
}

func (pd *PayDownLiabilities) Apply(base *domain.WealthProfile) (*domain.WealthProfile, error) {
	modified := base.Clone()
	if pd.Amount.IsZero() || pd.Amount.GreaterThanOrEqual(base.CurrentLiabilities) {
		modified.CurrentLiabilities = decimal.Zero
	} else {
		modified.CurrentLiabilities = base.CurrentLiabilities.Sub(pd.Amount)
	}
	return &modified, nil
}
