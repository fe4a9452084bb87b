package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// SnapshotFormValues backs the interactive health-score questionnaire.
// Amounts are kept as text until the form completes.
type SnapshotFormValues struct {
	MonthlyIncome       string
	MonthlyExpenses     string
	TotalDebt           string
	SavingsAmount       string
	EmergencyFundMonths string
	ShortTermGoals      string
	LongTermGoals       string
	RiskTolerance       string
}

// NewSnapshotForm builds the questionnaire; answers are written into v
func NewSnapshotForm(v *SnapshotFormValues) *huh.Form {
	if v.RiskTolerance == "" {
		v.RiskTolerance = string(domain.RiskToleranceMedium)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly income").
				Description("Take-home pay per month").
				Value(&v.MonthlyIncome).
				Validate(validateAmount(true)),
			huh.NewInput().
				Title("Monthly expenses").
				Value(&v.MonthlyExpenses).
				Validate(validateAmount(false)),
			huh.NewInput().
				Title("Total debt").
				Value(&v.TotalDebt).
				Validate(validateAmount(false)),
			huh.NewInput().
				Title("Savings").
				Value(&v.SavingsAmount).
				Validate(validateAmount(false)),
			huh.NewInput().
				Title("Emergency fund (months of expenses)").
				Value(&v.EmergencyFundMonths).
				Validate(validateAmount(false)),
		).Title("Your finances"),
		huh.NewGroup(
			huh.NewText().
				Title("Short-term goals").
				Description("Leave blank if none").
				Value(&v.ShortTermGoals),
			huh.NewText().
				Title("Long-term goals").
				Value(&v.LongTermGoals),
			huh.NewSelect[string]().
				Title("Risk tolerance").
				Options(
					huh.NewOption("Low", string(domain.RiskToleranceLow)),
					huh.NewOption("Medium", string(domain.RiskToleranceMedium)),
					huh.NewOption("High", string(domain.RiskToleranceHigh)),
				).
				Value(&v.RiskTolerance),
		).Title("Your goals"),
	)
}

// validateAmount accepts blank as zero unless the field is required
func validateAmount(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if required {
				return fmt.Errorf("required")
			}
			return nil
		}
		d, err := parseAmount(s)
		if err != nil {
			return err
		}
		if d.IsNegative() {
			return fmt.Errorf("must not be negative")
		}
		if required && !d.IsPositive() {
			return fmt.Errorf("must be greater than zero")
		}
		return nil
	}
}

// parseAmount reads a number, tolerating "$" and thousands separators
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	clean := strings.NewReplacer("$", "", ",", "", "_", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

// Snapshot converts the answers into a validated FinancialSnapshot
func (v SnapshotFormValues) Snapshot() (domain.FinancialSnapshot, error) {
	s := domain.FinancialSnapshot{
		ShortTermGoals: strings.TrimSpace(v.ShortTermGoals),
		LongTermGoals:  strings.TrimSpace(v.LongTermGoals),
		RiskTolerance:  domain.RiskTolerance(strings.ToLower(strings.TrimSpace(v.RiskTolerance))),
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"monthly_income", v.MonthlyIncome, &s.MonthlyIncome},
		{"monthly_expenses", v.MonthlyExpenses, &s.MonthlyExpenses},
		{"total_debt", v.TotalDebt, &s.TotalDebt},
		{"savings_amount", v.SavingsAmount, &s.SavingsAmount},
		{"emergency_fund_months", v.EmergencyFundMonths, &s.EmergencyFundMonths},
	}
	for _, f := range fields {
		d, err := parseAmount(f.raw)
		if err != nil {
			return domain.FinancialSnapshot{}, domain.NewInvalidInputError(f.name, err.Error())
		}
		*f.dst = d
	}
	if err := s.Validate(); err != nil {
		return domain.FinancialSnapshot{}, err
	}
	return s, nil
}
