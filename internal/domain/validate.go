package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxHorizonYears bounds every projection loop
const MaxHorizonYears = 50

func requirePositive(field string, v decimal.Decimal) error {
	if v.LessThanOrEqual(decimal.Zero) {
		return NewInvalidInputError(field, fmt.Sprintf("must be positive (got %s)", v.String()))
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return NewInvalidInputError(field, fmt.Sprintf("cannot be negative (got %s)", v.String()))
	}
	return nil
}

func requireHorizon(field string, years int) error {
	if years <= 0 {
		return NewInvalidInputError(field, fmt.Sprintf("must be positive (got %d)", years))
	}
	if years > MaxHorizonYears {
		return NewInvalidInputError(field, fmt.Sprintf("must be at most %d years (got %d)", MaxHorizonYears, years))
	}
	return nil
}
