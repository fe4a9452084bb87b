package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a violated calculator precondition
// (non-positive income, non-positive horizon, retirement age not after age, ...).
type InvalidInputError struct {
	Field  string
	Reason string
}

// NewInvalidInputError creates an InvalidInputError for a field
func NewInvalidInputError(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match wrapped InvalidInputErrors
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsInvalidInput reports whether err (or anything it wraps) is an InvalidInputError
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
