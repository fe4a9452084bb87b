package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProfileTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify a wealth profile in
// predictable ways, enabling what-if comparison from the CLI, API and TUI.
type ProfileTransform interface {
	// Apply returns a modified copy of base; base is never mutated.
	Apply(base *domain.WealthProfile) (*domain.WealthProfile, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.WealthProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *domain.WealthProfile, transforms []ProfileTransform) (*domain.WealthProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	current := base.Clone()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(&current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(&current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = *next
	}

	return &current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
