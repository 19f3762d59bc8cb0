package transform

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// RecordTransform is a what-if change to a financial record. Transforms are
// composable: each receives the output of the previous one and never mutates
// its input.
type RecordTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error)

	// Name returns a short identifier such as "max_80c".
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.FinancialRecord) error
}

// ApplyTransforms applies a sequence of transforms to a base record.
func ApplyTransforms(base *domain.FinancialRecord, transforms []RecordTransform) (*domain.FinancialRecord, error) {
	if base == nil {
		return nil, fmt.Errorf("base record cannot be nil")
	}

	if len(transforms) == 0 {
		copied := base.DeepCopy()
		return &copied, nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
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
