package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooManyDocuments is returned when more than MaxDocuments are supplied.
	ErrTooManyDocuments = errors.New("too many documents")
	// ErrNoDocuments is returned when a salary-slip batch is empty.
	ErrNoDocuments = errors.New("no documents")
)

// ValidationError carries every constraint violation found in a record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "validation failed: " + e.Problems[0]
	}
	return fmt.Sprintf("validation failed with %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// AggregationError aborts salary aggregation before any tax computation.
type AggregationError struct {
	Reason    string
	Documents int
	Err       error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed (%d documents): %s", e.Documents, e.Reason)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// ComputationFault signals an internal inconsistency such as a malformed
// slab table. It is a programming error, not a user-facing condition.
type ComputationFault struct {
	Operation string
	Message   string
	Err       error
}

func (e *ComputationFault) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("computation fault in %s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("computation fault in %s: %s", e.Operation, e.Message)
}

func (e *ComputationFault) Unwrap() error {
	return e.Err
}
