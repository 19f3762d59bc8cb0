package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the tax outcome the solver searches for.
type Target string

const (
	// TargetRegimeParity finds the extra old-regime deduction at which the
	// old regime costs no more than the new regime.
	TargetRegimeParity Target = "regime_parity"
	// TargetZeroTax finds the extra old-regime deduction that brings the
	// old-regime tax to nil, usually by landing inside the 87A rebate.
	TargetZeroTax Target = "zero_tax"
)

// AllTargets lists every target in report order.
var AllTargets = []Target{TargetRegimeParity, TargetZeroTax}

// ParseTarget accepts a target name; "all" is handled by callers.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTargets {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown break-even target %q (valid: regime_parity, zero_tax, all)", s)
}

// Request defines one break-even search.
type Request struct {
	Record        *domain.FinancialRecord
	Target        Target
	MaxIterations int
	Tolerance     decimal.Decimal // width of the final bracket in rupees
}

// Result is the outcome of a break-even search.
type Result struct {
	Target          Target `json:"target" yaml:"target"`
	Success         bool   `json:"success" yaml:"success"`
	Iterations      int    `json:"iterations" yaml:"iterations"`
	ConvergenceInfo string `json:"convergence_info,omitempty" yaml:"convergence_info,omitempty"`

	// ExtraDeduction is the additional old-regime deduction needed, rounded
	// up to whole rupees. Zero means the target already holds.
	ExtraDeduction decimal.Decimal `json:"extra_deduction" yaml:"extra_deduction"`

	BaseOldRegimeTax decimal.Decimal `json:"base_old_regime_tax" yaml:"base_old_regime_tax"`
	BaseNewRegimeTax decimal.Decimal `json:"base_new_regime_tax" yaml:"base_new_regime_tax"`
	OldRegimeTax     decimal.Decimal `json:"old_regime_tax" yaml:"old_regime_tax"`
	NewRegimeTax     decimal.Decimal `json:"new_regime_tax" yaml:"new_regime_tax"`
}

// SolverOptions configures the bisection.
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // ₹1
		MaxIterations: 64,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
