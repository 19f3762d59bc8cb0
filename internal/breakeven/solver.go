package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches for the extra old-regime deduction that reaches a target.
// Old-regime tax never rises as deductions grow, so bisection converges.
type Solver struct {
	Calc    *calculation.TaxCalculator
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calc *calculation.TaxCalculator, options SolverOptions) *Solver {
	if calc == nil {
		calc = calculation.NewTaxCalculator()
	}
	return &Solver{Calc: calc, Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc *calculation.TaxCalculator) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// Solve runs one break-even search.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Record == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "record cannot be nil"}
	}
	if _, err := ParseTarget(string(req.Target)); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: err.Error()}
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.Calc.Calculate(*req.Record)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base record", Cause: err}
	}

	result := &Result{
		Target:           req.Target,
		BaseOldRegimeTax: base.OldRegime.TotalTax,
		BaseNewRegimeTax: base.NewRegime.TotalTax,
		OldRegimeTax:     base.OldRegime.TotalTax,
		NewRegimeTax:     base.NewRegime.TotalTax,
	}
	if reached(req.Target, base) {
		result.Success = true
		result.ConvergenceInfo = "Target already met"
		return result, nil
	}

	// A deduction equal to the base taxable income drives taxable income
	// to zero, so the answer lies in [0, taxable].
	lo := decimal.Zero
	hi := base.OldRegime.TaxableIncome
	upper, err := s.evaluate(req.Record, hi)
	if err != nil {
		return nil, err
	}
	if !reached(req.Target, upper) {
		result.ConvergenceInfo = "Target cannot be reached with old regime deductions"
		return result, nil
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) && result.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		details, err := s.evaluate(req.Record, mid)
		if err != nil {
			return nil, err
		}
		if reached(req.Target, details) {
			hi = mid
		} else {
			lo = mid
		}
	}

	// Report the smallest whole rupee amount that still reaches the target.
	extra := hi.Ceil()
	if floor := hi.Floor(); floor.GreaterThan(lo) && floor.LessThan(extra) {
		details, err := s.evaluate(req.Record, floor)
		if err != nil {
			return nil, err
		}
		if reached(req.Target, details) {
			extra = floor
		}
	}
	best, err := s.evaluate(req.Record, extra)
	if err != nil {
		return nil, err
	}

	result.Success = true
	result.ExtraDeduction = extra
	result.OldRegimeTax = best.OldRegime.TotalTax
	result.NewRegimeTax = best.NewRegime.TotalTax
	result.ConvergenceInfo = fmt.Sprintf("Converged within %s after %d iterations",
		domain.FormatRupees(req.Tolerance), result.Iterations)
	return result, nil
}

// SolveAll runs every target against one record.
func (s *Solver) SolveAll(ctx context.Context, record *domain.FinancialRecord) ([]Result, error) {
	results := make([]Result, 0, len(AllTargets))
	for _, target := range AllTargets {
		result, err := s.Solve(ctx, Request{Record: record, Target: target})
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// evaluate calculates the record with extra added to other_deductions,
// which is the one old-regime deduction without a statutory cap.
func (s *Solver) evaluate(record *domain.FinancialRecord, extra decimal.Decimal) (*domain.CalculationDetails, error) {
	modified, err := transform.ApplyTransforms(record, []transform.RecordTransform{
		&transform.SetField{Field: "other_deductions", Amount: record.OtherDeductions.Add(extra)},
	})
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to apply deduction", Cause: err}
	}
	details, err := s.Calc.Calculate(*modified)
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to calculate record", Cause: err}
	}
	return details, nil
}

func reached(target Target, details *domain.CalculationDetails) bool {
	switch target {
	case TargetRegimeParity:
		return details.OldRegime.TotalTax.LessThanOrEqual(details.NewRegime.TotalTax)
	case TargetZeroTax:
		return details.OldRegime.TotalTax.IsZero()
	default:
		return false
	}
}
