package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// rentedMetroRecord pays ₹30,680 under the old regime on ₹5,85,000 taxable.
func rentedMetroRecord() *domain.FinancialRecord {
	return &domain.FinancialRecord{
		FinancialYear: "2024-25",
		GrossSalary:   d(1000000),
		BasicSalary:   d(500000),
		HRAReceived:   d(200000),
		RentPaid:      d(240000),
		Deduction80C:  d(150000),
		Deduction80D:  d(25000),
	}
}

// noDeductionRecord is cheaper under the new regime.
func noDeductionRecord() *domain.FinancialRecord {
	return &domain.FinancialRecord{
		FinancialYear: "2024-25",
		GrossSalary:   d(1500000),
		BasicSalary:   d(750000),
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget(" Regime_Parity ")
	require.NoError(t, err)
	assert.Equal(t, TargetRegimeParity, target)

	_, err = ParseTarget("max_refund")
	assert.Error(t, err)
}

func TestSolve_ZeroTax(t *testing.T) {
	s := NewDefaultSolver(nil)

	result, err := s.Solve(context.Background(), Request{Record: rentedMetroRecord(), Target: TargetZeroTax})
	require.NoError(t, err)

	assert.True(t, result.Success)
	// ₹85,000 more brings taxable income to the ₹5,00,000 rebate limit
	assert.True(t, d(85000).Equal(result.ExtraDeduction), "got %s", result.ExtraDeduction)
	assert.True(t, result.OldRegimeTax.IsZero())
	assert.True(t, d(30680).Equal(result.BaseOldRegimeTax))
	assert.Greater(t, result.Iterations, 0)
}

func TestSolve_RegimeParityAlreadyMet(t *testing.T) {
	s := NewDefaultSolver(calculation.NewTaxCalculator())

	result, err := s.Solve(context.Background(), Request{Record: rentedMetroRecord(), Target: TargetRegimeParity})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.ExtraDeduction.IsZero())
	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, "Target already met", result.ConvergenceInfo)
}

func TestSolve_RegimeParity(t *testing.T) {
	s := NewDefaultSolver(nil)
	record := noDeductionRecord()

	result, err := s.Solve(context.Background(), Request{Record: record, Target: TargetRegimeParity})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.BaseOldRegimeTax.GreaterThan(result.BaseNewRegimeTax))

	assert.True(t, result.ExtraDeduction.IsPositive())
	assert.True(t, result.ExtraDeduction.Equal(result.ExtraDeduction.Floor()), "whole rupees expected")
	assert.True(t, result.OldRegimeTax.LessThanOrEqual(result.NewRegimeTax))

	// One rupee less must not reach parity
	below, err := s.evaluate(record, result.ExtraDeduction.Sub(d(1)))
	require.NoError(t, err)
	assert.True(t, below.OldRegime.TotalTax.GreaterThan(below.NewRegime.TotalTax))

	// The input record is left untouched
	assert.True(t, record.OtherDeductions.IsZero())
}

func TestSolve_Errors(t *testing.T) {
	s := NewDefaultSolver(nil)

	_, err := s.Solve(context.Background(), Request{Target: TargetZeroTax})
	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "solve", beErr.Operation)

	_, err = s.Solve(context.Background(), Request{Record: rentedMetroRecord(), Target: "tsp_rate"})
	assert.Error(t, err)
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver(nil).Solve(ctx, Request{Record: rentedMetroRecord(), Target: TargetZeroTax})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveAll(t *testing.T) {
	results, err := NewDefaultSolver(nil).SolveAll(context.Background(), rentedMetroRecord())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, TargetRegimeParity, results[0].Target)
	assert.Equal(t, TargetZeroTax, results[1].Target)
}

func TestTableFormatter(t *testing.T) {
	results, err := NewDefaultSolver(nil).SolveAll(context.Background(), rentedMetroRecord())
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(results)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Already met with current deductions")
	assert.Contains(t, out, "₹85,000")
	assert.Contains(t, out, "ZERO TAX UNDER OLD REGIME")

	failed := (&TableFormatter{}).Format([]Result{{Target: TargetZeroTax, ConvergenceInfo: "nope"}})
	assert.Contains(t, failed, "Not reachable: nope")
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "evaluate", Message: "failed", Cause: cause}
	assert.Equal(t, "evaluate: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "solve: bad", (&BreakEvenError{Operation: "solve", Message: "bad"}).Error())
}
