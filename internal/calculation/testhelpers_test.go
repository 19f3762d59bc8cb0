package calculation

import (
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !want.Equal(actual) {
		assert.Fail(t, "decimal mismatch: expected "+want.String()+", got "+actual.String(), msgAndArgs...)
	}
}

// sampleRecord is a salaried individual who pays rent and maxes 80C and 80D.
func sampleRecord() domain.FinancialRecord {
	return domain.FinancialRecord{
		FinancialYear:     "2024-25",
		GrossSalary:       d(1000000),
		BasicSalary:       d(500000),
		HRAReceived:       d(200000),
		RentPaid:          d(240000),
		Deduction80C:      d(150000),
		Deduction80D:      d(25000),
		StandardDeduction: d(50000),
	}
}
