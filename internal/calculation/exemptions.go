package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// HRAExemption computes the Section 10(13A) exemption as the least of HRA
// received, rent paid in excess of 10% of basic, and 50% of basic.
// The metro-city rate is applied to every record.
func HRAExemption(basicSalary, hraReceived, rentPaid decimal.Decimal, rules domain.HRARules) decimal.Decimal {
	if hraReceived.IsZero() || rentPaid.IsZero() {
		return decimal.Zero
	}

	basicLimit := basicSalary.Mul(rules.BasicPercent).Div(hundred)
	rentOverBasic := rentPaid.Sub(basicSalary.Mul(rules.RentExcessPercent).Div(hundred))

	exemption := decimal.Min(hraReceived, rentOverBasic, basicLimit)
	return nonNegative(exemption)
}

// clamp limits a claimed amount to [0, ceiling].
func clamp(amount, ceiling decimal.Decimal) decimal.Decimal {
	return nonNegative(decimal.Min(amount, ceiling))
}

func nonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// standardDeduction falls back to the statutory default when the record
// leaves it unset.
func (tc *TaxCalculator) standardDeduction(record domain.FinancialRecord) decimal.Decimal {
	if record.StandardDeduction.IsZero() {
		return tc.rules.StandardDeduction
	}
	return nonNegative(record.StandardDeduction)
}

func (tc *TaxCalculator) oldRegimeExemptions(record domain.FinancialRecord) domain.ExemptionBreakdown {
	hra := HRAExemption(record.BasicSalary, record.HRAReceived, record.RentPaid, tc.rules.HRA)
	lta := nonNegative(record.LTAReceived)
	other := nonNegative(record.OtherExemptions)
	return domain.ExemptionBreakdown{
		HRA:   hra,
		LTA:   lta,
		Other: other,
		Total: hra.Add(lta).Add(other),
	}
}

func (tc *TaxCalculator) oldRegimeDeductions(record domain.FinancialRecord) domain.DeductionBreakdown {
	limits := tc.rules.Limits
	d := domain.DeductionBreakdown{
		Standard:         tc.standardDeduction(record),
		Section80C:       clamp(record.Deduction80C, limits.Section80C),
		Section80D:       clamp(record.Deduction80D, limits.Section80D),
		Section80DD:      clamp(record.Deduction80DD, limits.Section80DD),
		Section80E:       clamp(record.Deduction80E, limits.Section80E),
		Section80TTA:     clamp(record.Deduction80TTA, limits.Section80TTA),
		HomeLoanInterest: clamp(record.HomeLoanInterest, limits.HomeLoanInterest),
		Other:            nonNegative(record.OtherDeductions),
		ProfessionalTax:  nonNegative(record.ProfessionalTax),
	}
	d.Total = decimal.Sum(d.Standard,
		d.Section80C, d.Section80D, d.Section80DD, d.Section80E, d.Section80TTA,
		d.HomeLoanInterest, d.Other, d.ProfessionalTax)
	return d
}

// newRegimeDeductions allows only the standard deduction and professional tax.
func (tc *TaxCalculator) newRegimeDeductions(record domain.FinancialRecord) domain.DeductionBreakdown {
	d := domain.DeductionBreakdown{
		Standard:        tc.standardDeduction(record),
		ProfessionalTax: nonNegative(record.ProfessionalTax),
	}
	d.Total = d.Standard.Add(d.ProfessionalTax)
	return d
}
