package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SlabTax applies a progressive slab table to taxable income and returns the
// pre-rebate tax with a per-slab breakdown. Income at or below zero is not
// taxed. Slabs that receive income are listed, including zero-rate slabs.
func SlabTax(taxableIncome decimal.Decimal, slabs []domain.TaxSlab) (decimal.Decimal, []domain.SlabBreakdown, error) {
	if err := checkSlabs(slabs); err != nil {
		return decimal.Zero, nil, err
	}

	breakdown := []domain.SlabBreakdown{}
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, breakdown, nil
	}

	totalTax := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(slab.Lower) {
			break
		}

		incomeInSlab := taxableIncome.Sub(slab.Lower)
		if slab.Upper != nil {
			incomeInSlab = decimal.Min(incomeInSlab, slab.Upper.Sub(slab.Lower))
		}
		if !incomeInSlab.IsPositive() {
			continue
		}

		slabTax := incomeInSlab.Mul(slab.Rate).Div(hundred)
		totalTax = totalTax.Add(slabTax)
		breakdown = append(breakdown, domain.SlabBreakdown{
			Slab:   slab.Label(),
			Rate:   slab.Rate.String() + "%",
			Income: incomeInSlab,
			Tax:    slabTax,
		})
	}

	return totalTax, breakdown, nil
}

// checkSlabs rejects tables that would double-count or skip income.
func checkSlabs(slabs []domain.TaxSlab) error {
	if len(slabs) == 0 {
		return &domain.ComputationFault{Operation: "slab_tax", Message: "slab table is empty"}
	}
	for i, slab := range slabs {
		if i == 0 && !slab.Lower.IsZero() {
			return &domain.ComputationFault{Operation: "slab_tax", Message: "first slab must start at 0"}
		}
		if i > 0 {
			prev := slabs[i-1]
			if prev.Upper == nil || !slab.Lower.Equal(*prev.Upper) {
				return &domain.ComputationFault{
					Operation: "slab_tax",
					Message:   fmt.Sprintf("slab %d (%s) is not contiguous with slab %d", i, slab.Label(), i-1),
				}
			}
		}
		if slab.Upper != nil && !slab.Upper.GreaterThan(slab.Lower) {
			return &domain.ComputationFault{
				Operation: "slab_tax",
				Message:   fmt.Sprintf("slab %d (%s) is not ascending", i, slab.Label()),
			}
		}
	}
	if slabs[len(slabs)-1].Upper != nil {
		return &domain.ComputationFault{Operation: "slab_tax", Message: "final slab must be unbounded"}
	}
	return nil
}

// Rebate87A returns the Section 87A rebate: the lesser of the tax and the
// regime's limit when taxable income does not exceed the threshold.
func Rebate87A(taxableIncome, tax decimal.Decimal, rules domain.RegimeRules) decimal.Decimal {
	if taxableIncome.GreaterThan(rules.RebateThreshold) {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, decimal.Min(tax, rules.RebateLimit))
}

// Cess returns the health and education cess on tax after rebate.
func Cess(taxAfterRebate, ratePercent decimal.Decimal) decimal.Decimal {
	return taxAfterRebate.Mul(ratePercent).Div(hundred)
}

// MarginalRate returns the slab rate (percent) that applies to the next rupee
// of taxable income.
func MarginalRate(taxableIncome decimal.Decimal, slabs []domain.TaxSlab) decimal.Decimal {
	rate := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThan(slab.Lower) {
			break
		}
		rate = slab.Rate
	}
	return rate
}
