package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules contains the statutory constants for one financial year.
// The defaults are compiled in; a rules file may override them.
type TaxRules struct {
	FinancialYear     string           `yaml:"financial_year" json:"financial_year"`
	OldRegime         RegimeRules      `yaml:"old_regime" json:"old_regime"`
	NewRegime         RegimeRules      `yaml:"new_regime" json:"new_regime"`
	CessRate          decimal.Decimal  `yaml:"cess_rate" json:"cess_rate"` // percent of tax after rebate
	StandardDeduction decimal.Decimal  `yaml:"standard_deduction" json:"standard_deduction"`
	Limits            DeductionLimits  `yaml:"limits" json:"limits"`
	HRA               HRARules         `yaml:"hra" json:"hra"`
	GrossSalaryBand   PlausibilityBand `yaml:"gross_salary_band" json:"gross_salary_band"`
}

// RegimeRules contains the slab table and Section 87A rebate of one regime.
type RegimeRules struct {
	Slabs           []TaxSlab       `yaml:"slabs" json:"slabs"`
	RebateThreshold decimal.Decimal `yaml:"rebate_threshold" json:"rebate_threshold"`
	RebateLimit     decimal.Decimal `yaml:"rebate_limit" json:"rebate_limit"`
}

// TaxSlab is one income bracket. A nil Upper marks the final, unbounded slab.
type TaxSlab struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"` // percent
}

// DeductionLimits are the hard statutory ceilings applied during computation.
type DeductionLimits struct {
	Section80C       decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D       decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section80DD      decimal.Decimal `yaml:"section_80dd" json:"section_80dd"`
	Section80E       decimal.Decimal `yaml:"section_80e" json:"section_80e"`
	Section80TTA     decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	HomeLoanInterest decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"`
}

// HRARules parameterizes the Section 10(13A) exemption.
type HRARules struct {
	BasicPercent      decimal.Decimal `yaml:"basic_percent" json:"basic_percent"`             // metro rate
	RentExcessPercent decimal.Decimal `yaml:"rent_excess_percent" json:"rent_excess_percent"` // rent paid over this share of basic
}

// PlausibilityBand bounds an amount for soft validation.
type PlausibilityBand struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

func lakh(n float64) decimal.Decimal {
	return decimal.NewFromFloat(n).Mul(decimal.NewFromInt(100000))
}

func bound(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// DefaultTaxRules returns the FY 2024-25 constants.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		FinancialYear: DefaultFinancialYear,
		OldRegime: RegimeRules{
			Slabs: []TaxSlab{
				{Lower: decimal.Zero, Upper: bound(lakh(2.5)), Rate: decimal.Zero},
				{Lower: lakh(2.5), Upper: bound(lakh(5)), Rate: decimal.NewFromInt(5)},
				{Lower: lakh(5), Upper: bound(lakh(10)), Rate: decimal.NewFromInt(20)},
				{Lower: lakh(10), Rate: decimal.NewFromInt(30)},
			},
			RebateThreshold: lakh(5),
			RebateLimit:     decimal.NewFromInt(12500),
		},
		NewRegime: RegimeRules{
			Slabs: []TaxSlab{
				{Lower: decimal.Zero, Upper: bound(lakh(3)), Rate: decimal.Zero},
				{Lower: lakh(3), Upper: bound(lakh(6)), Rate: decimal.NewFromInt(5)},
				{Lower: lakh(6), Upper: bound(lakh(9)), Rate: decimal.NewFromInt(10)},
				{Lower: lakh(9), Upper: bound(lakh(12)), Rate: decimal.NewFromInt(15)},
				{Lower: lakh(12), Upper: bound(lakh(15)), Rate: decimal.NewFromInt(20)},
				{Lower: lakh(15), Rate: decimal.NewFromInt(30)},
			},
			RebateThreshold: lakh(7),
			RebateLimit:     decimal.NewFromInt(25000),
		},
		CessRate:          decimal.NewFromInt(4),
		StandardDeduction: decimal.NewFromInt(50000),
		Limits: DeductionLimits{
			Section80C:       decimal.NewFromInt(150000),
			Section80D:       decimal.NewFromInt(25000),
			Section80DD:      decimal.NewFromInt(125000),
			Section80E:       decimal.NewFromInt(40000),
			Section80TTA:     decimal.NewFromInt(10000),
			HomeLoanInterest: decimal.NewFromInt(200000),
		},
		HRA: HRARules{
			BasicPercent:      decimal.NewFromInt(50),
			RentExcessPercent: decimal.NewFromInt(10),
		},
		GrossSalaryBand: PlausibilityBand{
			Min: lakh(3),
			Max: lakh(500),
		},
	}
}

// Regime returns the rules for the named regime.
func (r TaxRules) Regime(regime Regime) (RegimeRules, error) {
	switch regime {
	case RegimeOld:
		return r.OldRegime, nil
	case RegimeNew:
		return r.NewRegime, nil
	default:
		return RegimeRules{}, fmt.Errorf("unknown regime: %s", regime)
	}
}

// Validate checks the structural consistency of every table.
func (r TaxRules) Validate() error {
	if err := r.OldRegime.Validate(RegimeOld); err != nil {
		return err
	}
	if err := r.NewRegime.Validate(RegimeNew); err != nil {
		return err
	}
	if r.CessRate.IsNegative() {
		return &ComputationFault{Operation: "validate_rules", Message: "cess_rate cannot be negative"}
	}
	if r.StandardDeduction.IsNegative() {
		return &ComputationFault{Operation: "validate_rules", Message: "standard_deduction cannot be negative"}
	}
	if r.GrossSalaryBand.Max.LessThan(r.GrossSalaryBand.Min) {
		return &ComputationFault{Operation: "validate_rules", Message: "gross_salary_band max is below min"}
	}
	return nil
}

// Validate checks that the slab table is ordered, contiguous and ends unbounded.
func (rr RegimeRules) Validate(regime Regime) error {
	op := fmt.Sprintf("validate_%s_slabs", regime)
	if len(rr.Slabs) == 0 {
		return &ComputationFault{Operation: op, Message: "slab table is empty"}
	}
	if !rr.Slabs[0].Lower.IsZero() {
		return &ComputationFault{Operation: op, Message: "first slab must start at 0"}
	}

	hundred := decimal.NewFromInt(100)
	for i, slab := range rr.Slabs {
		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(hundred) {
			return &ComputationFault{Operation: op, Message: fmt.Sprintf("slab %d rate %s%% out of range", i, slab.Rate)}
		}
		last := i == len(rr.Slabs)-1
		if slab.Upper == nil {
			if !last {
				return &ComputationFault{Operation: op, Message: fmt.Sprintf("slab %d is unbounded but not last", i)}
			}
			continue
		}
		if last {
			return &ComputationFault{Operation: op, Message: "final slab must be unbounded"}
		}
		if !slab.Upper.GreaterThan(slab.Lower) {
			return &ComputationFault{Operation: op, Message: fmt.Sprintf("slab %d upper bound %s not above lower bound %s", i, slab.Upper, slab.Lower)}
		}
		if next := rr.Slabs[i+1]; !next.Lower.Equal(*slab.Upper) {
			return &ComputationFault{Operation: op, Message: fmt.Sprintf("slab %d starts at %s, expected %s", i+1, next.Lower, slab.Upper)}
		}
	}
	return nil
}

// Label renders the slab range as "lower - upper" or "lower+".
func (s TaxSlab) Label() string {
	if s.Upper == nil {
		return FormatIndian(s.Lower) + "+"
	}
	return FormatIndian(s.Lower) + " - " + FormatIndian(*s.Upper)
}
