package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two statutory tax computation schemes.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// ParseRegime accepts "old"/"new" in any case, with or without a "_regime" suffix.
func ParseRegime(s string) (Regime, error) {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "_regime")
	switch Regime(normalized) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("invalid regime %q, expected old or new", s)
	}
}

// Title returns "Old" or "New".
func (r Regime) Title() string {
	if r == RegimeOld {
		return "Old"
	}
	return "New"
}

// SlabBreakdown is the contribution of one slab to the pre-rebate tax.
type SlabBreakdown struct {
	Slab   string          `json:"slab" yaml:"slab"`
	Rate   string          `json:"rate" yaml:"rate"`
	Income decimal.Decimal `json:"income" yaml:"income"`
	Tax    decimal.Decimal `json:"tax" yaml:"tax"`
}

// ExemptionBreakdown lists the salary exemptions allowed under a regime.
type ExemptionBreakdown struct {
	HRA   decimal.Decimal `json:"hra" yaml:"hra"`
	LTA   decimal.Decimal `json:"lta" yaml:"lta"`
	Other decimal.Decimal `json:"other" yaml:"other"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// DeductionBreakdown lists the deductions allowed under a regime, after clamping.
type DeductionBreakdown struct {
	Standard         decimal.Decimal `json:"standard" yaml:"standard"`
	Section80C       decimal.Decimal `json:"section_80c" yaml:"section_80c"`
	Section80D       decimal.Decimal `json:"section_80d" yaml:"section_80d"`
	Section80DD      decimal.Decimal `json:"section_80dd" yaml:"section_80dd"`
	Section80E       decimal.Decimal `json:"section_80e" yaml:"section_80e"`
	Section80TTA     decimal.Decimal `json:"section_80tta" yaml:"section_80tta"`
	HomeLoanInterest decimal.Decimal `json:"home_loan_interest" yaml:"home_loan_interest"`
	Other            decimal.Decimal `json:"other" yaml:"other"`
	ProfessionalTax  decimal.Decimal `json:"professional_tax" yaml:"professional_tax"`
	Total            decimal.Decimal `json:"total" yaml:"total"`
}

// RegimeResult is the full tax computation under one regime.
type RegimeResult struct {
	Regime         Regime             `json:"regime" yaml:"regime"`
	GrossIncome    decimal.Decimal    `json:"gross_income" yaml:"gross_income"`
	Exemptions     ExemptionBreakdown `json:"exemptions" yaml:"exemptions"`
	Deductions     DeductionBreakdown `json:"deductions" yaml:"deductions"`
	TaxableIncome  decimal.Decimal    `json:"taxable_income" yaml:"taxable_income"`
	TaxAmount      decimal.Decimal    `json:"tax_amount" yaml:"tax_amount"`
	Rebate87A      decimal.Decimal    `json:"rebate_87a" yaml:"rebate_87a"`
	TaxAfterRebate decimal.Decimal    `json:"tax_after_rebate" yaml:"tax_after_rebate"`
	CessAmount     decimal.Decimal    `json:"cess_amount" yaml:"cess_amount"`
	TotalTax       decimal.Decimal    `json:"total_tax" yaml:"total_tax"`
	EffectiveRate  decimal.Decimal    `json:"effective_rate" yaml:"effective_rate"`
	SlabBreakdown  []SlabBreakdown    `json:"slab_breakdown" yaml:"slab_breakdown"`
}

// ComparisonResult records which regime is cheaper and by how much.
type ComparisonResult struct {
	BestRegime        Regime          `json:"best_regime" yaml:"best_regime"`
	TaxSavings        decimal.Decimal `json:"tax_savings" yaml:"tax_savings"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage" yaml:"savings_percentage"`
}

// CalculationDetails is the result of computing both regimes for one record.
type CalculationDetails struct {
	FinancialYear string           `json:"financial_year" yaml:"financial_year"`
	Record        FinancialRecord  `json:"financial_data" yaml:"financial_data"`
	OldRegime     RegimeResult     `json:"old_regime" yaml:"old_regime"`
	NewRegime     RegimeResult     `json:"new_regime" yaml:"new_regime"`
	Comparison    ComparisonResult `json:"comparison" yaml:"comparison"`
}

// Best returns the result of the recommended regime.
func (d CalculationDetails) Best() RegimeResult {
	if d.Comparison.BestRegime == RegimeOld {
		return d.OldRegime
	}
	return d.NewRegime
}

// TaxSummary is a compact view of a calculation for display and APIs.
type TaxSummary struct {
	FinancialYear     string          `json:"financial_year" yaml:"financial_year"`
	RecommendedRegime Regime          `json:"recommended_regime" yaml:"recommended_regime"`
	OldRegimeTax      decimal.Decimal `json:"old_regime_tax" yaml:"old_regime_tax"`
	NewRegimeTax      decimal.Decimal `json:"new_regime_tax" yaml:"new_regime_tax"`
	TaxSavings        decimal.Decimal `json:"tax_savings" yaml:"tax_savings"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage" yaml:"savings_percentage"`
	Recommendation    string          `json:"recommendation" yaml:"recommendation"`
}
