package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes income tax under the old and new regimes.
// It holds only the statutory constants, so one instance may be shared
// across goroutines once configured.
type TaxCalculator struct {
	rules  domain.TaxRules
	logger Logger
}

// NewTaxCalculator creates a calculator with the compiled-in FY 2024-25 rules.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{
		rules:  domain.DefaultTaxRules(),
		logger: NopLogger{},
	}
}

// NewTaxCalculatorWithRules creates a calculator from a rules table, rejecting
// tables whose slabs are not ordered and contiguous.
func NewTaxCalculatorWithRules(rules domain.TaxRules) (*TaxCalculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &TaxCalculator{rules: rules, logger: NopLogger{}}, nil
}

// SetLogger sets the logger. Passing nil restores the no-op logger.
func (tc *TaxCalculator) SetLogger(l Logger) {
	if l == nil {
		tc.logger = NopLogger{}
		return
	}
	tc.logger = l
}

// Rules returns the rules the calculator was built with.
func (tc *TaxCalculator) Rules() domain.TaxRules {
	return tc.rules
}

// Calculate computes both regimes for a record and compares them.
// Implausible amounts are still computed; only rule-table faults fail.
func (tc *TaxCalculator) Calculate(record domain.FinancialRecord) (*domain.CalculationDetails, error) {
	oldResult, err := tc.CalculateOldRegime(record)
	if err != nil {
		return nil, fmt.Errorf("old regime calculation failed: %w", err)
	}

	newResult, err := tc.CalculateNewRegime(record)
	if err != nil {
		return nil, fmt.Errorf("new regime calculation failed: %w", err)
	}

	comparison := CompareRegimes(oldResult, newResult)
	tc.logger.Infof("FY %s: old regime %s, new regime %s, best %s saves %s",
		record.Year(), oldResult.TotalTax.StringFixed(2), newResult.TotalTax.StringFixed(2),
		comparison.BestRegime, comparison.TaxSavings.StringFixed(2))

	return &domain.CalculationDetails{
		FinancialYear: record.Year(),
		Record:        record.DeepCopy(),
		OldRegime:     oldResult,
		NewRegime:     newResult,
		Comparison:    comparison,
	}, nil
}

// CalculateOldRegime allows HRA, LTA and other exemptions plus the clamped
// Chapter VI-A and 24(b) deductions.
func (tc *TaxCalculator) CalculateOldRegime(record domain.FinancialRecord) (domain.RegimeResult, error) {
	exemptions := tc.oldRegimeExemptions(record)
	deductions := tc.oldRegimeDeductions(record)
	return tc.computeRegime(domain.RegimeOld, tc.rules.OldRegime, record, exemptions, deductions)
}

// CalculateNewRegime allows only the standard deduction and professional tax.
func (tc *TaxCalculator) CalculateNewRegime(record domain.FinancialRecord) (domain.RegimeResult, error) {
	exemptions := domain.ExemptionBreakdown{}
	deductions := tc.newRegimeDeductions(record)
	return tc.computeRegime(domain.RegimeNew, tc.rules.NewRegime, record, exemptions, deductions)
}

// computeRegime runs taxable income, slab tax, rebate and cess in that order.
func (tc *TaxCalculator) computeRegime(
	regime domain.Regime,
	rules domain.RegimeRules,
	record domain.FinancialRecord,
	exemptions domain.ExemptionBreakdown,
	deductions domain.DeductionBreakdown,
) (domain.RegimeResult, error) {
	grossIncome := record.GrossIncome()
	taxableIncome := nonNegative(grossIncome.Sub(exemptions.Total).Sub(deductions.Total))

	tax, breakdown, err := SlabTax(taxableIncome, rules.Slabs)
	if err != nil {
		return domain.RegimeResult{}, err
	}

	rebate := Rebate87A(taxableIncome, tax, rules)
	taxAfterRebate := tax.Sub(rebate)
	cess := Cess(taxAfterRebate, tc.rules.CessRate)
	totalTax := taxAfterRebate.Add(cess)

	if totalTax.IsNegative() {
		return domain.RegimeResult{}, &domain.ComputationFault{
			Operation: fmt.Sprintf("%s_regime", regime),
			Message:   fmt.Sprintf("negative total tax %s", totalTax),
		}
	}

	tc.logger.Debugf("%s regime: gross=%s exemptions=%s deductions=%s taxable=%s tax=%s rebate=%s cess=%s",
		regime, grossIncome, exemptions.Total, deductions.Total, taxableIncome, tax, rebate, cess)

	effectiveRate := decimal.Zero
	if grossIncome.IsPositive() {
		effectiveRate = domain.Percent(totalTax, grossIncome).Round(2)
	}

	return domain.RegimeResult{
		Regime:         regime,
		GrossIncome:    grossIncome,
		Exemptions:     exemptions,
		Deductions:     deductions,
		TaxableIncome:  taxableIncome,
		TaxAmount:      tax,
		Rebate87A:      rebate,
		TaxAfterRebate: taxAfterRebate,
		CessAmount:     cess,
		TotalTax:       totalTax,
		EffectiveRate:  effectiveRate,
		SlabBreakdown:  breakdown,
	}, nil
}

// CompareRegimes picks the cheaper regime. Equal totals report old.
func CompareRegimes(oldResult, newResult domain.RegimeResult) domain.ComparisonResult {
	best := domain.RegimeNew
	if oldResult.TotalTax.LessThanOrEqual(newResult.TotalTax) {
		best = domain.RegimeOld
	}

	savings := oldResult.TotalTax.Sub(newResult.TotalTax).Abs()
	return domain.ComparisonResult{
		BestRegime:        best,
		TaxSavings:        savings,
		SavingsPercentage: domain.Percent(savings, decimal.Max(oldResult.TotalTax, newResult.TotalTax)).Round(2),
	}
}
