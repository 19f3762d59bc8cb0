// Package aggregation converts periodic salary documents into a single
// annual financial record.
package aggregation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// maxVariation is the share by which a slip's gross salary may differ from
// the first slip before it is reported.
var maxVariation = decimal.NewFromFloat(0.2)

// SalaryAggregator annualizes salary slips and passes Form-16 figures through.
type SalaryAggregator struct {
	rules  domain.TaxRules
	logger calculation.Logger
}

// NewSalaryAggregator creates an aggregator using the default tax rules for
// the standard deduction and validation limits.
func NewSalaryAggregator() *SalaryAggregator {
	return NewSalaryAggregatorWithRules(domain.DefaultTaxRules())
}

// NewSalaryAggregatorWithRules creates an aggregator with explicit rules.
func NewSalaryAggregatorWithRules(rules domain.TaxRules) *SalaryAggregator {
	return &SalaryAggregator{rules: rules, logger: calculation.NopLogger{}}
}

// SetLogger sets the logger. Passing nil restores the no-op logger.
func (sa *SalaryAggregator) SetLogger(l calculation.Logger) {
	if l == nil {
		sa.logger = calculation.NopLogger{}
		return
	}
	sa.logger = l
}

// InterpolationFactor returns the multiplier that projects the sum of n
// slips to twelve months.
func InterpolationFactor(n int) (decimal.Decimal, error) {
	switch n {
	case 1:
		return decimal.NewFromInt(12), nil
	case 2:
		return decimal.NewFromInt(6), nil
	case 3:
		return decimal.NewFromInt(4), nil
	case 4:
		return decimal.NewFromInt(3), nil
	default:
		return decimal.Zero, fmt.Errorf("no interpolation factor for %d documents", n)
	}
}

// Aggregate produces one annual record from the extracts of a single upload.
//
// Form-16 extracts are already annual and the first one is returned as-is.
// One salary slip is treated as a monthly figure and multiplied by 12.
// Two to four slips are summed and multiplied by 6, 4 or 3 respectively;
// the standard deduction is then set to its annual constant.
func (sa *SalaryAggregator) Aggregate(extracts []domain.RawExtract, docType domain.DocumentType) (domain.FinancialRecord, error) {
	n := len(extracts)
	if n > domain.MaxDocuments {
		return domain.FinancialRecord{}, &domain.AggregationError{
			Reason:    fmt.Sprintf("maximum %d documents allowed", domain.MaxDocuments),
			Documents: n,
			Err:       domain.ErrTooManyDocuments,
		}
	}

	switch docType {
	case domain.DocumentForm16:
		if n == 0 {
			return domain.FinancialRecord{}, nil
		}
		if n > 1 {
			sa.logger.Warnf("form 16 batch has %d documents; using %s and ignoring the rest", n, sourceName(extracts[0], 0))
		}
		return extracts[0].FinancialRecord.DeepCopy(), nil

	case domain.DocumentSalarySlip:
		if n == 0 {
			return domain.FinancialRecord{}, &domain.AggregationError{
				Reason: "at least one salary slip is required",
				Err:    domain.ErrNoDocuments,
			}
		}
		return sa.annualizeSlips(extracts)

	default:
		return domain.FinancialRecord{}, &domain.AggregationError{
			Reason:    fmt.Sprintf("unsupported document type %q", docType),
			Documents: n,
		}
	}
}

func (sa *SalaryAggregator) annualizeSlips(extracts []domain.RawExtract) (domain.FinancialRecord, error) {
	factor, err := InterpolationFactor(len(extracts))
	if err != nil {
		return domain.FinancialRecord{}, &domain.ComputationFault{Operation: "interpolation_factor", Message: err.Error()}
	}

	if len(extracts) == 1 {
		annual := extracts[0].FinancialRecord.Scale(factor)
		sa.logger.Infof("single salary slip annualized with factor %s", factor)
		return annual, nil
	}

	sa.CheckConsistency(extracts)

	summed := extracts[0].FinancialRecord.DeepCopy()
	for _, slip := range extracts[1:] {
		summed = summed.Add(slip.FinancialRecord)
	}

	annual := summed.Scale(factor)
	annual.StandardDeduction = sa.rules.StandardDeduction
	sa.logger.Infof("%d salary slips aggregated with interpolation factor %s", len(extracts), factor)
	return annual, nil
}

// CheckConsistency reports slips whose gross salary differs from the first
// slip by more than 20%. Findings are logged and returned; they never stop
// aggregation.
func (sa *SalaryAggregator) CheckConsistency(extracts []domain.RawExtract) []string {
	findings := variationFindings(extracts)
	for _, f := range findings {
		sa.logger.Warnf("%s", f)
	}
	return findings
}

func variationFindings(extracts []domain.RawExtract) []string {
	if len(extracts) < 2 {
		return nil
	}

	first := extracts[0].GrossSalary
	if first.IsZero() {
		return []string{fmt.Sprintf("%s has no gross salary; variation check skipped", sourceName(extracts[0], 0))}
	}

	var findings []string
	for i, slip := range extracts[1:] {
		variation := slip.GrossSalary.Sub(first).Abs().Div(first.Abs())
		if variation.GreaterThan(maxVariation) {
			findings = append(findings, fmt.Sprintf("Significant salary variation detected in %s: %s%%",
				sourceName(slip, i+1), variation.Mul(decimal.NewFromInt(100)).StringFixed(2)))
		}
	}
	return findings
}

func sourceName(e domain.RawExtract, index int) string {
	if e.Source != "" {
		return e.Source
	}
	return fmt.Sprintf("document %d", index+1)
}
