package compare

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one what-if scenario reduced to its headline tax figures
type ComparisonResult struct {
	ScenarioName string                     `json:"scenarioName"`
	Description  string                     `json:"description"`
	Details      *domain.CalculationDetails `json:"-"`

	BestRegime      domain.Regime   `json:"bestRegime"`
	OldRegimeTax    decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax    decimal.Decimal `json:"newRegimeTax"`
	BestTax         decimal.Decimal `json:"bestTax"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	RegimeSavings   decimal.Decimal `json:"regimeSavings"`
	AdditionalSpend decimal.Decimal `json:"additionalSpend"`

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	RegimeChanged   bool            `json:"regimeChanged"`
}

// ComparisonSet represents a base record and its what-if alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// outlayFields are the record fields that cost the taxpayer money to raise.
var outlayFields = map[string]bool{
	"rent_paid":          true,
	"deduction_80c":      true,
	"deduction_80d":      true,
	"deduction_80dd":     true,
	"deduction_80e":      true,
	"deduction_80tta":    true,
	"home_loan_interest": true,
	"other_deductions":   true,
	"professional_tax":   true,
}

// MetricsCalculator extracts comparison metrics from calculation details
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics reduces a calculation to the figures the formatters show
func (mc *MetricsCalculator) CalculateMetrics(name string, details *domain.CalculationDetails) ComparisonResult {
	best := details.Best()
	return ComparisonResult{
		ScenarioName:  name,
		Details:       details,
		BestRegime:    details.Comparison.BestRegime,
		OldRegimeTax:  details.OldRegime.TotalTax,
		NewRegimeTax:  details.NewRegime.TotalTax,
		BestTax:       best.TotalTax,
		TaxableIncome: best.TaxableIncome,
		EffectiveRate: best.EffectiveRate,
		RegimeSavings: details.Comparison.TaxSavings,
	}
}

// CalculateComparison computes the deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.BestTax.Sub(base.BestTax)
	scenario.TaxPctFromBase = domain.Percent(scenario.TaxDiffFromBase, base.BestTax).Round(2)
	scenario.RegimeChanged = scenario.BestRegime != base.BestRegime

	if scenario.Details != nil && base.Details != nil {
		scenario.AdditionalSpend = mc.additionalSpend(base.Details.Record, scenario.Details.Record)
	}
	return scenario
}

func (mc *MetricsCalculator) additionalSpend(base, alt domain.FinancialRecord) decimal.Decimal {
	total := decimal.Zero
	baseFields := base.Fields()
	for i, f := range alt.Fields() {
		if outlayFields[f.Name] {
			total = total.Add(f.Value.Sub(*baseFields[i].Value))
		}
	}
	return total
}

// SavingsPerRupee is the tax saved for each extra rupee spent, or zero when
// the scenario costs nothing extra.
func (cr ComparisonResult) SavingsPerRupee() decimal.Decimal {
	if !cr.AdditionalSpend.IsPositive() {
		return decimal.Zero
	}
	return cr.TaxDiffFromBase.Neg().Div(cr.AdditionalSpend)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestTax.LessThan(lowestTax.BestTax) {
			lowestTax = alt
		}
	}

	if lowestTax == base {
		recommendations = append(recommendations,
			fmt.Sprintf("No alternative lowers tax below the base; the %s regime remains best", base.BestRegime))
		return recommendations
	}

	recommendations = append(recommendations,
		"Lowest Tax: "+lowestTax.ScenarioName+" saves "+domain.FormatRupees(lowestTax.TaxDiffFromBase.Neg())+
			" versus the base under the "+string(lowestTax.BestRegime)+" regime")

	var bestReturn *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.SavingsPerRupee().IsPositive() {
			continue
		}
		if bestReturn == nil || alt.SavingsPerRupee().GreaterThan(bestReturn.SavingsPerRupee()) {
			bestReturn = alt
		}
	}
	if bestReturn != nil {
		recommendations = append(recommendations,
			"Best Return: "+bestReturn.ScenarioName+" saves ₹"+bestReturn.SavingsPerRupee().StringFixed(2)+
				" of tax per ₹1 spent")
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.RegimeChanged {
			recommendations = append(recommendations,
				fmt.Sprintf("Regime Switch: %s makes the %s regime cheaper", alt.ScenarioName, alt.BestRegime))
		}
	}

	return recommendations
}
