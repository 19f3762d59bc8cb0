package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Description",
		"Old Regime Tax",
		"New Regime Tax",
		"Best Regime",
		"Best Tax",
		"Taxable Income",
		"Effective Rate",
		"Tax Diff from Base",
		"Tax % Change",
		"Additional Spend",
		"Regime Changed",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Description,
		result.OldRegimeTax.StringFixed(2),
		result.NewRegimeTax.StringFixed(2),
		string(result.BestRegime),
		result.BestTax.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		result.AdditionalSpend.StringFixed(2),
		strconv.FormatBool(result.RegimeChanged),
	}
}
