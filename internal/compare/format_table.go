package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Record: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Best",
		numWidth, "Regime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			taxSymbol := tf.deltaSymbol(alt.TaxDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Tax Impact:       %s₹%s (%s%%)\n",
				taxSymbol,
				domain.FormatIndian(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))

			if alt.AdditionalSpend.IsPositive() {
				sb.WriteString(fmt.Sprintf("  Extra Spend:      ₹%s\n", domain.FormatIndian(alt.AdditionalSpend)))
			}

			if alt.RegimeChanged {
				sb.WriteString(fmt.Sprintf("  Best Regime:      now %s\n", alt.BestRegime))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	if result == nil {
		return ""
	}
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.OldRegimeTax),
		numWidth, tf.formatDecimal(result.NewRegimeTax),
		numWidth, tf.formatDecimal(result.BestTax),
		numWidth, string(result.BestRegime))
}

// formatDecimal formats an amount for display in lakh or thousands
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		lakhs := d.Div(decimal.NewFromInt(100000))
		return lakhs.StringFixed(2) + "L"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns + when tax goes up and - when it goes down
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		taxChange := "="
		if alt.TaxDiffFromBase.IsPositive() {
			taxChange = fmt.Sprintf("+₹%s", tf.formatDecimal(alt.TaxDiffFromBase))
		} else if alt.TaxDiffFromBase.IsNegative() {
			taxChange = fmt.Sprintf("-₹%s", tf.formatDecimal(alt.TaxDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, taxChange))
	}

	return sb.String()
}
