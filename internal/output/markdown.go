package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// MarkdownFormatter renders a report suitable for pasting into notes or issues.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	details := report.Details
	old, nw := details.OldRegime, details.NewRegime

	fmt.Fprintf(&buf, "# Income Tax Computation (FY %s)\n\n", details.FinancialYear)
	fmt.Fprintf(&buf, "**%s**\n\n", report.Summary.Recommendation)

	fmt.Fprintln(&buf, "| | Old Regime | New Regime |")
	fmt.Fprintln(&buf, "|---|---:|---:|")
	rows := []struct {
		label        string
		oldV, newV string
	}{
		{"Gross Income", FormatCurrency(old.GrossIncome), FormatCurrency(nw.GrossIncome)},
		{"Exemptions", FormatCurrency(old.Exemptions.Total), FormatCurrency(nw.Exemptions.Total)},
		{"Deductions", FormatCurrency(old.Deductions.Total), FormatCurrency(nw.Deductions.Total)},
		{"Taxable Income", FormatCurrency(old.TaxableIncome), FormatCurrency(nw.TaxableIncome)},
		{"Tax", FormatCurrency(old.TaxAmount), FormatCurrency(nw.TaxAmount)},
		{"Rebate 87A", FormatCurrency(old.Rebate87A), FormatCurrency(nw.Rebate87A)},
		{"Cess", FormatCurrency(old.CessAmount), FormatCurrency(nw.CessAmount)},
		{"**Total Tax**", "**" + FormatCurrency(old.TotalTax) + "**", "**" + FormatCurrency(nw.TotalTax) + "**"},
		{"Effective Rate", FormatPercentage(old.EffectiveRate), FormatPercentage(nw.EffectiveRate)},
	}
	for _, r := range rows {
		fmt.Fprintf(&buf, "| %s | %s | %s |\n", r.label, r.oldV, r.newV)
	}
	fmt.Fprintln(&buf)

	if len(report.Recommendations.Recommendations) > 0 {
		fmt.Fprintln(&buf, "## Recommendations")
		fmt.Fprintln(&buf)
		for _, rec := range report.Recommendations.Recommendations {
			fmt.Fprintf(&buf, "- **%s** (%s): %s\n", rec.Title, rec.Priority, rec.Description)
		}
		fmt.Fprintln(&buf)
	}

	if !report.Validation.Valid {
		fmt.Fprintln(&buf, "## Validation")
		fmt.Fprintln(&buf)
		for _, p := range report.Validation.Problems {
			fmt.Fprintf(&buf, "- %s\n", p)
		}
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}
