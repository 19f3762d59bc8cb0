package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ConsoleLiteFormatter prints only the headline comparison.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary

	fmt.Fprintf(&buf, "INCOME TAX SUMMARY - FY %s\n", s.FinancialYear)
	fmt.Fprintf(&buf, "Old Regime: %s\n", FormatCurrency(s.OldRegimeTax))
	fmt.Fprintf(&buf, "New Regime: %s\n", FormatCurrency(s.NewRegimeTax))
	fmt.Fprintf(&buf, "Recommended: %s (Δ %s, %s)\n", s.RecommendedRegime.Title(), FormatCurrency(s.TaxSavings), FormatPercentage(s.SavingsPercentage))
	fmt.Fprintln(&buf, s.Recommendation)
	if !report.Validation.Valid {
		fmt.Fprintf(&buf, "Validation: %d problem(s)\n", len(report.Validation.Problems))
	}
	return buf.Bytes(), nil
}
