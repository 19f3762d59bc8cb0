package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ConsoleFormatter renders the detailed report with per-regime breakdowns
// and slab tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	details := report.Details

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "INCOME TAX COMPUTATION - FY %s\n", details.FinancialYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	if report.Source != "" {
		fmt.Fprintf(&buf, "Source: %s\n", report.Source)
	}
	fmt.Fprintf(&buf, "Gross Income:   %s\n", FormatCurrency(details.OldRegime.GrossIncome))
	if !details.Record.TDS.IsZero() {
		fmt.Fprintf(&buf, "TDS Deducted:   %s\n", FormatCurrency(details.Record.TDS))
	}
	fmt.Fprintln(&buf)

	writeRegime(&buf, details.OldRegime)
	writeRegime(&buf, details.NewRegime)

	fmt.Fprintln(&buf, "COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Old Regime Tax:        %s\n", FormatCurrency(report.Summary.OldRegimeTax))
	fmt.Fprintf(&buf, "  New Regime Tax:        %s\n", FormatCurrency(report.Summary.NewRegimeTax))
	fmt.Fprintf(&buf, "  Recommended:           %s Regime\n", report.Summary.RecommendedRegime.Title())
	fmt.Fprintf(&buf, "  Savings:               %s (%s)\n",
		FormatCurrency(report.Summary.TaxSavings), FormatPercentage(report.Summary.SavingsPercentage))
	if !details.Record.TDS.IsZero() {
		balance := details.Best().TotalTax.Sub(details.Record.TDS)
		label := "Tax Payable:"
		if balance.IsNegative() {
			label = "Refund Due:"
		}
		fmt.Fprintf(&buf, "  %-22s %s\n", label, FormatCurrency(balance.Abs()))
	}
	fmt.Fprintln(&buf)

	writeRecommendations(&buf, report.Recommendations)
	writeValidation(&buf, report.Validation)

	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, r domain.RegimeResult) {
	fmt.Fprintf(buf, "%s REGIME\n", strings.ToUpper(r.Regime.Title()))
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  Gross Income:          %s\n", FormatCurrency(r.GrossIncome))
	if !r.Exemptions.Total.IsZero() {
		fmt.Fprintf(buf, "  Exemptions:            %s\n", FormatCurrency(r.Exemptions.Total))
		fmt.Fprintf(buf, "    HRA:                 %s\n", FormatCurrency(r.Exemptions.HRA))
		fmt.Fprintf(buf, "    LTA:                 %s\n", FormatCurrency(r.Exemptions.LTA))
		fmt.Fprintf(buf, "    Other:               %s\n", FormatCurrency(r.Exemptions.Other))
	}
	fmt.Fprintf(buf, "  Deductions:            %s\n", FormatCurrency(r.Deductions.Total))
	for _, line := range deductionLines(r.Deductions) {
		fmt.Fprintf(buf, "    %-20s %s\n", line.label+":", FormatCurrency(line.amount))
	}
	fmt.Fprintf(buf, "  Taxable Income:        %s\n", FormatCurrency(r.TaxableIncome))
	fmt.Fprintln(buf)

	if len(r.SlabBreakdown) > 0 {
		fmt.Fprintf(buf, "  %-24s %6s %14s %12s\n", "Slab", "Rate", "Income", "Tax")
		for _, s := range r.SlabBreakdown {
			fmt.Fprintf(buf, "  %-24s %6s %14s %12s\n", s.Slab, s.Rate, domain.FormatIndian(s.Income), domain.FormatIndian(s.Tax))
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "  Tax on Income:         %s\n", FormatCurrency(r.TaxAmount))
	if !r.Rebate87A.IsZero() {
		fmt.Fprintf(buf, "  Rebate u/s 87A:        %s\n", FormatCurrency(r.Rebate87A.Neg()))
	}
	fmt.Fprintf(buf, "  Health & Edu. Cess:    %s\n", FormatCurrency(r.CessAmount))
	fmt.Fprintf(buf, "  TOTAL TAX:             %s\n", FormatCurrency(r.TotalTax))
	fmt.Fprintf(buf, "  Effective Rate:        %s\n", FormatPercentage(r.EffectiveRate))
	fmt.Fprintln(buf)
}

func writeRecommendations(buf *bytes.Buffer, recs domain.RecommendationReport) {
	if len(recs.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(buf, "RECOMMENDATIONS")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	for _, rec := range recs.Recommendations {
		fmt.Fprintf(buf, "• [%s] %s\n", rec.Priority, rec.Title)
		fmt.Fprintf(buf, "  %s\n", rec.Description)
		if rec.PotentialSavings.IsPositive() {
			fmt.Fprintf(buf, "  Potential savings: %s\n", FormatCurrency(rec.PotentialSavings))
		}
	}
	fmt.Fprintln(buf)
}

func writeValidation(buf *bytes.Buffer, v domain.ValidationOutcome) {
	if v.Valid {
		return
	}
	fmt.Fprintln(buf, "VALIDATION WARNINGS")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	for _, p := range v.Problems {
		fmt.Fprintf(buf, "! %s\n", p)
	}
	fmt.Fprintln(buf)
}
