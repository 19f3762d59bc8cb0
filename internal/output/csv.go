package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/itax/internal/domain"
)

// CSVFormatter writes one row per regime.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"FinancialYear", "Regime", "GrossIncome", "Exemptions", "Deductions", "TaxableIncome",
		"TaxAmount", "Rebate87A", "Cess", "TotalTax", "EffectiveRate", "Recommended",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	details := report.Details
	for _, r := range []domain.RegimeResult{details.OldRegime, details.NewRegime} {
		row := []string{
			details.FinancialYear,
			string(r.Regime),
			r.GrossIncome.StringFixed(2),
			r.Exemptions.Total.StringFixed(2),
			r.Deductions.Total.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.TaxAmount.StringFixed(2),
			r.Rebate87A.StringFixed(2),
			r.CessAmount.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.EffectiveRate.StringFixed(2),
			boolString(r.Regime == details.Comparison.BestRegime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
