package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected decimal.Decimal, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

const labelledSlip = `ACME Corp
Pay Slip for the month of April 2024
Basic Salary: ₹50,000
HRA: 20,000
Gross Salary: ₹1,00,000
Provident Fund: 6,000
Professional Tax: 200
TDS: 8,500.50
`

const tabularSlip = `Employee: R Sharma
Earnings
Basic 40,000
HRA 16,000
Total 80,000
Deductions
EPF 4,800
Professional 200
TDS 5,000
`

const form16Text = `Form 16
Certificate of Income Tax deducted
Annual Gross Salary: 12,00,000
TDS: 1,10,000
`

type captureLogger struct {
	calculation.NopLogger
	warnings []string
}

func (l *captureLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestDetectDocumentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.DocumentType
	}{
		{"empty text defaults to salary slip", "", domain.DocumentSalarySlip},
		{"monthly payslip", "Monthly Payslip - Basic Salary", domain.DocumentSalarySlip},
		{"form 16 keywords", "FORM16 annual statement of TDS", domain.DocumentForm16},
		{"tie goes to salary slip", "salary and tds", domain.DocumentSalarySlip},
		{"labelled slip", labelledSlip, domain.DocumentSalarySlip},
		{"form 16 certificate", form16Text, domain.DocumentForm16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDocumentType(tt.text))
		})
	}
}

func TestParseFields_LabelledAmounts(t *testing.T) {
	record := ParseFields(labelledSlip)

	assertDecimal(t, d(100000), record.GrossSalary, "gross")
	assertDecimal(t, d(50000), record.BasicSalary, "basic")
	assertDecimal(t, d(20000), record.HRAReceived, "hra")
	assertDecimal(t, d(6000), record.Deduction80C, "80c")
	assertDecimal(t, decimal.Zero, record.Deduction80D, "80d")
	assertDecimal(t, d(200), record.ProfessionalTax, "professional tax")
	assertDecimal(t, decimal.RequireFromString("8500.50"), record.TDS, "tds")
	assertDecimal(t, decimal.Zero, record.StandardDeduction, "standard deduction")
}

func TestParseFields_TabularSections(t *testing.T) {
	record := ParseFields(tabularSlip)

	assertDecimal(t, d(80000), record.GrossSalary, "gross from earnings total")
	assertDecimal(t, d(40000), record.BasicSalary, "basic")
	assertDecimal(t, d(16000), record.HRAReceived, "hra")
	assertDecimal(t, d(4800), record.Deduction80C, "80c from epf")
	assertDecimal(t, d(200), record.ProfessionalTax, "professional tax from deductions")
	assertDecimal(t, d(5000), record.TDS, "tds")
}

func TestParseFields_FirstPatternWins(t *testing.T) {
	record := ParseFields("Total Earnings: 90,000\nGross Salary: 95,000\nMediclaim 1,200\n80D: 2,500")

	assertDecimal(t, d(95000), record.GrossSalary, "gross salary label is preferred")
	assertDecimal(t, d(2500), record.Deduction80D, "80d label is preferred")
}

func TestParseFields_NoFigures(t *testing.T) {
	record := ParseFields("this document has no numbers")
	for _, f := range record.Fields() {
		assert.True(t, f.Value.IsZero(), f.Name)
	}
}

func TestParseFields_ShortLabelsNeedWordBoundary(t *testing.T) {
	record := ParseFields("Receipt 4,000\nChra 3,000")

	assertDecimal(t, decimal.Zero, record.ProfessionalTax, "pt inside receipt")
	assertDecimal(t, decimal.Zero, record.HRAReceived, "hra inside chra")
}

func TestSanitize(t *testing.T) {
	rules := domain.DefaultTaxRules()

	t.Run("negatives cleared and standard deduction defaulted", func(t *testing.T) {
		out := Sanitize(domain.FinancialRecord{
			GrossSalary: d(100000),
			TDS:         d(-500),
		}, rules)
		assertDecimal(t, decimal.Zero, out.TDS, "tds")
		assertDecimal(t, d(50000), out.StandardDeduction, "standard deduction")
	})

	t.Run("basic above gross dropped", func(t *testing.T) {
		out := Sanitize(domain.FinancialRecord{GrossSalary: d(50000), BasicSalary: d(60000)}, rules)
		assertDecimal(t, decimal.Zero, out.BasicSalary, "basic")
	})

	t.Run("basic kept when gross unknown", func(t *testing.T) {
		out := Sanitize(domain.FinancialRecord{BasicSalary: d(60000)}, rules)
		assertDecimal(t, d(60000), out.BasicSalary, "basic")
	})

	t.Run("hra above gross dropped", func(t *testing.T) {
		out := Sanitize(domain.FinancialRecord{GrossSalary: d(50000), HRAReceived: d(50001)}, rules)
		assertDecimal(t, decimal.Zero, out.HRAReceived, "hra")
	})

	t.Run("explicit standard deduction kept", func(t *testing.T) {
		out := Sanitize(domain.FinancialRecord{StandardDeduction: d(75000)}, rules)
		assertDecimal(t, d(75000), out.StandardDeduction, "standard deduction")
	})

	t.Run("input not modified", func(t *testing.T) {
		in := domain.FinancialRecord{TDS: d(-1)}
		Sanitize(in, rules)
		assertDecimal(t, d(-1), in.TDS, "input tds")
	})
}

func TestExtractFromText(t *testing.T) {
	e := NewExtractor()

	t.Run("detects type", func(t *testing.T) {
		got := e.ExtractFromText(form16Text, Options{Source: "form16.pdf"})
		assert.Equal(t, "form16.pdf", got.Source)
		assert.Equal(t, domain.DocumentForm16, got.DocumentType)
		assertDecimal(t, d(1200000), got.GrossSalary, "gross")
		assertDecimal(t, d(110000), got.TDS, "tds")
		assertDecimal(t, d(50000), got.StandardDeduction, "standard deduction")
	})

	t.Run("forced type wins", func(t *testing.T) {
		got := e.ExtractFromText(tabularSlip, Options{DocumentType: domain.DocumentSalarySlip})
		assert.Equal(t, domain.DocumentSalarySlip, got.DocumentType)
		assertDecimal(t, d(80000), got.GrossSalary, "gross")
	})
}

func TestExtractFromText_WarnsWhenNothingRecognised(t *testing.T) {
	e := NewExtractor()
	logger := &captureLogger{}
	e.SetLogger(logger)

	got := e.ExtractFromText("blank page", Options{Source: "scan.pdf"})

	assert.True(t, got.GrossSalary.IsZero())
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "scan.pdf")

	e.SetLogger(nil)
	assert.IsType(t, calculation.NopLogger{}, e.logger)
}

func TestExtractText_NotAPDF(t *testing.T) {
	data := "definitely not a pdf document"
	_, err := ExtractText(context.Background(), strings.NewReader(data), int64(len(data)), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestExtractor_Errors(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")

	data := "plain text"
	_, err = e.Extract(context.Background(), strings.NewReader(data), int64(len(data)), Options{Source: "bad.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract text from bad.pdf")
}
