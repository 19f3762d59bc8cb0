package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadRecord_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	record, err := parser.LoadRecord("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, record, "Should return nil record")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadRecord_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	record, err := NewInputParser().LoadRecord(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, record, "Should return nil record")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadRecord_ValidYAML(t *testing.T) {
	path := writeTemp(t, "record.yaml", `
financial_year: "2024-25"
age: 32
gross_salary: 1200000
basic_salary: 600000
hra_received: 240000
rent_paid: 300000
deduction_80c: 150000
deduction_80d: 25000
professional_tax: 2400
`)

	record, err := NewInputParser().LoadRecord(path)

	require.NoError(t, err, "Should not error for valid YAML")
	assert.Equal(t, "2024-25", record.FinancialYear)
	require.NotNil(t, record.Age)
	assert.Equal(t, 32, *record.Age)
	assert.True(t, record.GrossSalary.Equal(decimal.NewFromInt(1200000)), "Should parse gross salary")
	assert.True(t, record.RentPaid.Equal(decimal.NewFromInt(300000)), "Should parse rent")
	assert.True(t, record.ProfessionalTax.Equal(decimal.NewFromInt(2400)), "Should parse professional tax")
	assert.True(t, record.HomeLoanInterest.IsZero(), "Missing fields default to zero")
}

func TestInputParser_ParseRecord_JSON(t *testing.T) {
	record, err := NewInputParser().ParseRecord([]byte(`{"gross_salary": 800000, "basic_salary": "400000.50"}`))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFinancialYear, record.FinancialYear, "Should default the financial year")
	assert.True(t, record.BasicSalary.Equal(decimal.RequireFromString("400000.50")))
}

func TestInputParser_ParseRecord_BadFinancialYear(t *testing.T) {
	_, err := NewInputParser().ParseRecord([]byte("financial_year: \"FY2024\"\ngross_salary: 1\n"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-YY")
}

func TestInputParser_LoadBatch(t *testing.T) {
	path := writeTemp(t, "batch.yaml", `
document_type: payslip
documents:
  - source: april.pdf
    gross_salary: 100000
    basic_salary: 50000
  - source: may.pdf
    document_type: salary_slip
    gross_salary: 100000
    basic_salary: 50000
`)

	batch, err := NewInputParser().LoadBatch(path)

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentSalarySlip, batch.DocumentType, "Should normalize the document type")
	require.Len(t, batch.Documents, 2)
	assert.Equal(t, "april.pdf", batch.Documents[0].Source)
	assert.True(t, batch.Documents[1].GrossSalary.Equal(decimal.NewFromInt(100000)), "Inline record fields should parse")
}

func TestInputParser_ParseBatch_DefaultsToSalarySlip(t *testing.T) {
	batch, err := NewInputParser().ParseBatch([]byte("documents:\n  - gross_salary: 1\n"))

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentSalarySlip, batch.DocumentType)
}

func TestInputParser_ParseBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown type",
			yaml:    "document_type: invoice\n",
			wantErr: "unknown document type",
		},
		{
			name:    "mixed types",
			yaml:    "document_type: form16\ndocuments:\n  - document_type: salary_slip\n",
			wantErr: "document 1 is salary_slip",
		},
		{
			name:    "too many documents",
			yaml:    "documents: [{}, {}, {}, {}, {}]\n",
			wantErr: "at most 4 documents",
		},
		{
			name:    "invalid YAML",
			yaml:    "documents: [",
			wantErr: "failed to parse YAML",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := parser.ParseBatch([]byte(tt.yaml))
			assert.Nil(t, batch)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_ParseRules_OverridesDefaults(t *testing.T) {
	rules, err := NewInputParser().ParseRules([]byte(`
financial_year: "2025-26"
standard_deduction: 75000
new_regime:
  slabs:
    - {lower: 0, upper: 400000, rate: 0}
    - {lower: 400000, upper: 800000, rate: 5}
    - {lower: 800000, rate: 10}
  rebate_threshold: 1200000
  rebate_limit: 60000
`))

	require.NoError(t, err)
	assert.Equal(t, "2025-26", rules.FinancialYear)
	assert.True(t, rules.StandardDeduction.Equal(decimal.NewFromInt(75000)))
	require.Len(t, rules.NewRegime.Slabs, 3)
	assert.Nil(t, rules.NewRegime.Slabs[2].Upper, "Final slab should be unbounded")
	assert.True(t, rules.NewRegime.RebateLimit.Equal(decimal.NewFromInt(60000)))

	defaults := domain.DefaultTaxRules()
	assert.Len(t, rules.OldRegime.Slabs, len(defaults.OldRegime.Slabs), "Old regime should keep defaults")
	assert.True(t, rules.CessRate.Equal(defaults.CessRate), "Cess should keep default")
}

func TestInputParser_ParseRules_RejectsGap(t *testing.T) {
	_, err := NewInputParser().ParseRules([]byte(`
old_regime:
  slabs:
    - {lower: 0, upper: 250000, rate: 0}
    - {lower: 300000, rate: 5}
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules validation failed")
	var fault *domain.ComputationFault
	assert.ErrorAs(t, err, &fault)
}

func TestInputParser_LoadRules_FileNotFound(t *testing.T) {
	_, err := NewInputParser().LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestSaveRecord_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	record := &domain.FinancialRecord{
		FinancialYear: "2024-25",
		GrossSalary:   decimal.NewFromInt(900000),
		BasicSalary:   decimal.NewFromInt(450000),
		TDS:           decimal.NewFromInt(42000),
	}

	require.NoError(t, SaveRecord(record, path))
	loaded, err := NewInputParser().LoadRecord(path)

	require.NoError(t, err)
	assert.True(t, loaded.GrossSalary.Equal(record.GrossSalary))
	assert.True(t, loaded.TDS.Equal(record.TDS))
}
