package calculation

import (
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_EndToEndScenario(t *testing.T) {
	tc := NewTaxCalculator()

	details, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)

	old := details.OldRegime
	assertDecimal(t, "190000", old.Exemptions.HRA, "HRA exemption")
	assertDecimal(t, "585000", old.TaxableIncome, "old taxable income")
	assertDecimal(t, "29500", old.TaxAmount, "old tax")
	assertDecimal(t, "0", old.Rebate87A, "old rebate")
	assertDecimal(t, "1180", old.CessAmount, "old cess")
	assertDecimal(t, "30680", old.TotalTax, "old total")

	newRegime := details.NewRegime
	assertDecimal(t, "950000", newRegime.TaxableIncome, "new taxable income")
	assertDecimal(t, "52500", newRegime.TaxAmount, "new tax")
	assertDecimal(t, "2100", newRegime.CessAmount, "new cess")
	assertDecimal(t, "54600", newRegime.TotalTax, "new total")

	assert.Equal(t, domain.RegimeOld, details.Comparison.BestRegime)
	assertDecimal(t, "23920", details.Comparison.TaxSavings, "savings")
	// 23920 / 54600 * 100
	assertDecimal(t, "43.81", details.Comparison.SavingsPercentage, "savings percentage")
	assert.Equal(t, "2024-25", details.FinancialYear)
}

func TestCalculate_SlabBreakdown(t *testing.T) {
	tc := NewTaxCalculator()

	details, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)

	old := details.OldRegime.SlabBreakdown
	require.Len(t, old, 3)
	assert.Equal(t, "0 - 2,50,000", old[0].Slab)
	assert.Equal(t, "0%", old[0].Rate)
	assertDecimal(t, "250000", old[0].Income)
	assertDecimal(t, "0", old[0].Tax)
	assert.Equal(t, "2,50,000 - 5,00,000", old[1].Slab)
	assertDecimal(t, "12500", old[1].Tax)
	assert.Equal(t, "5,00,000 - 10,00,000", old[2].Slab)
	assert.Equal(t, "20%", old[2].Rate)
	assertDecimal(t, "85000", old[2].Income)
	assertDecimal(t, "17000", old[2].Tax)

	newSlabs := details.NewRegime.SlabBreakdown
	require.Len(t, newSlabs, 4)
	assertDecimal(t, "50000", newSlabs[3].Income)
	assertDecimal(t, "7500", newSlabs[3].Tax)
}

func TestCalculate_ZeroRecordTiesToOld(t *testing.T) {
	tc := NewTaxCalculator()

	record := domain.FinancialRecord{}
	details, err := tc.Calculate(record)
	require.NoError(t, err)

	assertDecimal(t, "0", details.OldRegime.TotalTax)
	assertDecimal(t, "0", details.NewRegime.TotalTax)
	assert.Equal(t, domain.RegimeOld, details.Comparison.BestRegime)
	assertDecimal(t, "0", details.Comparison.TaxSavings)
	assertDecimal(t, "0", details.Comparison.SavingsPercentage)
	assertDecimal(t, "0", details.OldRegime.EffectiveRate)
	assert.Empty(t, details.OldRegime.SlabBreakdown)
	assert.Equal(t, domain.DefaultFinancialYear, details.FinancialYear)
}

func TestCalculate_NegativeTaxableIncomeClampedToZero(t *testing.T) {
	tc := NewTaxCalculator()

	record := domain.FinancialRecord{
		GrossSalary:  d(100000),
		BasicSalary:  d(60000),
		Deduction80C: d(150000),
	}
	details, err := tc.Calculate(record)
	require.NoError(t, err)

	assertDecimal(t, "0", details.OldRegime.TaxableIncome)
	assertDecimal(t, "0", details.OldRegime.TotalTax)
	assert.Empty(t, details.OldRegime.SlabBreakdown)

	// The new regime ignores 80C; only the standard deduction applies
	assertDecimal(t, "50000", details.NewRegime.TaxableIncome)
	assertDecimal(t, "0", details.NewRegime.TotalTax)
}

func TestCalculate_MonotonicInGrossSalary(t *testing.T) {
	tc := NewTaxCalculator()

	base := sampleRecord()
	prevOld, prevNew := decimal.Zero, decimal.Zero
	for gross := int64(0); gross <= 6000000; gross += 37500 {
		record := base
		record.GrossSalary = d(gross)

		details, err := tc.Calculate(record)
		require.NoError(t, err)

		assert.True(t, details.OldRegime.TotalTax.GreaterThanOrEqual(prevOld),
			"old regime tax decreased at gross %d: %s < %s", gross, details.OldRegime.TotalTax, prevOld)
		assert.True(t, details.NewRegime.TotalTax.GreaterThanOrEqual(prevNew),
			"new regime tax decreased at gross %d: %s < %s", gross, details.NewRegime.TotalTax, prevNew)

		prevOld, prevNew = details.OldRegime.TotalTax, details.NewRegime.TotalTax
	}
}

func TestCalculate_ClampsDeductionsRegardlessOfValidation(t *testing.T) {
	tc := NewTaxCalculator()

	record := sampleRecord()
	record.Deduction80C = d(200000)
	record.Deduction80D = d(90000)
	record.Deduction80DD = d(500000)
	record.Deduction80E = d(60000)
	record.Deduction80TTA = d(15000)
	record.HomeLoanInterest = d(350000)

	ok, problems := tc.Validate(record)
	assert.False(t, ok)
	assert.Contains(t, problems, "80C deduction cannot exceed ₹1,50,000")

	details, err := tc.Calculate(record)
	require.NoError(t, err)

	ded := details.OldRegime.Deductions
	assertDecimal(t, "150000", ded.Section80C)
	assertDecimal(t, "25000", ded.Section80D)
	assertDecimal(t, "125000", ded.Section80DD)
	assertDecimal(t, "40000", ded.Section80E)
	assertDecimal(t, "10000", ded.Section80TTA)
	assertDecimal(t, "200000", ded.HomeLoanInterest)
	assertDecimal(t, "600000", ded.Total) // 50000 standard + 550000 capped
}

func TestCalculate_OldRegimeIncludesLTAAndOtherIncome(t *testing.T) {
	tc := NewTaxCalculator()

	record := sampleRecord()
	record.LTAReceived = d(30000)
	record.OtherExemptions = d(5000)
	record.OtherIncome = d(40000)
	record.OtherDeductions = d(10000)
	record.ProfessionalTax = d(2500)

	details, err := tc.Calculate(record)
	require.NoError(t, err)

	old := details.OldRegime
	assertDecimal(t, "1040000", old.GrossIncome)
	assertDecimal(t, "225000", old.Exemptions.Total)
	assertDecimal(t, "237500", old.Deductions.Total)
	assertDecimal(t, "577500", old.TaxableIncome)

	// New regime ignores exemptions and Chapter VI-A but keeps professional tax
	newRegime := details.NewRegime
	assertDecimal(t, "0", newRegime.Exemptions.Total)
	assertDecimal(t, "52500", newRegime.Deductions.Total)
	assertDecimal(t, "987500", newRegime.TaxableIncome)
}

func TestCalculate_DefaultStandardDeduction(t *testing.T) {
	tc := NewTaxCalculator()

	record := sampleRecord()
	record.StandardDeduction = decimal.Zero

	details, err := tc.Calculate(record)
	require.NoError(t, err)
	assertDecimal(t, "50000", details.OldRegime.Deductions.Standard)
	assertDecimal(t, "50000", details.NewRegime.Deductions.Standard)
}

func TestCalculate_NewRegimeRebate(t *testing.T) {
	tc := NewTaxCalculator()

	// 750000 - 50000 standard deduction = 700000 taxable
	record := domain.FinancialRecord{GrossSalary: d(750000), BasicSalary: d(375000)}
	details, err := tc.Calculate(record)
	require.NoError(t, err)

	assertDecimal(t, "700000", details.NewRegime.TaxableIncome)
	assertDecimal(t, "25000", details.NewRegime.TaxAmount)
	assertDecimal(t, "25000", details.NewRegime.Rebate87A)
	assertDecimal(t, "0", details.NewRegime.TotalTax)
	assert.Equal(t, domain.RegimeNew, details.Comparison.BestRegime)
	assertDecimal(t, "100", details.Comparison.SavingsPercentage)
}

func TestCalculate_OldRegimeRebateBoundary(t *testing.T) {
	tc := NewTaxCalculator()

	atThreshold := domain.FinancialRecord{GrossSalary: d(550000), BasicSalary: d(300000)}
	details, err := tc.Calculate(atThreshold)
	require.NoError(t, err)

	old := details.OldRegime
	assertDecimal(t, "500000", old.TaxableIncome)
	assertDecimal(t, "12500", old.TaxAmount)
	assertDecimal(t, "12500", old.Rebate87A)
	assertDecimal(t, "0", old.TotalTax)

	overThreshold := domain.FinancialRecord{GrossSalary: d(550001), BasicSalary: d(300000)}
	details, err = tc.Calculate(overThreshold)
	require.NoError(t, err)

	old = details.OldRegime
	assertDecimal(t, "500001", old.TaxableIncome)
	assertDecimal(t, "0", old.Rebate87A)
	assertDecimal(t, "12500.2", old.TaxAmount)
	assertDecimal(t, "500.008", old.CessAmount)
	assertDecimal(t, "13000.208", old.TotalTax)
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	tc := NewTaxCalculator()

	age := 35
	record := sampleRecord()
	record.Age = &age
	record.Deduction80C = d(200000)

	details, err := tc.Calculate(record)
	require.NoError(t, err)

	assertDecimal(t, "200000", record.Deduction80C)
	assertDecimal(t, "200000", details.Record.Deduction80C)
	*details.Record.Age = 99
	assert.Equal(t, 35, age)
}

func TestCalculate_Deterministic(t *testing.T) {
	tc := NewTaxCalculator()

	first, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)
	second, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewTaxCalculatorWithRules_RejectsMalformedSlabs(t *testing.T) {
	rules := domain.DefaultTaxRules()
	rules.OldRegime.Slabs[1], rules.OldRegime.Slabs[2] = rules.OldRegime.Slabs[2], rules.OldRegime.Slabs[1]

	tc, err := NewTaxCalculatorWithRules(rules)
	assert.Nil(t, tc)
	require.Error(t, err)

	var fault *domain.ComputationFault
	assert.ErrorAs(t, err, &fault)
	assert.Contains(t, err.Error(), "validate_old_slabs")
}

func TestNewTaxCalculatorWithRules_CustomTable(t *testing.T) {
	rules := domain.DefaultTaxRules()
	rules.CessRate = decimal.Zero

	tc, err := NewTaxCalculatorWithRules(rules)
	require.NoError(t, err)

	details, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)
	assertDecimal(t, "29500", details.OldRegime.TotalTax)
}

type recordingLogger struct {
	NopLogger
	infos []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, format)
}

func TestSetLogger(t *testing.T) {
	tc := NewTaxCalculator()
	logger := &recordingLogger{}
	tc.SetLogger(logger)

	_, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)
	assert.Len(t, logger.infos, 1)

	tc.SetLogger(nil)
	_, err = tc.Calculate(sampleRecord())
	require.NoError(t, err)
	assert.Len(t, logger.infos, 1)
}

func TestSummarizeAndSelectRegime(t *testing.T) {
	tc := NewTaxCalculator()
	details, err := tc.Calculate(sampleRecord())
	require.NoError(t, err)

	summary := Summarize(details)
	assert.Equal(t, domain.RegimeOld, summary.RecommendedRegime)
	assert.Equal(t, "Choose old regime to save ₹23,920", summary.Recommendation)
	assertDecimal(t, "30680", summary.OldRegimeTax)
	assertDecimal(t, "54600", summary.NewRegimeTax)

	chosen, err := SelectRegime(details, "new_regime")
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, chosen.Regime)

	_, err = SelectRegime(details, "flat")
	assert.Error(t, err)
}

func TestBuildReport(t *testing.T) {
	tc := NewTaxCalculator()

	report, err := tc.BuildReport(sampleRecord(), "record.yaml")
	require.NoError(t, err)

	assert.Equal(t, "record.yaml", report.Source)
	assert.True(t, report.Validation.Valid)
	assert.Empty(t, report.Validation.Problems)
	assert.Equal(t, domain.RegimeOld, report.Summary.RecommendedRegime)
	assert.Equal(t, "Choose old regime to save ₹23,920", report.Summary.Recommendation)
	assertDecimal(t, "30680", report.Details.OldRegime.TotalTax)
	assert.NotEmpty(t, report.Recommendations.Recommendations)
	assert.False(t, report.Recommendations.Fallback)
}

func TestBuildReport_InvalidRecordStillComputed(t *testing.T) {
	tc := NewTaxCalculator()
	record := sampleRecord()
	record.BasicSalary = d(2000000)

	report, err := tc.BuildReport(record, "")
	require.NoError(t, err)

	assert.False(t, report.Validation.Valid)
	assert.Contains(t, report.Validation.Problems, "Basic salary cannot be greater than gross salary")
	assert.True(t, report.Details.OldRegime.TotalTax.IsPositive())
}
