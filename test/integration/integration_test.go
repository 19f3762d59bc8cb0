package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/itax/internal/aggregation"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	recordFile = "../testdata/record.yaml"
	slipsFile  = "../testdata/slips.yaml"
)

func TestEndToEndCalculation(t *testing.T) {
	record, err := config.NewInputParser().LoadRecord(recordFile)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", record.FinancialYear)

	calc := calculation.NewTaxCalculator()
	report, err := calc.BuildReport(*record, recordFile)
	require.NoError(t, err)

	assert.True(t, report.Validation.Valid)
	assert.Equal(t, domain.RegimeOld, report.Details.Comparison.BestRegime)
	assert.True(t, decimal.NewFromInt(30680).Equal(report.Details.OldRegime.TotalTax), "old regime tax %s", report.Details.OldRegime.TotalTax)
	assert.True(t, decimal.NewFromInt(54600).Equal(report.Details.NewRegime.TotalTax), "new regime tax %s", report.Details.NewRegime.TotalTax)
	assert.True(t, decimal.NewFromInt(23920).Equal(report.Details.Comparison.TaxSavings))
	assert.NotEmpty(t, report.Recommendations.Recommendations)
}

func TestSlipsToReport(t *testing.T) {
	batch, err := config.NewInputParser().LoadBatch(slipsFile)
	require.NoError(t, err)
	require.Len(t, batch.Documents, 3)

	calc := calculation.NewTaxCalculator()
	agg := aggregation.NewSalaryAggregatorWithRules(calc.Rules())
	result, err := agg.AggregateWithReport(batch.Documents, batch.DocumentType)
	require.NoError(t, err)

	// Three slips are summed and multiplied by four
	assert.True(t, decimal.NewFromInt(1200000).Equal(result.Record.GrossSalary))
	assert.True(t, decimal.NewFromInt(600000).Equal(result.Record.BasicSalary))
	assert.True(t, decimal.NewFromInt(96000).Equal(result.Record.TDS))
	assert.Equal(t, 3, result.Summary.FilesProcessed)

	report, err := calc.BuildReport(result.Record, slipsFile)
	require.NoError(t, err)

	best := report.Details.Best()
	assert.True(t, best.TotalTax.LessThanOrEqual(report.Details.OldRegime.TotalTax))
	assert.True(t, best.TotalTax.LessThanOrEqual(report.Details.NewRegime.TotalTax))
}

func TestOutputFormats(t *testing.T) {
	record, err := config.NewInputParser().LoadRecord(recordFile)
	require.NoError(t, err)
	report, err := calculation.NewTaxCalculator().BuildReport(*record, recordFile)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(fmt.Sprintf("format_%s", name), func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(report)
			require.NoError(t, err, "Should generate %s output", name)
			assert.NotEmpty(t, data)
		})
	}
}

func TestCompareStrategies(t *testing.T) {
	record, err := config.NewInputParser().LoadRecord(recordFile)
	require.NoError(t, err)

	calc := calculation.NewTaxCalculator()
	templates := transform.ParseTemplateList("max_home_loan,max_80tta")
	set, err := compare.NewCompareEngine(calc).Compare(context.Background(), record, compare.CompareOptions{
		BaseScenarioName: "base",
		Templates:        templates,
	})
	require.NoError(t, err)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 2)

	for _, alt := range set.AlternativeResults {
		// Extra deductions never raise the best-regime tax
		assert.True(t, alt.BestTax.LessThanOrEqual(set.BaseResult.BestTax), "%s raised tax", alt.ScenarioName)
	}
}

func TestCalculationConsistency(t *testing.T) {
	record, err := config.NewInputParser().LoadRecord(recordFile)
	require.NoError(t, err)

	calc := calculation.NewTaxCalculator()
	first, err := calc.Calculate(*record)
	require.NoError(t, err)
	second, err := calc.Calculate(*record)
	require.NoError(t, err)

	assert.True(t, first.OldRegime.TotalTax.Equal(second.OldRegime.TotalTax))
	assert.True(t, first.NewRegime.TotalTax.Equal(second.NewRegime.TotalTax))
	assert.Equal(t, first.Comparison.BestRegime, second.Comparison.BestRegime)
}

func TestCalculationPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	record, err := config.NewInputParser().LoadRecord(recordFile)
	require.NoError(t, err)
	calc := calculation.NewTaxCalculator()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		_, err := calc.Calculate(*record)
		require.NoError(t, err)
	}
	duration := time.Since(start)
	assert.Less(t, duration, 10*time.Second)
	t.Logf("1000 calculations completed in %v", duration)
}
