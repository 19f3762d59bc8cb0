package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/transform"
)

// CompareEngine orchestrates what-if comparison of a financial record
type CompareEngine struct {
	Calculator        *calculation.TaxCalculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	logger            calculation.Logger
}

// NewCompareEngine creates a new comparison engine with templates sized to
// the calculator's rules
func NewCompareEngine(calc *calculation.TaxCalculator) *CompareEngine {
	rules := calc.Rules()
	return &CompareEngine{
		Calculator:        calc,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(rules),
		TransformRegistry: transform.NewTransformRegistry(rules),
		logger:            calculation.NopLogger{},
	}
}

// SetLogger sets the logger for the engine
func (ce *CompareEngine) SetLogger(l calculation.Logger) {
	if l == nil {
		ce.logger = calculation.NopLogger{}
		return
	}
	ce.logger = l
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified record
	Templates        []string // Template names or transform specs to apply
}

// Compare computes the base record and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	record *domain.FinancialRecord,
	options CompareOptions,
) (*ComparisonSet, error) {
	if record == nil {
		return nil, fmt.Errorf("base record cannot be nil")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseDetails, err := ce.Calculator.Calculate(*record)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseDetails)
	baseResult.Description = "Record as provided"

	alternatives := []ComparisonResult{}
	for _, entry := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, err := transform.Resolve(entry, ce.TemplateRegistry, ce.TransformRegistry)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTemplate(record, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
		}

		altDetails, err := ce.Calculator.Calculate(*modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", template.Name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(template.Name, altDetails)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		ce.logger.Debugf("scenario %s: best %s regime, tax %s (%s vs base)",
			template.Name, altResult.BestRegime, altResult.BestTax.StringFixed(0), altResult.TaxDiffFromBase.StringFixed(0))

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
