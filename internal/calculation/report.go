package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
)

// BuildReport validates, computes and recommends for one record. Validation
// problems are reported alongside the figures rather than stopping them.
func (tc *TaxCalculator) BuildReport(record domain.FinancialRecord, source string) (*domain.TaxReport, error) {
	valid, problems := tc.Validate(record)

	details, err := tc.Calculate(record)
	if err != nil {
		return nil, err
	}

	recs, err := tc.GetTaxRecommendations(details)
	if err != nil {
		return nil, err
	}

	return &domain.TaxReport{
		Source:          source,
		Details:         *details,
		Summary:         Summarize(details),
		Recommendations: recs,
		Validation:      domain.ValidationOutcome{Valid: valid, Problems: problems},
	}, nil
}
