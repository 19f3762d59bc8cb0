package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// Summarize condenses a calculation into the recommended regime and savings.
func Summarize(details *domain.CalculationDetails) domain.TaxSummary {
	c := details.Comparison
	return domain.TaxSummary{
		FinancialYear:     details.FinancialYear,
		RecommendedRegime: c.BestRegime,
		OldRegimeTax:      details.OldRegime.TotalTax,
		NewRegimeTax:      details.NewRegime.TotalTax,
		TaxSavings:        c.TaxSavings,
		SavingsPercentage: c.SavingsPercentage,
		Recommendation:    fmt.Sprintf("Choose %s regime to save %s", c.BestRegime, domain.FormatRupees(c.TaxSavings)),
	}
}

// SelectRegime returns the result for the regime a user chose to file under.
func SelectRegime(details *domain.CalculationDetails, regime string) (domain.RegimeResult, error) {
	r, err := domain.ParseRegime(regime)
	if err != nil {
		return domain.RegimeResult{}, err
	}
	if r == domain.RegimeOld {
		return details.OldRegime, nil
	}
	return details.NewRegime, nil
}
