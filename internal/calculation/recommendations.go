package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Thresholds below which headroom is not worth recommending.
var (
	min80CHeadroom            = decimal.NewFromInt(10000)
	min80DHeadroom            = decimal.NewFromInt(5000)
	hraAwarenessIncomeTrigger = decimal.NewFromInt(600000)
)

// GetTaxRecommendations derives advisory recommendations from a calculation.
// The rules are evaluated in a fixed order, so identical details always
// produce the same list.
func (tc *TaxCalculator) GetTaxRecommendations(details *domain.CalculationDetails) (domain.RecommendationReport, error) {
	if details == nil {
		return domain.RecommendationReport{}, fmt.Errorf("calculation details are required")
	}
	if details.OldRegime.Regime != domain.RegimeOld || details.NewRegime.Regime != domain.RegimeNew {
		return domain.RecommendationReport{}, fmt.Errorf("calculation details are incomplete: both regimes must be computed")
	}

	oldRegime := details.OldRegime
	comparison := details.Comparison
	limits := tc.rules.Limits

	recs := []domain.Recommendation{regimeRecommendation(comparison)}

	// Headroom is valued at the old-regime marginal rate plus cess.
	marginal := MarginalRate(oldRegime.TaxableIncome, tc.rules.OldRegime.Slabs)
	valueOf := func(amount decimal.Decimal) decimal.Decimal {
		return amount.Mul(marginal).Div(hundred).Mul(hundred.Add(tc.rules.CessRate)).Div(hundred).Round(0)
	}

	if remaining := limits.Section80C.Sub(oldRegime.Deductions.Section80C); remaining.GreaterThan(min80CHeadroom) {
		recs = append(recs, domain.Recommendation{
			Type:             domain.RecommendationDeductionOptimization,
			Priority:         domain.PriorityMedium,
			Title:            "Optimize 80C Deductions",
			Description:      fmt.Sprintf("You can save up to %s more in 80C investments (EPF, ELSS, PPF)", domain.FormatRupees(remaining)),
			PotentialSavings: valueOf(remaining),
		})
	}

	if remaining := limits.Section80D.Sub(oldRegime.Deductions.Section80D); remaining.GreaterThan(min80DHeadroom) {
		recs = append(recs, domain.Recommendation{
			Type:             domain.RecommendationDeductionOptimization,
			Priority:         domain.PriorityMedium,
			Title:            "Optimize 80D Deductions",
			Description:      fmt.Sprintf("You can save up to %s more in health insurance premiums", domain.FormatRupees(remaining)),
			PotentialSavings: valueOf(remaining),
		})
	}

	if oldRegime.Exemptions.HRA.IsZero() && oldRegime.GrossIncome.GreaterThan(hraAwarenessIncomeTrigger) {
		recs = append(recs, domain.Recommendation{
			Type:        domain.RecommendationHRAOptimization,
			Priority:    domain.PriorityLow,
			Title:       "Consider HRA Benefits",
			Description: "If you pay rent, you could save tax through HRA exemption",
		})
	}

	if details.Record.ProfessionalTax.IsZero() {
		recs = append(recs, domain.Recommendation{
			Type:        domain.RecommendationProfessionalTax,
			Priority:    domain.PriorityLow,
			Title:       "Professional Tax Deduction",
			Description: "Professional tax paid to state government is deductible",
		})
	}

	tc.logger.Debugf("generated %d recommendations", len(recs))
	return domain.NewRecommendationReport(recs), nil
}

func regimeRecommendation(comparison domain.ComparisonResult) domain.Recommendation {
	winner, loser := domain.RegimeNew, domain.RegimeOld
	if comparison.BestRegime == domain.RegimeOld {
		winner, loser = domain.RegimeOld, domain.RegimeNew
	}
	return domain.Recommendation{
		Type:             domain.RecommendationRegimeChoice,
		Priority:         domain.PriorityHigh,
		Title:            fmt.Sprintf("Choose %s Tax Regime", winner.Title()),
		Description:      fmt.Sprintf("%s regime saves you %s compared to %s regime", winner.Title(), domain.FormatRupees(comparison.TaxSavings), loser),
		PotentialSavings: comparison.TaxSavings,
	}
}

// DefaultRecommendations is the generic advice shown when no calculation is
// available. The report is marked as a fallback.
func DefaultRecommendations() domain.RecommendationReport {
	report := domain.NewRecommendationReport([]domain.Recommendation{
		{
			Type:        domain.RecommendationGeneral,
			Priority:    domain.PriorityMedium,
			Title:       "Compare Both Tax Regimes",
			Description: "Compute your tax under both the old and new regimes before declaring a choice to your employer",
		},
		{
			Type:        domain.RecommendationDeductionOptimization,
			Priority:    domain.PriorityLow,
			Title:       "Review Eligible Deductions",
			Description: "Investments under 80C and health insurance under 80D reduce tax only in the old regime",
		},
	})
	report.Fallback = true
	return report
}
