package domain

import (
	"github.com/shopspring/decimal"
)

// Priority ranks a recommendation for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RecommendationType groups recommendations by the lever they pull.
type RecommendationType string

const (
	RecommendationRegimeChoice          RecommendationType = "regime_choice"
	RecommendationDeductionOptimization RecommendationType = "deduction_optimization"
	RecommendationHRAOptimization       RecommendationType = "hra_optimization"
	RecommendationProfessionalTax       RecommendationType = "professional_tax"
	RecommendationGeneral               RecommendationType = "general"
)

// Recommendation is advisory text. PotentialSavings is an estimate for display.
type Recommendation struct {
	Type             RecommendationType `json:"type" yaml:"type"`
	Priority         Priority           `json:"priority" yaml:"priority"`
	Title            string             `json:"title" yaml:"title"`
	Description      string             `json:"description" yaml:"description"`
	PotentialSavings decimal.Decimal    `json:"potential_savings" yaml:"potential_savings"`
}

// RecommendationSummary counts recommendations by priority.
type RecommendationSummary struct {
	Total          int `json:"total_recommendations" yaml:"total_recommendations"`
	HighPriority   int `json:"high_priority" yaml:"high_priority"`
	MediumPriority int `json:"medium_priority" yaml:"medium_priority"`
	LowPriority    int `json:"low_priority" yaml:"low_priority"`
}

// RecommendationReport is the recommendation list plus its summary.
// Fallback is set when the generic list was used instead of computed advice.
type RecommendationReport struct {
	Recommendations []Recommendation      `json:"recommendations" yaml:"recommendations"`
	Summary         RecommendationSummary `json:"summary" yaml:"summary"`
	Fallback        bool                  `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// NewRecommendationReport builds a report and counts priorities.
func NewRecommendationReport(recs []Recommendation) RecommendationReport {
	if recs == nil {
		recs = []Recommendation{}
	}
	summary := RecommendationSummary{Total: len(recs)}
	for _, rec := range recs {
		switch rec.Priority {
		case PriorityHigh:
			summary.HighPriority++
		case PriorityMedium:
			summary.MediumPriority++
		case PriorityLow:
			summary.LowPriority++
		}
	}
	return RecommendationReport{Recommendations: recs, Summary: summary}
}
