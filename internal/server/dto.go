package server

import (
	"github.com/rgehrsitz/itax/internal/domain"
)

// Error codes carried in ErrorResponse.Error.
const (
	codeInvalidRequest    = "INVALID_REQUEST"
	codeValidationFailed  = "VALIDATION_FAILED"
	codeCalculationFailed = "CALCULATION_FAILED"
	codeAggregationFailed = "AGGREGATION_FAILED"
	codeExtractionFailed  = "EXTRACTION_FAILED"
	codeSessionNotFound   = "SESSION_NOT_FOUND"
	codeStorageFailed     = "STORAGE_FAILED"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Code     int      `json:"code"`
	Problems []string `json:"problems,omitempty"`
}

// CalculationResponse is returned by calculate and results.
type CalculationResponse struct {
	SessionID       string                      `json:"session_id"`
	Calculation     domain.CalculationDetails   `json:"calculation"`
	Recommendations domain.RecommendationReport `json:"recommendations"`
	Summary         domain.TaxSummary           `json:"summary"`
	SelectedRegime  domain.Regime               `json:"selected_regime,omitempty"`
}

// SummaryResponse is returned by the summary route.
type SummaryResponse struct {
	SessionID string            `json:"session_id"`
	Summary   domain.TaxSummary `json:"summary"`
}

// SelectRegimeRequest chooses the regime a user will file under.
type SelectRegimeRequest struct {
	SessionID string `json:"session_id"`
	Regime    string `json:"regime"`
}

// SelectRegimeResponse echoes the chosen regime and its figures.
type SelectRegimeResponse struct {
	SessionID      string              `json:"session_id"`
	SelectedRegime domain.Regime       `json:"selected_regime"`
	Result         domain.RegimeResult `json:"result"`
}

// AggregateRequest is a batch of per-document extracts.
type AggregateRequest struct {
	DocumentType string              `json:"document_type"`
	Documents    []domain.RawExtract `json:"documents"`
}
