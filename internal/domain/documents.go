package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDocuments is the largest salary-slip batch that can be aggregated.
const MaxDocuments = 4

// DocumentType classifies an uploaded salary document.
type DocumentType string

const (
	DocumentSalarySlip DocumentType = "salary_slip"
	DocumentForm16     DocumentType = "form16"
)

// ParseDocumentType normalizes spellings such as "Form-16" or "payslip".
func ParseDocumentType(s string) (DocumentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "salaryslip", "payslip", "slip", "salary":
		return DocumentSalarySlip, nil
	case "form16":
		return DocumentForm16, nil
	default:
		return "", fmt.Errorf("unknown document type %q, expected salary_slip or form16", s)
	}
}

// RawExtract is the figures read from a single uploaded document.
type RawExtract struct {
	Source          string       `yaml:"source,omitempty" json:"source,omitempty"`
	DocumentType    DocumentType `yaml:"document_type,omitempty" json:"document_type,omitempty"`
	FinancialRecord `yaml:",inline"`
}

// DocumentBatch is a set of extracts uploaded together.
type DocumentBatch struct {
	DocumentType DocumentType `yaml:"document_type" json:"document_type"`
	Documents    []RawExtract `yaml:"documents" json:"documents"`
}

// AccuracyTier expresses confidence in an annualized figure.
type AccuracyTier string

const (
	AccuracyMedium    AccuracyTier = "medium"
	AccuracyGood      AccuracyTier = "good"
	AccuracyVeryGood  AccuracyTier = "very_good"
	AccuracyExcellent AccuracyTier = "excellent"
	AccuracyUnknown   AccuracyTier = "unknown"
)

// ProcessingSummary describes how an annual record was derived.
type ProcessingSummary struct {
	FilesProcessed       int             `json:"files_processed" yaml:"files_processed"`
	DocumentType         DocumentType    `json:"document_type" yaml:"document_type"`
	InterpolationApplied bool            `json:"interpolation_applied" yaml:"interpolation_applied"`
	AnnualConversion     bool            `json:"annual_conversion" yaml:"annual_conversion"`
	AnnualizationFactor  decimal.Decimal `json:"annualization_factor" yaml:"annualization_factor"`
	EstimatedAccuracy    AccuracyTier    `json:"estimated_accuracy" yaml:"estimated_accuracy"`
	ProcessingNotes      []string        `json:"processing_notes" yaml:"processing_notes"`
}

// AggregationResult bundles an aggregated record with its advisory checks.
type AggregationResult struct {
	Record   FinancialRecord   `json:"financial_data" yaml:"financial_data"`
	Valid    bool              `json:"valid" yaml:"valid"`
	Warnings []string          `json:"warnings" yaml:"warnings"`
	Summary  ProcessingSummary `json:"processing_summary" yaml:"processing_summary"`
}
