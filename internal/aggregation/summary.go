package aggregation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// EstimateAccuracy maps the number of slips to a confidence tier.
func EstimateAccuracy(files int) domain.AccuracyTier {
	switch files {
	case 1:
		return domain.AccuracyMedium
	case 2:
		return domain.AccuracyGood
	case 3:
		return domain.AccuracyVeryGood
	case 4:
		return domain.AccuracyExcellent
	default:
		return domain.AccuracyUnknown
	}
}

// Summary describes how record was derived from extracts.
func (sa *SalaryAggregator) Summary(extracts []domain.RawExtract, docType domain.DocumentType, record domain.FinancialRecord) domain.ProcessingSummary {
	n := len(extracts)
	summary := domain.ProcessingSummary{
		FilesProcessed:      n,
		DocumentType:        docType,
		EstimatedAccuracy:   EstimateAccuracy(n),
		AnnualizationFactor: decimal.NewFromInt(1),
		ProcessingNotes:     []string{},
	}

	if docType == domain.DocumentForm16 {
		summary.ProcessingNotes = append(summary.ProcessingNotes, "Form 16 - annual figures used as-is")
	} else if factor, err := InterpolationFactor(n); err == nil {
		summary.AnnualConversion = true
		summary.AnnualizationFactor = factor
		summary.InterpolationApplied = n > 1
		if n == 1 {
			summary.ProcessingNotes = append(summary.ProcessingNotes, "Single salary slip - monthly amounts multiplied by 12")
		} else {
			summary.ProcessingNotes = append(summary.ProcessingNotes,
				fmt.Sprintf("Multiple salary slips - %d files aggregated", n),
				"Missing months interpolated using available data")
		}
	}

	if ok, warnings := sa.ValidateAnnual(record); !ok {
		for _, w := range warnings {
			summary.ProcessingNotes = append(summary.ProcessingNotes, "Warning: "+w)
		}
	}
	return summary
}

// AggregateWithReport aggregates extracts and attaches the consistency
// findings, annual validation warnings and processing summary.
func (sa *SalaryAggregator) AggregateWithReport(extracts []domain.RawExtract, docType domain.DocumentType) (*domain.AggregationResult, error) {
	record, err := sa.Aggregate(extracts, docType)
	if err != nil {
		return nil, err
	}

	valid, warnings := sa.ValidateAnnual(record)
	if docType == domain.DocumentSalarySlip {
		warnings = append(warnings, variationFindings(extracts)...)
	}

	return &domain.AggregationResult{
		Record:   record,
		Valid:    valid,
		Warnings: warnings,
		Summary:  sa.Summary(extracts, docType, record),
	}, nil
}
