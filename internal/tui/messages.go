package tui

import (
	"github.com/rgehrsitz/itax/internal/domain"
)

// RecordLoadedMsg carries a record read from disk.
type RecordLoadedMsg struct {
	Record *domain.FinancialRecord
}

// CalculationCompleteMsg carries the report for the submitted form.
type CalculationCompleteMsg struct {
	Report *domain.TaxReport
	Err    error
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}
