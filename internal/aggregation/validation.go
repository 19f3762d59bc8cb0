package aggregation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ValidateAnnual sanity-checks an aggregated record. The warnings are
// advisory and never block calculation.
func (sa *SalaryAggregator) ValidateAnnual(record domain.FinancialRecord) (bool, []string) {
	warnings := []string{}
	limits := sa.rules.Limits

	if record.BasicSalary.GreaterThan(record.GrossSalary) {
		warnings = append(warnings, "Basic salary cannot be greater than gross salary")
	}
	if record.Deduction80C.GreaterThan(limits.Section80C) {
		warnings = append(warnings, fmt.Sprintf("80C deduction cannot exceed %s annually", domain.FormatRupees(limits.Section80C)))
	}
	if record.Deduction80D.GreaterThan(limits.Section80D) {
		warnings = append(warnings, fmt.Sprintf("80D deduction cannot exceed %s annually", domain.FormatRupees(limits.Section80D)))
	}

	band := sa.rules.GrossSalaryBand
	if record.GrossSalary.LessThan(band.Min) {
		warnings = append(warnings, "Gross salary seems too low for salaried employee")
	} else if record.GrossSalary.GreaterThan(band.Max) {
		warnings = append(warnings, "Gross salary seems unreasonably high")
	}

	if record.HRAReceived.IsPositive() && record.RentPaid.IsZero() {
		warnings = append(warnings, "HRA received but no rent paid - please verify")
	}

	return len(warnings) == 0, warnings
}
