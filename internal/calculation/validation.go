package calculation

import (
	"fmt"
	"regexp"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var financialYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Validate checks a record against its declared constraints and collects
// every violation. Deductions above their ceilings are rejected here even
// though Calculate clamps them.
func (tc *TaxCalculator) Validate(record domain.FinancialRecord) (bool, []string) {
	problems := []string{}
	limits := tc.rules.Limits

	if !record.GrossSalary.IsPositive() {
		problems = append(problems, "Gross Salary is required and must be positive")
	}
	if !record.BasicSalary.IsPositive() {
		problems = append(problems, "Basic Salary is required and must be positive")
	}

	if record.Age != nil && (*record.Age < 18 || *record.Age > 100) {
		problems = append(problems, "Age must be between 18 and 100")
	}

	// A blank year stands for the default year, which is checked like any other.
	if !financialYearPattern.MatchString(record.Year()) {
		problems = append(problems, "Financial year must be in format YYYY-YY (e.g., 2024-25)")
	}

	if record.BasicSalary.GreaterThan(record.GrossSalary) {
		problems = append(problems, "Basic salary cannot be greater than gross salary")
	}

	for _, f := range record.Fields() {
		if f.Value.IsNegative() {
			problems = append(problems, fmt.Sprintf("%s cannot be negative", f.Name))
		}
	}

	ceilings := []struct {
		label   string
		claimed decimal.Decimal
		limit   decimal.Decimal
	}{
		{"80C deduction", record.Deduction80C, limits.Section80C},
		{"80D deduction", record.Deduction80D, limits.Section80D},
		{"80DD deduction", record.Deduction80DD, limits.Section80DD},
		{"80E deduction", record.Deduction80E, limits.Section80E},
		{"80TTA deduction", record.Deduction80TTA, limits.Section80TTA},
		{"Home loan interest", record.HomeLoanInterest, limits.HomeLoanInterest},
	}
	for _, c := range ceilings {
		if c.claimed.GreaterThan(c.limit) {
			problems = append(problems, fmt.Sprintf("%s cannot exceed %s", c.label, domain.FormatRupees(c.limit)))
		}
	}

	band := tc.rules.GrossSalaryBand
	if record.GrossSalary.IsPositive() {
		if record.GrossSalary.LessThan(band.Min) {
			problems = append(problems, "Gross salary seems too low for salaried employee")
		} else if record.GrossSalary.GreaterThan(band.Max) {
			problems = append(problems, "Gross salary seems unreasonably high")
		}
	}

	if len(problems) > 0 {
		tc.logger.Warnf("record failed validation: %v", problems)
	}
	return len(problems) == 0, problems
}

// ValidateRecord is Validate expressed as an error, for callers that stop on
// invalid input.
func (tc *TaxCalculator) ValidateRecord(record domain.FinancialRecord) error {
	if ok, problems := tc.Validate(record); !ok {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}
