package output

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

type amountLine struct {
	label  string
	amount decimal.Decimal
}

// deductionLines lists the non-zero deductions in display order.
func deductionLines(d domain.DeductionBreakdown) []amountLine {
	all := []amountLine{
		{"Standard", d.Standard},
		{"80C", d.Section80C},
		{"80D", d.Section80D},
		{"80DD", d.Section80DD},
		{"80E", d.Section80E},
		{"80TTA", d.Section80TTA},
		{"Home Loan Interest", d.HomeLoanInterest},
		{"Other", d.Other},
		{"Professional Tax", d.ProfessionalTax},
	}
	lines := make([]amountLine, 0, len(all))
	for _, l := range all {
		if !l.amount.IsZero() {
			lines = append(lines, l)
		}
	}
	return lines
}
