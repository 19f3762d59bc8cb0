package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a set of break-even results
func (tf *TableFormatter) Format(results []Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	if len(results) > 0 {
		sb.WriteString(fmt.Sprintf("Current old regime tax: %s\n", domain.FormatRupees(results[0].BaseOldRegimeTax)))
		sb.WriteString(fmt.Sprintf("Current new regime tax: %s\n", domain.FormatRupees(results[0].BaseNewRegimeTax)))
		sb.WriteString("\n")
	}

	for _, r := range results {
		sb.WriteString(tf.targetTitle(r.Target) + "\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		switch {
		case !r.Success:
			sb.WriteString(fmt.Sprintf("Not reachable: %s\n", r.ConvergenceInfo))
		case r.ExtraDeduction.IsZero():
			sb.WriteString("Already met with current deductions\n")
		default:
			sb.WriteString(fmt.Sprintf("Extra deductions needed: %s\n", domain.FormatRupees(r.ExtraDeduction)))
			sb.WriteString(fmt.Sprintf("Old regime tax then:     %s\n", domain.FormatRupees(r.OldRegimeTax)))
			sb.WriteString(fmt.Sprintf("New regime tax:          %s\n", domain.FormatRupees(r.NewRegimeTax)))
			sb.WriteString(fmt.Sprintf("Iterations:              %d\n", r.Iterations))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) targetTitle(t Target) string {
	switch t {
	case TargetRegimeParity:
		return "OLD REGIME BREAK-EVEN"
	case TargetZeroTax:
		return "ZERO TAX UNDER OLD REGIME"
	default:
		return strings.ToUpper(string(t))
	}
}
