package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIndian renders a whole-rupee amount with Indian digit grouping
// (12,34,567). Fractions are rounded away.
func FormatIndian(amount decimal.Decimal) string {
	s := amount.Round(0).Abs().StringFixed(0)
	neg := amount.Round(0).IsNegative()

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatRupees renders an amount as "₹1,50,000".
func FormatRupees(amount decimal.Decimal) string {
	if amount.Round(0).IsNegative() {
		return "-₹" + FormatIndian(amount.Abs())
	}
	return "₹" + FormatIndian(amount)
}

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
