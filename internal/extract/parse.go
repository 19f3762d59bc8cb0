package extract

import (
	"regexp"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// amountSuffix matches an optional colon and currency marker followed by
// an Indian-grouped or plain amount.
const amountSuffix = `\s*:?\s*(?:₹|rs\.?|inr)?\s*([\d,]+\.?\d*)`

var whitespace = regexp.MustCompile(`\s+`)

type fieldPatterns struct {
	field    string
	patterns []*regexp.Regexp
}

func amountPatterns(labels ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(labels))
	for i, l := range labels {
		out[i] = regexp.MustCompile(l + amountSuffix)
	}
	return out
}

// labelPatterns lists the labels tried for each field, most specific first.
var labelPatterns = []fieldPatterns{
	{"gross_salary", amountPatterns(`gross\s+salary`, `total\s+earnings`, `gross\s+pay`, `total\s+gross`)},
	{"basic_salary", amountPatterns(`basic\s+salary`, `basic\s+pay`, `\bbasic`)},
	{"hra_received", amountPatterns(`\bhra`, `house\s+rent\s+allowance`, `housing\s+allowance`)},
	{"deduction_80c", amountPatterns(`\b80c`, `\be?pf`, `provident\s+fund`, `\bppf`, `\belss`)},
	{"deduction_80d", amountPatterns(`\b80d`, `medical\s+insurance`, `health\s+insurance`, `mediclaim`)},
	{"professional_tax", amountPatterns(`professional\s+tax`, `\bpt`)},
	{"tds", amountPatterns(`\btds`, `tax\s+deducted\s+at\s+source`, `income\s+tax`)},
}

var lineAmount = regexp.MustCompile(`(?:₹|rs\.?|inr)?\s*([\d,]+\.?\d*)`)

// contextWindow is how many lines after a section heading are inspected.
const contextWindow = 9

type contextRule struct {
	field    string
	keywords []string
}

var (
	earningsRules = []contextRule{
		{"basic_salary", []string{"basic"}},
		{"hra_received", []string{"hra"}},
		{"gross_salary", []string{"gross", "total"}},
	}
	deductionRules = []contextRule{
		{"deduction_80c", []string{"pf", "provident"}},
		{"professional_tax", []string{"professional"}},
		{"tds", []string{"tds"}},
	}
)

// ParseFields reads the figures of a salary document from its text.
//
// Labelled amounts such as "Gross Salary: ₹50,000" are searched first over
// the whole document. Fields still empty are then filled from tabular
// layouts, where an "Earnings" or "Deductions" heading is followed by rows
// ending in an amount. Fields with no match are left at zero.
func ParseFields(text string) domain.FinancialRecord {
	var record domain.FinancialRecord
	fields := indexFields(&record)

	flat := whitespace.ReplaceAllString(strings.ToLower(text), " ")
	for _, fp := range labelPatterns {
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			amount, ok := parseAmount(m[1])
			if !ok {
				continue
			}
			*fields[fp.field] = amount
			break
		}
	}

	parseSections(strings.Split(strings.ToLower(text), "\n"), fields)
	return record
}

func indexFields(record *domain.FinancialRecord) map[string]*decimal.Decimal {
	fields := make(map[string]*decimal.Decimal)
	for _, f := range record.Fields() {
		fields[f.Name] = f.Value
	}
	return fields
}

func parseSections(lines []string, fields map[string]*decimal.Decimal) {
	for i, line := range lines {
		var rules []contextRule
		switch {
		case strings.Contains(line, "earnings") || strings.Contains(line, "income"):
			rules = earningsRules
		case strings.Contains(line, "deduction"):
			rules = deductionRules
		default:
			continue
		}

		end := min(i+1+contextWindow, len(lines))
		for _, next := range lines[i+1 : end] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			matches := lineAmount.FindAllStringSubmatch(next, -1)
			if len(matches) == 0 {
				continue
			}
			amount, ok := parseAmount(matches[len(matches)-1][1])
			if !ok {
				continue
			}
			assignFirst(next, amount, rules, fields)
		}
	}
}

// assignFirst stores amount in the first rule whose keyword appears in line,
// provided that field has not already been found.
func assignFirst(line string, amount decimal.Decimal, rules []contextRule, fields map[string]*decimal.Decimal) {
	for _, r := range rules {
		for _, k := range r.keywords {
			if !strings.Contains(line, k) {
				continue
			}
			if fields[r.field].IsZero() {
				*fields[r.field] = amount
			}
			return
		}
	}
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Sanitize clears figures that cannot be right for a salary document:
// negative amounts become zero, a basic salary or HRA larger than the
// gross salary is dropped, and a missing standard deduction is set from
// the rules.
func Sanitize(record domain.FinancialRecord, rules domain.TaxRules) domain.FinancialRecord {
	out := record.DeepCopy()
	for _, f := range out.Fields() {
		if f.Value.IsNegative() {
			*f.Value = decimal.Zero
		}
	}
	if out.GrossSalary.IsPositive() && out.BasicSalary.GreaterThan(out.GrossSalary) {
		out.BasicSalary = decimal.Zero
	}
	if out.HRAReceived.GreaterThan(out.GrossSalary) {
		out.HRAReceived = decimal.Zero
	}
	if out.StandardDeduction.IsZero() {
		out.StandardDeduction = rules.StandardDeduction
	}
	return out
}
