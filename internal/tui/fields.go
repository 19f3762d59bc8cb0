package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// formField is one editable amount of the record.
type formField struct {
	Label string
	Name  string
}

// formFields lists the record fields shown in the form, in tab order.
var formFields = []formField{
	{"Gross salary", "gross_salary"},
	{"Basic salary", "basic_salary"},
	{"HRA received", "hra_received"},
	{"Rent paid", "rent_paid"},
	{"80C investments", "deduction_80c"},
	{"80D insurance", "deduction_80d"},
	{"80TTA interest", "deduction_80tta"},
	{"Home loan interest", "home_loan_interest"},
	{"Other income", "other_income"},
	{"Professional tax", "professional_tax"},
	{"TDS", "tds"},
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.Prompt = "₹ "
	ti.CharLimit = 12
	ti.Width = 14
	return ti
}

// parseInputAmount accepts digits with optional commas or underscores.
func parseInputAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}

// applyInputs writes the form values over a copy of base.
func applyInputs(base domain.FinancialRecord, inputs []textinput.Model) (domain.FinancialRecord, error) {
	record := base.DeepCopy()
	byName := make(map[string]*decimal.Decimal)
	for _, f := range record.Fields() {
		byName[f.Name] = f.Value
	}
	for i, f := range formFields {
		amount, err := parseInputAmount(inputs[i].Value())
		if err != nil {
			return domain.FinancialRecord{}, fmt.Errorf("%s: %w", f.Label, err)
		}
		*byName[f.Name] = amount
	}
	return record, nil
}

// fillInputs sets the form values from record.
func fillInputs(inputs []textinput.Model, record domain.FinancialRecord) {
	byName := make(map[string]decimal.Decimal)
	for _, f := range record.Fields() {
		byName[f.Name] = *f.Value
	}
	for i, f := range formFields {
		v := byName[f.Name]
		if v.IsZero() {
			inputs[i].SetValue("")
			continue
		}
		inputs[i].SetValue(v.String())
	}
}
