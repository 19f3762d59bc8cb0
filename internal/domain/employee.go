package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultFinancialYear is used when a record does not name one.
const DefaultFinancialYear = "2024-25"

// FinancialRecord holds the annualized salary, exemption and deduction
// figures of a salaried individual for one financial year.
type FinancialRecord struct {
	FinancialYear string `yaml:"financial_year,omitempty" json:"financial_year,omitempty"`
	Age           *int   `yaml:"age,omitempty" json:"age,omitempty"`

	// Salary and allowances
	GrossSalary     decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	BasicSalary     decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	HRAReceived     decimal.Decimal `yaml:"hra_received" json:"hra_received"`
	RentPaid        decimal.Decimal `yaml:"rent_paid" json:"rent_paid"`
	LTAReceived     decimal.Decimal `yaml:"lta_received" json:"lta_received"`
	OtherExemptions decimal.Decimal `yaml:"other_exemptions" json:"other_exemptions"`

	// Chapter VI-A and section 24(b)
	Deduction80C     decimal.Decimal `yaml:"deduction_80c" json:"deduction_80c"`
	Deduction80D     decimal.Decimal `yaml:"deduction_80d" json:"deduction_80d"`
	Deduction80DD    decimal.Decimal `yaml:"deduction_80dd" json:"deduction_80dd"`
	Deduction80E     decimal.Decimal `yaml:"deduction_80e" json:"deduction_80e"`
	Deduction80TTA   decimal.Decimal `yaml:"deduction_80tta" json:"deduction_80tta"`
	HomeLoanInterest decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"`
	OtherDeductions  decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`

	OtherIncome       decimal.Decimal `yaml:"other_income" json:"other_income"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	ProfessionalTax   decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	TDS               decimal.Decimal `yaml:"tds" json:"tds"`
}

// RecordField names one monetary field of a FinancialRecord.
type RecordField struct {
	Name  string
	Value *decimal.Decimal
	// Annual fields are fixed yearly amounts that are never scaled or summed.
	Annual bool
}

// Fields returns pointers to every monetary field in declaration order.
func (r *FinancialRecord) Fields() []RecordField {
	return []RecordField{
		{Name: "gross_salary", Value: &r.GrossSalary},
		{Name: "basic_salary", Value: &r.BasicSalary},
		{Name: "hra_received", Value: &r.HRAReceived},
		{Name: "rent_paid", Value: &r.RentPaid},
		{Name: "lta_received", Value: &r.LTAReceived},
		{Name: "other_exemptions", Value: &r.OtherExemptions},
		{Name: "deduction_80c", Value: &r.Deduction80C},
		{Name: "deduction_80d", Value: &r.Deduction80D},
		{Name: "deduction_80dd", Value: &r.Deduction80DD},
		{Name: "deduction_80e", Value: &r.Deduction80E},
		{Name: "deduction_80tta", Value: &r.Deduction80TTA},
		{Name: "home_loan_interest", Value: &r.HomeLoanInterest},
		{Name: "other_deductions", Value: &r.OtherDeductions},
		{Name: "other_income", Value: &r.OtherIncome},
		{Name: "standard_deduction", Value: &r.StandardDeduction, Annual: true},
		{Name: "professional_tax", Value: &r.ProfessionalTax},
		{Name: "tds", Value: &r.TDS},
	}
}

// DeepCopy returns a copy that shares no pointers with r.
func (r FinancialRecord) DeepCopy() FinancialRecord {
	out := r
	if r.Age != nil {
		age := *r.Age
		out.Age = &age
	}
	return out
}

// Scale multiplies every periodic monetary field by factor.
// The standard deduction is an annual constant and is left alone.
func (r FinancialRecord) Scale(factor decimal.Decimal) FinancialRecord {
	out := r.DeepCopy()
	for _, f := range out.Fields() {
		if f.Annual {
			continue
		}
		*f.Value = f.Value.Mul(factor)
	}
	return out
}

// Add sums the periodic monetary fields of other into a copy of r.
// Non-monetary fields and the standard deduction are taken from r.
func (r FinancialRecord) Add(other FinancialRecord) FinancialRecord {
	out := r.DeepCopy()
	src := other.Fields()
	for i, f := range out.Fields() {
		if f.Annual {
			continue
		}
		*f.Value = f.Value.Add(*src[i].Value)
	}
	return out
}

// GrossIncome is gross salary plus income from other sources.
func (r FinancialRecord) GrossIncome() decimal.Decimal {
	return r.GrossSalary.Add(r.OtherIncome)
}

// Year returns the financial year, falling back to DefaultFinancialYear.
func (r FinancialRecord) Year() string {
	if r.FinancialYear == "" {
		return DefaultFinancialYear
	}
	return r.FinancialYear
}
