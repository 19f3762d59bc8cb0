package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Section names a capped deduction that can be topped up to its limit.
type Section string

const (
	Section80C      Section = "80c"
	Section80D      Section = "80d"
	Section80DD     Section = "80dd"
	Section80E      Section = "80e"
	Section80TTA    Section = "80tta"
	SectionHomeLoan Section = "home_loan"
)

// defaultProfessionalTax is the annual ceiling most states levy.
const defaultProfessionalTax = 2500

func (s Section) field(r *domain.FinancialRecord) (*decimal.Decimal, error) {
	switch s {
	case Section80C:
		return &r.Deduction80C, nil
	case Section80D:
		return &r.Deduction80D, nil
	case Section80DD:
		return &r.Deduction80DD, nil
	case Section80E:
		return &r.Deduction80E, nil
	case Section80TTA:
		return &r.Deduction80TTA, nil
	case SectionHomeLoan:
		return &r.HomeLoanInterest, nil
	default:
		return nil, fmt.Errorf("unknown section %q", s)
	}
}

func (s Section) limit(limits domain.DeductionLimits) decimal.Decimal {
	switch s {
	case Section80C:
		return limits.Section80C
	case Section80D:
		return limits.Section80D
	case Section80DD:
		return limits.Section80DD
	case Section80E:
		return limits.Section80E
	case Section80TTA:
		return limits.Section80TTA
	case SectionHomeLoan:
		return limits.HomeLoanInterest
	default:
		return decimal.Zero
	}
}

// ParseSection accepts "80C", "section_80c", "home_loan_interest" and the like.
func ParseSection(s string) (Section, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "section_")
	switch normalized {
	case "80c", "80d", "80dd", "80e", "80tta":
		return Section(normalized), nil
	case "home_loan", "home_loan_interest", "24b":
		return SectionHomeLoan, nil
	default:
		return "", fmt.Errorf("unknown deduction section %q", s)
	}
}

// MaxDeduction raises a capped deduction to its statutory limit. Amounts
// already at or above the limit are left alone.
type MaxDeduction struct {
	Section Section
	Limits  domain.DeductionLimits
}

func (md *MaxDeduction) Name() string {
	return "max_" + string(md.Section)
}

func (md *MaxDeduction) Description() string {
	return fmt.Sprintf("Invest the full %s limit of %s", strings.ToUpper(string(md.Section)), domain.FormatRupees(md.Section.limit(md.Limits)))
}

func (md *MaxDeduction) Validate(base *domain.FinancialRecord) error {
	if base == nil {
		return NewTransformError(md.Name(), "validate", "base record cannot be nil", nil)
	}
	if _, err := md.Section.field(base); err != nil {
		return NewTransformError(md.Name(), "validate", "invalid section", err)
	}
	if !md.Section.limit(md.Limits).IsPositive() {
		return NewTransformError(md.Name(), "validate", fmt.Sprintf("no positive limit configured for %s", md.Section), nil)
	}
	return nil
}

func (md *MaxDeduction) Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	modified := base.DeepCopy()
	field, err := md.Section.field(&modified)
	if err != nil {
		return nil, NewTransformError(md.Name(), "apply", "invalid section", err)
	}
	*field = decimal.Max(*field, md.Section.limit(md.Limits))
	return &modified, nil
}

// AddProfessionalTax sets the annual professional tax paid to the employer's
// state levy. Amount defaults to 2500 when zero.
type AddProfessionalTax struct {
	Amount decimal.Decimal
}

func (ap *AddProfessionalTax) amount() decimal.Decimal {
	if ap.Amount.IsZero() {
		return decimal.NewFromInt(defaultProfessionalTax)
	}
	return ap.Amount
}

func (ap *AddProfessionalTax) Name() string {
	return "add_professional_tax"
}

func (ap *AddProfessionalTax) Description() string {
	return fmt.Sprintf("Claim professional tax of %s", domain.FormatRupees(ap.amount()))
}

func (ap *AddProfessionalTax) Validate(base *domain.FinancialRecord) error {
	if base == nil {
		return NewTransformError(ap.Name(), "validate", "base record cannot be nil", nil)
	}
	if ap.Amount.IsNegative() {
		return NewTransformError(ap.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ap.Amount), nil)
	}
	return nil
}

func (ap *AddProfessionalTax) Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	modified := base.DeepCopy()
	modified.ProfessionalTax = ap.amount()
	return &modified, nil
}

// SetRent sets the annual rent paid, which drives the HRA exemption.
type SetRent struct {
	Amount decimal.Decimal
}

func (sr *SetRent) Name() string {
	return "set_rent"
}

func (sr *SetRent) Description() string {
	return fmt.Sprintf("Set annual rent paid to %s", domain.FormatRupees(sr.Amount))
}

func (sr *SetRent) Validate(base *domain.FinancialRecord) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base record cannot be nil", nil)
	}
	if sr.Amount.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rent must be non-negative, got %s", sr.Amount), nil)
	}
	return nil
}

func (sr *SetRent) Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	modified := base.DeepCopy()
	modified.RentPaid = sr.Amount
	return &modified, nil
}

// OptimalRent sets rent to the point where the rent-over-basic limb of the
// HRA exemption equals the HRA received, so the full allowance is exempt
// unless the basic-salary limb binds first.
type OptimalRent struct {
	HRA domain.HRARules
}

func (opt *OptimalRent) Name() string {
	return "optimal_rent"
}

func (opt *OptimalRent) Description() string {
	return "Set rent so the full HRA received can be exempt"
}

func (opt *OptimalRent) Validate(base *domain.FinancialRecord) error {
	if base == nil {
		return NewTransformError(opt.Name(), "validate", "base record cannot be nil", nil)
	}
	if !base.HRAReceived.IsPositive() {
		return NewTransformError(opt.Name(), "validate", "record has no HRA received", nil)
	}
	return nil
}

func (opt *OptimalRent) Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	modified := base.DeepCopy()
	floor := base.BasicSalary.Mul(opt.HRA.RentExcessPercent).Div(decimal.NewFromInt(100))
	modified.RentPaid = base.HRAReceived.Add(floor).Round(0)
	return &modified, nil
}

// SetField sets any monetary field of the record by its YAML name.
type SetField struct {
	Field  string
	Amount decimal.Decimal
}

func (sf *SetField) Name() string {
	return "set_field"
}

func (sf *SetField) Description() string {
	return fmt.Sprintf("Set %s to %s", sf.Field, domain.FormatRupees(sf.Amount))
}

func (sf *SetField) Validate(base *domain.FinancialRecord) error {
	if base == nil {
		return NewTransformError(sf.Name(), "validate", "base record cannot be nil", nil)
	}
	if sf.Amount.IsNegative() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sf.Amount), nil)
	}
	for _, f := range base.Fields() {
		if f.Name == sf.Field {
			return nil
		}
	}
	return NewTransformError(sf.Name(), "validate", fmt.Sprintf("unknown field %s", sf.Field), nil)
}

func (sf *SetField) Apply(base *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	modified := base.DeepCopy()
	for _, f := range modified.Fields() {
		if f.Name == sf.Field {
			*f.Value = sf.Amount
			return &modified, nil
		}
	}
	return nil, NewTransformError(sf.Name(), "apply", fmt.Sprintf("unknown field %s", sf.Field), nil)
}
