package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RecordTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common tax-saving moves
// sized to the given rules.
func CreateBuiltInTemplates(rules domain.TaxRules) *TemplateRegistry {
	registry := NewTemplateRegistry()

	max80C := &MaxDeduction{Section: Section80C, Limits: rules.Limits}
	max80D := &MaxDeduction{Section: Section80D, Limits: rules.Limits}
	max80TTA := &MaxDeduction{Section: Section80TTA, Limits: rules.Limits}
	maxHomeLoan := &MaxDeduction{Section: SectionHomeLoan, Limits: rules.Limits}
	profTax := &AddProfessionalTax{}

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest the full 80C limit (EPF, ELSS, PPF)",
		Transforms:  []RecordTransform{max80C},
	})

	registry.Register(Template{
		Name:        "max_80d",
		Description: "Buy health insurance up to the 80D limit",
		Transforms:  []RecordTransform{max80D},
	})

	registry.Register(Template{
		Name:        "max_80tta",
		Description: "Claim the full 80TTA savings interest deduction",
		Transforms:  []RecordTransform{max80TTA},
	})

	registry.Register(Template{
		Name:        "max_home_loan",
		Description: "Claim the full section 24(b) home loan interest",
		Transforms:  []RecordTransform{maxHomeLoan},
	})

	registry.Register(Template{
		Name:        "add_professional_tax",
		Description: "Claim professional tax of ₹2,500",
		Transforms:  []RecordTransform{profTax},
	})

	registry.Register(Template{
		Name:        "optimal_rent",
		Description: "Pay enough rent to exempt the full HRA",
		Transforms:  []RecordTransform{&OptimalRent{HRA: rules.HRA}},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "max_investments",
		Description: "Max 80C + 80D + 80TTA",
		Transforms:  []RecordTransform{max80C, max80D, max80TTA},
	})

	registry.Register(Template{
		Name:        "max_all",
		Description: "Max every capped deduction + professional tax",
		Transforms:  []RecordTransform{max80C, max80D, max80TTA, maxHomeLoan, profTax},
	})

	return registry
}

// ApplyTemplate applies a template to a base record
func ApplyTemplate(base *domain.FinancialRecord, template Template) (*domain.FinancialRecord, error) {
	return ApplyTransforms(base, template.Transforms)
}

// Resolve turns one --with entry into a template. Entries containing ':'
// are parsed as transform specs, anything else is a template name.
func Resolve(entry string, templates *TemplateRegistry, transforms *TransformRegistry) (Template, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, ":") {
		t, err := transforms.ParseTransformSpec(entry)
		if err != nil {
			return Template{}, err
		}
		return Template{Name: entry, Description: t.Description(), Transforms: []RecordTransform{t}}, nil
	}

	t, ok := templates.Get(entry)
	if !ok {
		return Template{}, fmt.Errorf("template %s not found", entry)
	}
	return t, nil
}

// ParseTemplateList parses a comma-separated list of template names.
// Transform specs may carry their own comma-separated parameters, so a
// segment containing '=' but no ':' continues the previous entry.
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if n := len(templates); n > 0 && strings.Contains(trimmed, "=") && !strings.Contains(trimmed, ":") && strings.Contains(templates[n-1], ":") {
			templates[n-1] += "," + trimmed
			continue
		}
		templates = append(templates, trimmed)
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Deductions":                {},
		"Rent and Professional Tax": {},
		"Combination Strategies":    {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case len(template.Transforms) > 1:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "max_"):
			categories["Deductions"] = append(categories["Deductions"], template)
		default:
			categories["Rent and Professional Tax"] = append(categories["Rent and Professional Tax"], template)
		}
	}

	for _, category := range []string{"Deductions", "Rent and Professional Tax", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Transforms (name:key=value,...):\n")
	sb.WriteString("  max_deduction:section=80c|80d|80dd|80e|80tta|home_loan\n")
	sb.WriteString("  add_professional_tax:amount=2500\n")
	sb.WriteString("  set_rent:amount=240000\n")
	sb.WriteString("  set_field:field=deduction_80c,amount=100000\n\n")

	sb.WriteString("Usage:\n")
	sb.WriteString("  itax compare record.yaml --with max_80c,max_80d\n")
	sb.WriteString("  itax compare record.yaml --with max_all,set_rent:amount=300000\n")

	return sb.String()
}
