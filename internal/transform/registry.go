package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for CLI use.
type TransformRegistry struct {
	rules     domain.TaxRules
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(rules domain.TaxRules, params map[string]string) (RecordTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry(rules domain.TaxRules) *TransformRegistry {
	registry := &TransformRegistry{
		rules:     rules,
		factories: make(map[string]TransformFactory),
	}

	registry.Register("max_deduction", createMaxDeduction)
	registry.Register("add_professional_tax", createAddProfessionalTax)
	registry.Register("set_rent", createSetRent)
	registry.Register("optimal_rent", createOptimalRent)
	registry.Register("set_field", createSetField)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RecordTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(r.rules, params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_rent:amount=240000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RecordTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func parseAmount(transform string, params map[string]string, required bool) (decimal.Decimal, error) {
	amountStr, ok := params["amount"]
	if !ok {
		if required {
			return decimal.Zero, fmt.Errorf("%s requires 'amount' parameter", transform)
		}
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountStr, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value: %w", err)
	}
	return amount, nil
}

func createMaxDeduction(rules domain.TaxRules, params map[string]string) (RecordTransform, error) {
	sectionStr, ok := params["section"]
	if !ok {
		return nil, fmt.Errorf("max_deduction requires 'section' parameter")
	}
	section, err := ParseSection(sectionStr)
	if err != nil {
		return nil, err
	}
	return &MaxDeduction{Section: section, Limits: rules.Limits}, nil
}

func createAddProfessionalTax(_ domain.TaxRules, params map[string]string) (RecordTransform, error) {
	amount, err := parseAmount("add_professional_tax", params, false)
	if err != nil {
		return nil, err
	}
	return &AddProfessionalTax{Amount: amount}, nil
}

func createSetRent(_ domain.TaxRules, params map[string]string) (RecordTransform, error) {
	amount, err := parseAmount("set_rent", params, true)
	if err != nil {
		return nil, err
	}
	return &SetRent{Amount: amount}, nil
}

func createOptimalRent(rules domain.TaxRules, _ map[string]string) (RecordTransform, error) {
	return &OptimalRent{HRA: rules.HRA}, nil
}

func createSetField(_ domain.TaxRules, params map[string]string) (RecordTransform, error) {
	field, ok := params["field"]
	if !ok {
		return nil, fmt.Errorf("set_field requires 'field' parameter")
	}
	amount, err := parseAmount("set_field", params, true)
	if err != nil {
		return nil, err
	}
	return &SetField{Field: field, Amount: amount}, nil
}
