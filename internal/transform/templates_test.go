package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok, "Expected to find template")
	assert.Equal(t, "test_template", retrieved.Name)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "Expected case-insensitive lookup to work")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok, "Expected not to find nonexistent template")
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(domain.DefaultTaxRules())

	for _, name := range []string{"max_80c", "max_80d", "max_80tta", "max_home_loan", "add_professional_tax", "optimal_rent", "max_investments", "max_all"} {
		template, ok := registry.Get(name)
		if assert.True(t, ok, "Expected to find template: %s", name) {
			assert.NotEmpty(t, template.Transforms, "Template %s has no transforms", name)
			assert.NotEmpty(t, template.Description, "Template %s has no description", name)
		}
	}
}

func TestApplyTemplate_MaxAll(t *testing.T) {
	registry := CreateBuiltInTemplates(domain.DefaultTaxRules())
	template, ok := registry.Get("max_all")
	require.True(t, ok)

	result, err := ApplyTemplate(createTestRecord(), template)

	require.NoError(t, err)
	assert.True(t, result.Deduction80C.Equal(decimal.NewFromInt(150000)))
	assert.True(t, result.Deduction80D.Equal(decimal.NewFromInt(30000)), "80D above limit is kept")
	assert.True(t, result.Deduction80TTA.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.HomeLoanInterest.Equal(decimal.NewFromInt(200000)))
	assert.True(t, result.ProfessionalTax.Equal(decimal.NewFromInt(2500)))
}

func TestResolve(t *testing.T) {
	rules := domain.DefaultTaxRules()
	templates := CreateBuiltInTemplates(rules)
	transforms := NewTransformRegistry(rules)

	template, err := Resolve(" max_80c ", templates, transforms)
	require.NoError(t, err)
	assert.Equal(t, "max_80c", template.Name)

	template, err = Resolve("set_rent:amount=120000", templates, transforms)
	require.NoError(t, err)
	assert.Equal(t, "set_rent:amount=120000", template.Name)
	require.Len(t, template.Transforms, 1)
	assert.Contains(t, template.Description, "₹1,20,000")

	_, err = Resolve("max_everything", templates, transforms)
	assert.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"max_80c", "max_80d"}, ParseTemplateList("max_80c, max_80d,"))
	assert.Equal(t,
		[]string{"max_80c", "set_field:field=tds,amount=5000", "max_80d"},
		ParseTemplateList("max_80c,set_field:field=tds,amount=5000,max_80d"))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))

	help := GetTemplateHelp(CreateBuiltInTemplates(domain.DefaultTaxRules()))
	assert.True(t, strings.HasPrefix(help, "Available Templates:"))
	for _, section := range []string{"Deductions:", "Rent and Professional Tax:", "Combination Strategies:", "Usage:"} {
		assert.Contains(t, help, section)
	}
	assert.Contains(t, help, "max_80c")
}
