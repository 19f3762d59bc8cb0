package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/rgehrsitz/itax/internal/domain"
	"gopkg.in/yaml.v3"
)

var financialYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// InputParser handles parsing of record, document batch and rules files.
// YAML and JSON are both accepted.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

func readFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// LoadRecord loads a single annual financial record.
func (ip *InputParser) LoadRecord(filename string) (*domain.FinancialRecord, error) {
	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	return ip.ParseRecord(data)
}

// ParseRecord decodes a financial record and fills the default financial year.
func (ip *InputParser) ParseRecord(data []byte) (*domain.FinancialRecord, error) {
	var record domain.FinancialRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if record.FinancialYear == "" {
		record.FinancialYear = domain.DefaultFinancialYear
	}
	if !financialYearPattern.MatchString(record.FinancialYear) {
		return nil, fmt.Errorf("record validation failed: financial_year %q must be in format YYYY-YY", record.FinancialYear)
	}

	return &record, nil
}

// LoadBatch loads a set of document extracts uploaded together.
func (ip *InputParser) LoadBatch(filename string) (*domain.DocumentBatch, error) {
	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	return ip.ParseBatch(data)
}

// ParseBatch decodes a document batch. The batch document type may be
// written as "form-16", "payslip" and so on; it defaults to salary_slip.
func (ip *InputParser) ParseBatch(data []byte) (*domain.DocumentBatch, error) {
	var raw struct {
		DocumentType string              `yaml:"document_type"`
		Documents    []domain.RawExtract `yaml:"documents"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	batch := &domain.DocumentBatch{
		DocumentType: domain.DocumentSalarySlip,
		Documents:    raw.Documents,
	}
	if raw.DocumentType != "" {
		docType, err := domain.ParseDocumentType(raw.DocumentType)
		if err != nil {
			return nil, fmt.Errorf("batch validation failed: %w", err)
		}
		batch.DocumentType = docType
	}

	if err := ip.ValidateBatch(batch); err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}
	return batch, nil
}

// ValidateBatch checks the structure of a batch before aggregation.
func (ip *InputParser) ValidateBatch(batch *domain.DocumentBatch) error {
	if len(batch.Documents) > domain.MaxDocuments {
		return fmt.Errorf("at most %d documents allowed, got %d", domain.MaxDocuments, len(batch.Documents))
	}
	for i, doc := range batch.Documents {
		if doc.DocumentType != "" && doc.DocumentType != batch.DocumentType {
			return fmt.Errorf("document %d is %s but the batch is %s", i+1, doc.DocumentType, batch.DocumentType)
		}
	}
	return nil
}

// LoadRules loads a tax rules file. Sections missing from the file keep
// their default values.
func (ip *InputParser) LoadRules(filename string) (*domain.TaxRules, error) {
	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	return ip.ParseRules(data)
}

// ParseRules decodes a rules table over the FY 2024-25 defaults and checks
// that each slab table is ordered and contiguous.
func (ip *InputParser) ParseRules(data []byte) (*domain.TaxRules, error) {
	rules := domain.DefaultTaxRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// SaveRecord writes a record as YAML.
func SaveRecord(record *domain.FinancialRecord, filename string) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
