package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
)

// Options control a single extraction.
type Options struct {
	// Source names the document in logs and aggregation notes.
	Source string
	// DocumentType forces the classification; empty means detect from text.
	DocumentType domain.DocumentType
	Password     string
}

// Extractor turns salary documents into RawExtract values.
type Extractor struct {
	rules  domain.TaxRules
	logger calculation.Logger
}

// NewExtractor creates an extractor using the default tax rules.
func NewExtractor() *Extractor {
	return NewExtractorWithRules(domain.DefaultTaxRules())
}

// NewExtractorWithRules creates an extractor whose sanitizing step uses rules.
func NewExtractorWithRules(rules domain.TaxRules) *Extractor {
	return &Extractor{rules: rules, logger: calculation.NopLogger{}}
}

// SetLogger sets the logger. Passing nil restores the no-op logger.
func (e *Extractor) SetLogger(l calculation.Logger) {
	if l == nil {
		e.logger = calculation.NopLogger{}
		return
	}
	e.logger = l
}

// ExtractFile reads a PDF from disk.
func (e *Extractor) ExtractFile(ctx context.Context, path string, opts Options) (*domain.RawExtract, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if opts.Source == "" {
		opts.Source = filepath.Base(path)
	}
	return e.Extract(ctx, f, info.Size(), opts)
}

// Extract reads a PDF of the given size from r.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64, opts Options) (*domain.RawExtract, error) {
	if opts.Password != "" {
		e.logger.Infof("Opening password-protected document %s", opts.Source)
	}
	text, err := ExtractText(ctx, r, size, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", displayName(opts.Source), err)
	}
	e.logger.Debugf("Extracted %d characters from %s", len(text), displayName(opts.Source))

	extract := e.ExtractFromText(text, opts)
	return &extract, nil
}

// ExtractFromText classifies and parses already extracted text.
func (e *Extractor) ExtractFromText(text string, opts Options) domain.RawExtract {
	docType := opts.DocumentType
	if docType == "" {
		docType = DetectDocumentType(text)
		e.logger.Infof("Detected document type %s for %s", docType, displayName(opts.Source))
	}

	record := Sanitize(ParseFields(text), e.rules)
	found := 0
	for _, f := range record.Fields() {
		if !f.Annual && f.Value.IsPositive() {
			found++
		}
	}
	if found == 0 {
		e.logger.Warnf("No figures recognised in %s", displayName(opts.Source))
	} else {
		e.logger.Debugf("Recognised %d figures in %s", found, displayName(opts.Source))
	}

	return domain.RawExtract{
		Source:          opts.Source,
		DocumentType:    docType,
		FinancialRecord: record,
	}
}

func displayName(source string) string {
	if source == "" {
		return "document"
	}
	return source
}
