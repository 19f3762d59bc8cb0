package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a tax report in one output format.
type Formatter interface {
	Name() string
	Format(report *domain.TaxReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.TaxReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.TaxReport) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
	CSVFormatter{},
	MarkdownFormatter{},
	HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":            "console",
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
	"md":              "markdown",
	"yml":             "yaml",
}

// NormalizeFormatName resolves aliases to a registered formatter name.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns the formatter for a name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range formatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders a report and writes it to a timestamped file in
// the current directory, returning the file name.
func WriteFormatted(f Formatter, report *domain.TaxReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// FormatCurrency formats an amount in rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatRupees(amount)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
