package output

import (
	"encoding/json"

	"github.com/rgehrsitz/itax/internal/domain"
)

// JSONFormatter renders the full report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
