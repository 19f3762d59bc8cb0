package output

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the full report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	return yaml.Marshal(report)
}
