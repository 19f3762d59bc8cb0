package domain

// ValidationOutcome is the result of validating a record.
type ValidationOutcome struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// TaxReport is everything the formatters render for one record.
type TaxReport struct {
	Source          string               `json:"source,omitempty" yaml:"source,omitempty"`
	Details         CalculationDetails   `json:"calculation" yaml:"calculation"`
	Summary         TaxSummary           `json:"summary" yaml:"summary"`
	Recommendations RecommendationReport `json:"recommendations" yaml:"recommendations"`
	Validation      ValidationOutcome    `json:"validation" yaml:"validation"`
}
