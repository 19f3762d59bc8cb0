package compare

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results. Scenario names may
// carry transform specs, so HTML escaping is disabled.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(compSet); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
