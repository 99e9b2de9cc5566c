// Package validate implements the multi-pass validation pipeline: ordered
// validators over catalog, index, and graph, each producing a uniform result
// merged into one report. Findings are issue values with a severity tag, not
// Go errors, so the pipeline can collect everything and report at the end
// instead of failing fast.
package validate

import (
	"fmt"

	"github.com/stratum-model/stratum/internal/model"
)

// Severity grades an issue. Only errors fail validation.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	switch str {
	case "warning":
		*s = SeverityWarning
	default:
		*s = SeverityError
	}
	return nil
}

// Issue codes, one per finding class. The uniform representation keeps the
// report mergeable; callers that need to branch on a class match the code,
// not the message.
const (
	CodeBrokenReference  = "broken-reference"
	CodeUnknownPredicate = "unknown-predicate"
	CodeLayerMismatch    = "layer-mismatch"
	CodeCardinality      = "cardinality-violation"
	CodeMissingInverse   = "missing-inverse"
	CodeMissingReference = "missing-reference"
	CodeNotTraceable     = "not-traceable"
	CodeTargetMismatch   = "target-mismatch"
	CodeBadValueFormat   = "bad-value-format"
	CodeCycle            = "reference-cycle"
	CodeElementFailure   = "element-failure"
)

// Issue is one validation finding. Immutable once produced.
type Issue struct {
	Code       string      `json:"code"`
	Layer      model.Layer `json:"layer"`
	ElementID  string      `json:"element_id,omitempty"`
	Message    string      `json:"message"`
	Severity   Severity    `json:"severity"`
	Location   string      `json:"location,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// String formats the issue for plain-text output.
func (i Issue) String() string {
	loc := ""
	if i.Location != "" {
		loc = " at " + i.Location
	}
	id := string(i.Layer)
	if i.ElementID != "" {
		id = i.ElementID
	}
	return fmt.Sprintf("[%s] %s: %s%s", i.Severity, id, i.Message, loc)
}

// WithSuggestion returns a copy of the issue carrying a fix suggestion.
func (i Issue) WithSuggestion(s string) Issue {
	i.Suggestion = s
	return i
}
