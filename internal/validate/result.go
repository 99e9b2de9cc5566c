package validate

import "encoding/json"

// Result collects the errors and warnings of one validation pass. Order is
// preserved: issues appear in the report in the order validators produced
// them.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{}
}

// Add files an issue under its severity.
func (r *Result) Add(issue Issue) {
	if issue.Severity == SeverityError {
		r.Errors = append(r.Errors, issue)
		return
	}
	r.Warnings = append(r.Warnings, issue)
}

// AddAll files a batch of issues.
func (r *Result) AddAll(issues []Issue) {
	for _, issue := range issues {
		r.Add(issue)
	}
}

// IsValid reports whether the pass produced no errors. Warnings never fail
// validation.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// ErrorCount returns the number of errors.
func (r *Result) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warnings.
func (r *Result) WarningCount() int { return len(r.Warnings) }

// Merge appends another result's issues. A non-empty idPrefix is prepended
// to each merged issue's element id as "prefix:id"; the pipeline uses the
// layer name here so per-layer results compose into a whole-model report
// without id collisions.
func (r *Result) Merge(other *Result, idPrefix string) {
	if other == nil {
		return
	}
	for _, issue := range other.Errors {
		r.Errors = append(r.Errors, prefixIssue(issue, idPrefix))
	}
	for _, issue := range other.Warnings {
		r.Warnings = append(r.Warnings, prefixIssue(issue, idPrefix))
	}
}

func prefixIssue(issue Issue, prefix string) Issue {
	if prefix != "" && issue.ElementID != "" {
		issue.ElementID = prefix + ":" + issue.ElementID
	}
	return issue
}

// resultJSON is the serialized report shape. The counts are redundant with
// the slices and exist for consumers that only want the summary line.
type resultJSON struct {
	Valid        bool    `json:"is_valid"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	Errors       []Issue `json:"errors"`
	Warnings     []Issue `json:"warnings"`
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = []Issue{}
	}
	warns := r.Warnings
	if warns == nil {
		warns = []Issue{}
	}
	return json.Marshal(resultJSON{
		Valid:        r.IsValid(),
		ErrorCount:   len(errs),
		WarningCount: len(warns),
		Errors:       errs,
		Warnings:     warns,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Errors = raw.Errors
	r.Warnings = raw.Warnings
	return nil
}
