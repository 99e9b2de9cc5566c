package validate

import (
	"fmt"
	"strings"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// TraceabilityValidator enforces the per-element-type reference rules: a
// must_reference rule failing is an error with a fix suggestion naming the
// exact field to add; a should_reference rule failing is a warning only.
// For element types that carry rules it additionally checks that a reference
// path toward the motivation layer exists.
type TraceabilityValidator struct{}

// NewTraceabilityValidator creates the validator.
func NewTraceabilityValidator() *TraceabilityValidator {
	return &TraceabilityValidator{}
}

// Name implements Validator.
func (v *TraceabilityValidator) Name() string { return "traceability" }

// ValidateElement implements Validator.
func (v *TraceabilityValidator) ValidateElement(ctx *Context, e *model.Element) []Issue {
	rules := ctx.Catalog.RulesFor(e.Layer, e.Type)
	if len(rules) == 0 {
		return nil
	}

	var issues []Issue
	registered := ctx.Index.BySource(e.ID())

	for _, rule := range rules {
		if satisfies(registered, rule) {
			continue
		}
		issues = append(issues, missingReferenceIssue(e, rule))
	}

	// Rule-carrying element types are expected to trace up to the
	// motivation layer. Cycles terminate the walk and count as not
	// traceable.
	if e.Layer != model.LayerMotivation {
		if _, ok := Trace(ctx.Index, e.ID()); !ok {
			issues = append(issues, Issue{
				Code:      CodeNotTraceable,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message:   fmt.Sprintf("element %s is not traceable to the %s layer", e.ID(), model.LayerMotivation),
				Severity:  SeverityWarning,
				Location:  e.Origin.String(),
			})
		}
	}

	return issues
}

func satisfies(registered []refs.Reference, rule catalog.TraceabilityRule) bool {
	for _, r := range registered {
		if r.Generic {
			continue
		}
		for _, p := range rule.Predicates {
			if r.Predicate == p {
				return true
			}
		}
	}
	return false
}

func missingReferenceIssue(e *model.Element, rule catalog.TraceabilityRule) Issue {
	target := string(rule.TargetLayer)
	if len(rule.TargetTypes) > 0 {
		target += "." + strings.Join(rule.TargetTypes, "|")
	}
	predicates := strings.Join(rule.Predicates, " or ")

	severity := SeverityWarning
	message := fmt.Sprintf("element %s has no %s reference", e.ID(), predicates)
	if target != "" {
		message += fmt.Sprintf(" (expected target: %s)", target)
	}
	if rule.Strength == catalog.Must {
		severity = SeverityError
		message = fmt.Sprintf("element %s is missing required reference %q to %s", e.ID(), predicates, target)
	}

	return Issue{
		Code:      CodeMissingReference,
		Layer:     e.Layer,
		ElementID: e.ID(),
		Message:   message,
		Severity:  severity,
		Location:  e.Origin.String(),
	}.WithSuggestion(fmt.Sprintf("add a %q field referencing a %s element", rule.Field, target))
}

// Trace walks outgoing references from the start element toward the
// motivation layer and returns the first path found. Visited elements are
// never revisited, so circular references terminate the walk instead of
// looping; a model where every upward path cycles is simply not traceable.
func Trace(ix *refs.Index, startID string) ([]string, bool) {
	visited := make(map[string]bool)

	var walk func(id string, path []string) ([]string, bool)
	walk = func(id string, path []string) ([]string, bool) {
		if visited[id] {
			return nil, false
		}
		visited[id] = true
		path = append(path, id)

		layer, _, _, err := model.ParseID(id)
		if err == nil && layer == model.LayerMotivation {
			return path, true
		}
		for _, r := range ix.BySource(id) {
			if found, ok := walk(r.TargetID, path); ok {
				return found, true
			}
		}
		return nil, false
	}

	return walk(startID, nil)
}
