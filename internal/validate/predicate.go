package validate

import (
	"fmt"
	"strings"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// PredicateValidator enforces predicate semantics on every catalog-declared
// reference of an element. Four checks run in sequence per reference,
// short-circuiting on the first fatal failure:
//
//  1. the predicate exists in the catalog;
//  2. the predicate is applicable to the element's layer;
//  3. bidirectional predicates have the mirrored inverse on the target;
//  4. cardinality and multiplicity constraints hold.
//
// The multiplicity side of check 4 is counted per source and predicate, not
// per reference, so a violated constraint yields exactly one issue however
// many values are involved. Generic suffix-convention references carry no
// catalog predicate and are skipped here; the integrity validator still
// covers them.
type PredicateValidator struct {
	inverse InverseChecker
}

// NewPredicateValidator creates the validator.
func NewPredicateValidator() *PredicateValidator {
	return &PredicateValidator{}
}

// Name implements Validator.
func (v *PredicateValidator) Name() string { return "predicate" }

// ValidateElement implements Validator.
func (v *PredicateValidator) ValidateElement(ctx *Context, e *model.Element) []Issue {
	var issues []Issue

	forwardCounts := make(map[string]int)
	badPredicates := make(map[string]bool)

	for _, ref := range ctx.Index.BySource(e.ID()) {
		if ref.Generic || badPredicates[ref.Predicate] {
			continue
		}
		refIssues, fatal := v.checkReference(ctx, e, ref)
		issues = append(issues, refIssues...)
		if fatal {
			badPredicates[ref.Predicate] = true
			continue
		}
		if lt, ok := ctx.Catalog.ByPredicate(ref.Predicate); ok && ref.Predicate == lt.Predicate {
			forwardCounts[ref.Predicate]++
		}
	}

	// Check 4: cardinality, counted across the element's references.
	issues = append(issues, v.checkCardinality(ctx, e, forwardCounts, badPredicates)...)

	return issues
}

// ValidateReference runs the per-reference checks (1-3) on a single
// reference and reports whether a fatal failure short-circuited the
// sequence. Exposed for callers that synthesize references outside the
// extractor, like deletion guards and projection tooling.
func (v *PredicateValidator) ValidateReference(ctx *Context, e *model.Element, ref refs.Reference) []Issue {
	issues, _ := v.checkReference(ctx, e, ref)
	return issues
}

func (v *PredicateValidator) checkReference(ctx *Context, e *model.Element, ref refs.Reference) ([]Issue, bool) {
	// Check 1: the predicate must exist in the catalog.
	lt, ok := ctx.Catalog.ByPredicate(ref.Predicate)
	if !ok {
		return []Issue{{
			Code:      CodeUnknownPredicate,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message: fmt.Sprintf("unknown predicate %q; known predicates: %s",
				ref.Predicate, strings.Join(ctx.Catalog.KnownPredicates(), ", ")),
			Severity: SeverityError,
			Location: ref.FieldPath,
		}}, true
	}

	// Check 2: the predicate must be applicable to this element's layer.
	if !applicableFrom(lt, ref.Predicate, e.Layer) {
		valid, _ := ctx.Catalog.PredicatesForLayer(string(e.Layer))
		return []Issue{{
			Code:      CodeLayerMismatch,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message: fmt.Sprintf("predicate %q is not applicable to layer %q; valid predicates for this layer: %s",
				ref.Predicate, e.Layer, strings.Join(valid, ", ")),
			Severity: SeverityError,
			Location: ref.FieldPath,
		}}, true
	}

	// Check 3: bidirectional consistency. The default-mode warning does
	// not stop the sequence; the strict-mode error does.
	if issue := v.inverse.CheckReference(ctx, e, lt, ref); issue != nil {
		return []Issue{*issue}, issue.Severity == SeverityError
	}

	return nil, false
}

// applicableFrom reports whether a reference under this predicate may
// originate from the given layer. The inverse side of a link type originates
// from the link's target layer.
func applicableFrom(lt *catalog.LinkType, predicate string, layer model.Layer) bool {
	if predicate == lt.Inverse && predicate != lt.Predicate {
		return lt.TargetLayer == layer
	}
	return lt.AppliesToLayer(layer)
}

// checkCardinality emits at most one issue per predicate: either the field
// shape violates a single-cardinality declaration, or a one-to-one
// relationship is used more than once from this source.
func (v *PredicateValidator) checkCardinality(ctx *Context, e *model.Element, forwardCounts map[string]int, badPredicates map[string]bool) []Issue {
	var issues []Issue
	emitted := make(map[string]bool)

	for _, path := range ctx.Catalog.DeclaredFieldPaths() {
		lt, _ := ctx.Catalog.ByFieldPath(path)
		if badPredicates[lt.Predicate] || emitted[lt.Predicate] {
			continue
		}
		value, ok := e.Data.Get(path)
		if !ok {
			continue
		}

		if lt.Cardinality == catalog.CardinalitySingle && value.Kind() == model.KindList {
			emitted[lt.Predicate] = true
			issues = append(issues, Issue{
				Code:      CodeCardinality,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message: fmt.Sprintf("field %q is declared single-valued but holds %d values",
					path, len(value.Items())),
				Severity: SeverityError,
				Location: path,
			}.WithSuggestion(fmt.Sprintf("keep exactly one %q value", path)))
			continue
		}

		if lt.Multiplicity == catalog.OneToOne && forwardCounts[lt.Predicate] > 1 {
			emitted[lt.Predicate] = true
			issues = append(issues, Issue{
				Code:      CodeCardinality,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message: fmt.Sprintf("one-to-one predicate %q used %d times from %s",
					lt.Predicate, forwardCounts[lt.Predicate], e.ID()),
				Severity: SeverityError,
				Location: path,
			})
		}
	}

	return issues
}
