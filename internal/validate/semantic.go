package validate

import (
	"fmt"
	"strings"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
)

// SemanticValidator runs the deeper checks of strict mode: target element
// types must match the link type's declaration, and reference values must
// satisfy the declared value format and validation pattern. The pipeline
// only schedules this validator in its semantic phase.
type SemanticValidator struct{}

// NewSemanticValidator creates the validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{}
}

// Name implements Validator.
func (v *SemanticValidator) Name() string { return "semantic" }

// ValidateElement implements Validator.
func (v *SemanticValidator) ValidateElement(ctx *Context, e *model.Element) []Issue {
	var issues []Issue

	for _, ref := range ctx.Index.BySource(e.ID()) {
		if ref.Generic {
			continue
		}
		lt, ok := ctx.Catalog.ByPredicate(ref.Predicate)
		if !ok || ref.Predicate != lt.Predicate {
			// Unknown predicates are the predicate validator's finding;
			// inverse-side references are checked from the forward side.
			continue
		}

		issues = append(issues, v.checkTarget(e, lt, ref.TargetID, ref.FieldPath)...)
	}

	return issues
}

func (v *SemanticValidator) checkTarget(e *model.Element, lt *catalog.LinkType, targetID, fieldPath string) []Issue {
	var issues []Issue

	if lt.Pattern != nil && !lt.Pattern.MatchString(targetID) {
		issues = append(issues, Issue{
			Code:      CodeBadValueFormat,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message:   fmt.Sprintf("value %q does not match pattern %q for predicate %q", targetID, lt.Pattern.String(), lt.Predicate),
			Severity:  SeverityError,
			Location:  fieldPath,
		})
	}
	if err := catalog.ValidateFormat(lt.ValueFormat, targetID); err != nil {
		issues = append(issues, Issue{
			Code:      CodeBadValueFormat,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message:   fmt.Sprintf("value for predicate %q fails %s format: %v", lt.Predicate, lt.ValueFormat, err),
			Severity:  SeverityError,
			Location:  fieldPath,
		})
	}

	targetLayer, targetType, _, err := model.ParseID(targetID)
	if err != nil {
		// Malformed ids are the integrity validator's finding.
		return issues
	}
	if targetLayer != lt.TargetLayer {
		issues = append(issues, Issue{
			Code:      CodeTargetMismatch,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message: fmt.Sprintf("predicate %q targets layer %q, but %q is in layer %q",
				lt.Predicate, lt.TargetLayer, targetID, targetLayer),
			Severity: SeverityError,
			Location: fieldPath,
		})
	} else if !lt.AllowsTargetType(targetType) {
		issues = append(issues, Issue{
			Code:      CodeTargetMismatch,
			Layer:     e.Layer,
			ElementID: e.ID(),
			Message: fmt.Sprintf("predicate %q allows target types %s, but %q is a %q",
				lt.Predicate, strings.Join(lt.TargetTypes, "|"), targetID, targetType),
			Severity: SeverityError,
			Location: fieldPath,
		})
	}

	return issues
}
