package validate

import (
	"fmt"

	"github.com/stratum-model/stratum/internal/model"
)

// IntegrityValidator is the generic reference-integrity pass: every outgoing
// reference, including suffix-convention ones, must carry a well-formed
// target id that resolves to an existing element in the snapshot.
type IntegrityValidator struct{}

// NewIntegrityValidator creates the validator.
func NewIntegrityValidator() *IntegrityValidator {
	return &IntegrityValidator{}
}

// Name implements Validator.
func (v *IntegrityValidator) Name() string { return "integrity" }

// ValidateElement implements Validator.
func (v *IntegrityValidator) ValidateElement(ctx *Context, e *model.Element) []Issue {
	var issues []Issue

	for _, ref := range ctx.Index.BySource(e.ID()) {
		targetLayer, _, _, err := model.ParseID(ref.TargetID)
		if err != nil {
			issues = append(issues, Issue{
				Code:      CodeBrokenReference,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message:   fmt.Sprintf("reference target %q is not a valid element id: %v", ref.TargetID, err),
				Severity:  SeverityError,
				Location:  ref.FieldPath,
			})
			continue
		}

		if !ctx.Lookup.HasLayer(targetLayer) {
			issues = append(issues, Issue{
				Code:      CodeBrokenReference,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message:   fmt.Sprintf("broken reference: target %q names layer %q, which has no elements", ref.TargetID, targetLayer),
				Severity:  SeverityError,
				Location:  ref.FieldPath,
			})
			continue
		}

		if _, ok := ctx.Lookup.Get(ref.TargetID); !ok {
			issues = append(issues, Issue{
				Code:      CodeBrokenReference,
				Layer:     e.Layer,
				ElementID: e.ID(),
				Message:   fmt.Sprintf("broken reference: target %q does not exist", ref.TargetID),
				Severity:  SeverityError,
				Location:  ref.FieldPath,
			}.WithSuggestion(fmt.Sprintf("create %q or remove the %q reference", ref.TargetID, ref.Predicate)))
		}
	}

	return issues
}
