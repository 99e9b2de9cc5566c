package validate

import (
	"fmt"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// InverseChecker verifies bidirectional consistency: a forward A→B reference
// under a bidirectional link type expects the mirrored B→A reference under
// the declared inverse predicate. The expectation is checked, never
// auto-created. The predicate validator runs this as its third check so that
// each asymmetric pair yields exactly one finding.
type InverseChecker struct{}

// CheckReference returns a finding when the mirrored inverse reference is
// absent, nil otherwise. Severity is a warning by default and an error in
// strict mode.
func (InverseChecker) CheckReference(ctx *Context, e *model.Element, lt *catalog.LinkType, ref refs.Reference) *Issue {
	if !lt.Bidirectional() {
		return nil
	}
	// Only the forward side carries the expectation; checking both sides
	// would report every asymmetric pair twice.
	if ref.Predicate != lt.Predicate {
		return nil
	}

	for _, back := range ctx.Index.BySource(ref.TargetID) {
		if back.Predicate == lt.Inverse && back.TargetID == ref.SourceID {
			return nil
		}
	}

	severity := SeverityWarning
	if ctx.Strict {
		severity = SeverityError
	}
	issue := Issue{
		Code:      CodeMissingInverse,
		Layer:     e.Layer,
		ElementID: ref.SourceID,
		Message: fmt.Sprintf("%s references %s via %q but %s has no %q reference back",
			ref.SourceID, ref.TargetID, lt.Predicate, ref.TargetID, lt.Inverse),
		Severity: severity,
		Location: ref.FieldPath,
	}.WithSuggestion(fmt.Sprintf("add a %q field on %s referencing %s", lt.Inverse, ref.TargetID, ref.SourceID))
	return &issue
}
