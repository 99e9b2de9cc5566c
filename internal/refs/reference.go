// Package refs extracts, indexes, and analyzes the directed references
// between model elements. The index is the single source of truth for the
// reference graph; every graph view is derived from it on demand.
package refs

import "fmt"

// Reference is one directed, typed edge from a source element's attribute to
// a target element id. References are derived from element data, never
// persisted on their own, and recomputed whenever the owning element is
// re-registered.
type Reference struct {
	SourceID  string
	TargetID  string
	FieldPath string
	Predicate string
	// Required is set for scalar reference fields; entries of an array
	// field are individually optional.
	Required bool
	// Generic marks references found by the suffix-convention scan rather
	// than a catalog-declared field. Generic references are checked for
	// integrity but carry no catalog predicate semantics.
	Generic bool
}

// Key returns the identity triple. Two references are the same edge iff
// their keys are equal; predicate and flags are not part of identity.
func (r Reference) Key() string {
	return r.SourceID + "\x00" + r.TargetID + "\x00" + r.FieldPath
}

// String formats the reference for diagnostics.
func (r Reference) String() string {
	return fmt.Sprintf("%s --%s--> %s (at %s)", r.SourceID, r.Predicate, r.TargetID, r.FieldPath)
}
