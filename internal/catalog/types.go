package catalog

import (
	"regexp"

	"github.com/stratum-model/stratum/internal/model"
)

// Cardinality constrains the shape of a reference field: a single value or an
// array of values.
type Cardinality string

const (
	CardinalitySingle Cardinality = "single"
	CardinalityArray  Cardinality = "array"
)

// Multiplicity is the relationship-level multiplicity between source and
// target element populations.
type Multiplicity string

const (
	OneToOne   Multiplicity = "one-to-one"
	OneToMany  Multiplicity = "one-to-many"
	ManyToMany Multiplicity = "many-to-many"
)

// LinkType is one legal reference shape: which predicate it carries, which
// layers and element types it may connect, where in the attribute tree it
// lives, and how many values it admits. Definitions are loaded once at
// startup and never mutated.
type LinkType struct {
	ID           string
	Predicate    string
	Inverse      string
	Category     string
	SourceLayers []model.Layer
	TargetLayer  model.Layer
	TargetTypes  []string
	FieldPaths   []string
	Cardinality  Cardinality
	Multiplicity Multiplicity
	ValueFormat  string
	Pattern      *regexp.Regexp
	Description  string
	Examples     []string
}

// Bidirectional reports whether the link type declares an inverse predicate,
// meaning a forward reference expects a mirrored reference back.
func (lt *LinkType) Bidirectional() bool { return lt.Inverse != "" }

// AppliesToLayer reports whether the link type may originate from the given
// layer.
func (lt *LinkType) AppliesToLayer(layer model.Layer) bool {
	for _, l := range lt.SourceLayers {
		if l == layer {
			return true
		}
	}
	return false
}

// AllowsTargetType reports whether the link type permits the given target
// element type. An empty TargetTypes list permits any type in the target
// layer.
func (lt *LinkType) AllowsTargetType(typ string) bool {
	if len(lt.TargetTypes) == 0 {
		return true
	}
	for _, t := range lt.TargetTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Strength grades a traceability rule: must_reference failures are errors,
// should_reference failures are warnings.
type Strength string

const (
	Must   Strength = "must"
	Should Strength = "should"
)

// TraceabilityRule requires (or recommends) that elements of one type carry a
// reference under at least one of the listed predicates. Field names the
// attribute to add, used verbatim in fix suggestions.
type TraceabilityRule struct {
	ElementType string // "layer.type", e.g. "application.service"
	Strength    Strength
	Predicates  []string
	TargetLayer model.Layer
	TargetTypes []string
	Field       string
}
