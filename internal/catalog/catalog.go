// Package catalog holds the load-once registry of legal reference shapes:
// which predicates exist, which layers and element types they may connect,
// where in an element's attribute tree they live, and what multiplicity they
// admit. The catalog is immutable after Load; every validator and the
// extractor share one instance.
package catalog

import (
	"fmt"
	"sort"

	"github.com/stratum-model/stratum/internal/model"
)

// Catalog is the loaded definition set. All lookup maps are built at load
// time; the catalog is safe for concurrent readers because nothing mutates
// it afterwards.
type Catalog struct {
	version     int
	types       []*LinkType
	byID        map[string]*LinkType
	byPredicate map[string]*LinkType // forward and inverse predicates both resolve
	rules       map[string][]TraceabilityRule
	warnings    []string
}

func newCatalog(version int) *Catalog {
	return &Catalog{
		version:     version,
		byID:        make(map[string]*LinkType),
		byPredicate: make(map[string]*LinkType),
		rules:       make(map[string][]TraceabilityRule),
	}
}

func (c *Catalog) add(lt *LinkType) error {
	if _, exists := c.byID[lt.ID]; exists {
		return fmt.Errorf("duplicate link type id %q", lt.ID)
	}
	if prev, exists := c.byPredicate[lt.Predicate]; exists && prev.Predicate == lt.Predicate {
		return fmt.Errorf("predicate %q already declared by %q", lt.Predicate, prev.ID)
	}
	c.types = append(c.types, lt)
	c.byID[lt.ID] = lt
	c.byPredicate[lt.Predicate] = lt
	if lt.Inverse != "" {
		if _, exists := c.byPredicate[lt.Inverse]; !exists {
			c.byPredicate[lt.Inverse] = lt
		}
	}
	return nil
}

// Version returns the definition set version.
func (c *Catalog) Version() int { return c.version }

// Warnings returns the per-record load warnings collected for malformed
// entries that were skipped.
func (c *Catalog) Warnings() []string { return c.warnings }

// Types returns all loaded link types in definition order.
func (c *Catalog) Types() []*LinkType { return c.types }

// ByID looks up a link type by definition id.
func (c *Catalog) ByID(id string) (*LinkType, bool) {
	lt, ok := c.byID[id]
	return lt, ok
}

// ByPredicate looks up a link type by predicate. The forward predicate and
// the declared inverse both resolve to the same type.
func (c *Catalog) ByPredicate(predicate string) (*LinkType, bool) {
	lt, ok := c.byPredicate[predicate]
	return lt, ok
}

// IsInverse reports whether the given predicate is the inverse side of the
// link type it resolves to.
func (c *Catalog) IsInverse(predicate string) bool {
	lt, ok := c.byPredicate[predicate]
	return ok && lt.Inverse == predicate && lt.Predicate != predicate
}

// ByCategory returns all link types in a category.
func (c *Catalog) ByCategory(category string) []*LinkType {
	var out []*LinkType
	for _, lt := range c.types {
		if lt.Category == category {
			out = append(out, lt)
		}
	}
	return out
}

// BySourceLayer returns all link types that may originate from the given
// layer identifier (any accepted form).
func (c *Catalog) BySourceLayer(rawLayer string) ([]*LinkType, error) {
	layer, err := model.NormalizeLayer(rawLayer)
	if err != nil {
		return nil, err
	}
	var out []*LinkType
	for _, lt := range c.types {
		if lt.AppliesToLayer(layer) {
			out = append(out, lt)
		}
	}
	return out, nil
}

// ByTargetLayer returns all link types targeting the given layer identifier.
func (c *Catalog) ByTargetLayer(rawLayer string) ([]*LinkType, error) {
	layer, err := model.NormalizeLayer(rawLayer)
	if err != nil {
		return nil, err
	}
	var out []*LinkType
	for _, lt := range c.types {
		if lt.TargetLayer == layer {
			out = append(out, lt)
		}
	}
	return out, nil
}

// PredicatesForLayer returns the sorted forward predicates usable from the
// given layer identifier. "06", "api", and "06-api" all yield the same list.
func (c *Catalog) PredicatesForLayer(rawLayer string) ([]string, error) {
	types, err := c.BySourceLayer(rawLayer)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(types))
	for _, lt := range types {
		out = append(out, lt.Predicate)
	}
	sort.Strings(out)
	return out, nil
}

// KnownPredicates returns every forward predicate in the catalog, sorted.
func (c *Catalog) KnownPredicates() []string {
	out := make([]string, 0, len(c.types))
	for _, lt := range c.types {
		out = append(out, lt.Predicate)
	}
	sort.Strings(out)
	return out
}

// DeclaredFieldPaths returns every field path declared by any link type,
// sorted and deduplicated. The extractor uses this as its well-known field
// list.
func (c *Catalog) DeclaredFieldPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, lt := range c.types {
		for _, p := range lt.FieldPaths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ReferenceField is one well-known reference field name together with the
// predicate a value under it carries.
type ReferenceField struct {
	Path      string
	Predicate string
	Type      *LinkType
}

// ReferenceFields returns every well-known reference field, sorted by path:
// the declared field paths of each link type, plus the inverse predicate
// names, which elements on the target side use as field names for their
// mirrored references.
func (c *Catalog) ReferenceFields() []ReferenceField {
	seen := make(map[string]bool)
	var out []ReferenceField
	for _, lt := range c.types {
		for _, p := range lt.FieldPaths {
			if !seen[p] {
				seen[p] = true
				out = append(out, ReferenceField{Path: p, Predicate: lt.Predicate, Type: lt})
			}
		}
	}
	for _, lt := range c.types {
		if lt.Inverse != "" && !seen[lt.Inverse] {
			seen[lt.Inverse] = true
			out = append(out, ReferenceField{Path: lt.Inverse, Predicate: lt.Inverse, Type: lt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// ByFieldPath resolves the link type declaring the given field path, if any.
func (c *Catalog) ByFieldPath(path string) (*LinkType, bool) {
	for _, lt := range c.types {
		for _, p := range lt.FieldPaths {
			if p == path {
				return lt, true
			}
		}
	}
	return nil, false
}

// RulesFor returns the traceability rules declared for a "layer.type"
// element type.
func (c *Catalog) RulesFor(layer model.Layer, elementType string) []TraceabilityRule {
	return c.rules[string(layer)+"."+elementType]
}

// Rules returns all traceability rules keyed by element type.
func (c *Catalog) Rules() map[string][]TraceabilityRule { return c.rules }
