package refs

import (
	"strings"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
)

// Extractor locates every outgoing reference inside an element's attribute
// tree. Two independent strategies run over the same data:
//
//  1. every field path declared by a catalog link type is resolved directly;
//  2. the whole tree is walked recursively and any key ending in "Ref" or
//     "Reference" is treated as a reference field.
//
// The strategies may both match the same key. The resulting duplicate
// entries are intentional and must not be collapsed: downstream cardinality
// counting observes them.
type Extractor struct {
	cat *catalog.Catalog
}

// NewExtractor creates an extractor bound to a loaded catalog.
func NewExtractor(cat *catalog.Catalog) *Extractor {
	return &Extractor{cat: cat}
}

// Extract returns the element's complete outgoing reference set. An element
// with no references yields an empty slice; that is a valid result, not an
// error. Extraction is deterministic: the same data always yields the same
// references in the same order.
func (x *Extractor) Extract(e *model.Element) []Reference {
	refs := make([]Reference, 0)
	sourceID := e.ID()

	// Catalog-declared predicate fields, forward and inverse.
	for _, rf := range x.cat.ReferenceFields() {
		value, ok := e.Data.Get(rf.Path)
		if !ok {
			continue
		}
		refs = append(refs, referencesFromValue(sourceID, rf.Path, rf.Predicate, false, value)...)
	}

	// Generic suffix convention, anywhere in the tree.
	e.Data.Walk(func(path, key string, value model.Value) bool {
		if !isReferenceKey(key) {
			return true
		}
		refs = append(refs, referencesFromValue(sourceID, path, key, true, value)...)
		return true
	})

	return refs
}

// referencesFromValue converts one field value into references. A scalar
// string yields a single required reference; an array of strings yields one
// non-required reference per entry. Anything else is ignored, not flagged.
func referencesFromValue(sourceID, path, predicate string, generic bool, value model.Value) []Reference {
	switch value.Kind() {
	case model.KindString:
		return []Reference{{
			SourceID:  sourceID,
			TargetID:  value.Str(),
			FieldPath: path,
			Predicate: predicate,
			Required:  true,
			Generic:   generic,
		}}
	case model.KindList:
		var out []Reference
		for _, target := range value.StringItems() {
			out = append(out, Reference{
				SourceID:  sourceID,
				TargetID:  target,
				FieldPath: path,
				Predicate: predicate,
				Generic:   generic,
			})
		}
		return out
	default:
		return nil
	}
}

func isReferenceKey(key string) bool {
	return strings.HasSuffix(key, "Ref") || strings.HasSuffix(key, "Reference")
}
