package refs

import (
	"sort"

	"github.com/stratum-model/stratum/internal/model"
)

// Index is the in-memory store of reference records, queryable by source,
// target, and predicate. All mutation flows through Register and the Remove
// methods; the byTarget and byPredicate views are derived and rebuilt
// incrementally so they never drift from the source of truth.
//
// The index is not safe for concurrent mutation. Validation runs are
// single-threaded by design.
type Index struct {
	extractor *Extractor
	bySource  map[string][]Reference
}

// NewIndex creates an empty index that extracts with the given extractor.
func NewIndex(extractor *Extractor) *Index {
	return &Index{
		extractor: extractor,
		bySource:  make(map[string][]Reference),
	}
}

// Register extracts the element's references and stores them, replacing any
// references previously registered for the same source id. Registering the
// same unchanged element twice is a no-op. Any graph view obtained before
// this call is stale afterwards.
func (ix *Index) Register(e *model.Element) []Reference {
	refs := ix.extractor.Extract(e)
	ix.bySource[e.ID()] = refs
	return refs
}

// Remove drops every reference registered for the source id.
func (ix *Index) Remove(sourceID string) {
	delete(ix.bySource, sourceID)
}

// RemoveTarget drops the source's references pointing at one target id.
func (ix *Index) RemoveTarget(sourceID, targetID string) {
	refs := ix.bySource[sourceID]
	if len(refs) == 0 {
		return
	}
	kept := refs[:0]
	for _, r := range refs {
		if r.TargetID != targetID {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(ix.bySource, sourceID)
		return
	}
	ix.bySource[sourceID] = kept
}

// BySource returns the references registered for a source id, in extraction
// order.
func (ix *Index) BySource(sourceID string) []Reference {
	return ix.bySource[sourceID]
}

// ByTarget returns every reference pointing at the target id.
func (ix *Index) ByTarget(targetID string) []Reference {
	var out []Reference
	for _, source := range ix.Sources() {
		for _, r := range ix.bySource[source] {
			if r.TargetID == targetID {
				out = append(out, r)
			}
		}
	}
	return out
}

// ByPredicate returns every reference carrying the given predicate.
func (ix *Index) ByPredicate(predicate string) []Reference {
	var out []Reference
	for _, source := range ix.Sources() {
		for _, r := range ix.bySource[source] {
			if r.Predicate == predicate {
				out = append(out, r)
			}
		}
	}
	return out
}

// Sources returns all registered source ids, sorted.
func (ix *Index) Sources() []string {
	out := make([]string, 0, len(ix.bySource))
	for id := range ix.bySource {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// All returns every reference in the index, ordered by source id then
// extraction order.
func (ix *Index) All() []Reference {
	var out []Reference
	for _, source := range ix.Sources() {
		out = append(out, ix.bySource[source]...)
	}
	return out
}

// Len returns the total number of reference records.
func (ix *Index) Len() int {
	n := 0
	for _, refs := range ix.bySource {
		n += len(refs)
	}
	return n
}
