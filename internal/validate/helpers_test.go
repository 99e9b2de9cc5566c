package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// fixture bundles a catalog, index, and snapshot for validator tests.
type fixture struct {
	cat    *catalog.Catalog
	index  *refs.Index
	lookup mapLookup
}

type mapLookup map[string]*model.Element

func (m mapLookup) Get(id string) (*model.Element, bool) {
	e, ok := m[id]
	return e, ok
}

func (m mapLookup) List(layer model.Layer) []*model.Element {
	var out []*model.Element
	for _, e := range m {
		if e.Layer == layer {
			out = append(out, e)
		}
	}
	return out
}

func (m mapLookup) HasLayer(layer model.Layer) bool {
	return len(m.List(layer)) > 0
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.LoadDefault(nil)
	require.NoError(t, err)
	return &fixture{
		cat:    cat,
		index:  refs.NewIndex(refs.NewExtractor(cat)),
		lookup: make(mapLookup),
	}
}

// add creates an element, stores it in the snapshot, and registers its
// references.
func (f *fixture) add(layer model.Layer, typ, name string, raw map[string]interface{}) *model.Element {
	e := model.NewElement(layer, typ, name)
	if raw != nil {
		e.Data = model.TreeFromAny(raw)
	}
	f.lookup[e.ID()] = e
	f.index.Register(e)
	return e
}

func (f *fixture) ctx(strict bool) *Context {
	return &Context{
		Catalog: f.cat,
		Index:   f.index,
		Lookup:  f.lookup,
		Strict:  strict,
	}
}

// issuesWithCode filters a result's issues by code.
func issuesWithCode(issues []Issue, code string) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Code == code {
			out = append(out, issue)
		}
	}
	return out
}

func resultIssuesWithCode(r *Result, code string) []Issue {
	return append(issuesWithCode(r.Errors, code), issuesWithCode(r.Warnings, code)...)
}
