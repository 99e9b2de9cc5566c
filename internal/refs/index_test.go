package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/model"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	return NewIndex(defaultExtractor(t))
}

func TestRegisterReplacesPreviousReferences(t *testing.T) {
	ix := newTestIndex(t)
	e := elementWithData(model.LayerApplication, "service", "billing-api", map[string]interface{}{
		"realizes": "business.service.billing",
	})

	refs := ix.Register(e)
	require.Len(t, refs, 1)
	require.Len(t, ix.BySource(e.ID()), 1)

	// Same data registered again: idempotent.
	ix.Register(e)
	assert.Len(t, ix.BySource(e.ID()), 1)
	assert.Equal(t, 1, ix.Len())

	// Changed data replaces, never appends.
	require.NoError(t, e.Update("realizes", model.String("business.service.payments")))
	ix.Register(e)
	got := ix.BySource(e.ID())
	require.Len(t, got, 1)
	assert.Equal(t, "business.service.payments", got[0].TargetID)
	assert.Empty(t, ix.ByTarget("business.service.billing"))
}

func TestRemove(t *testing.T) {
	ix := newTestIndex(t)
	e := elementWithData(model.LayerApplication, "service", "billing-api", map[string]interface{}{
		"realizes": "business.service.billing",
		"accesses": []interface{}{"schema.entity.invoice"},
	})
	ix.Register(e)
	require.Equal(t, 2, ix.Len())

	ix.Remove(e.ID())
	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.BySource(e.ID()))
}

func TestRemoveTarget(t *testing.T) {
	ix := newTestIndex(t)
	e := elementWithData(model.LayerApplication, "service", "billing-api", map[string]interface{}{
		"realizes": "business.service.billing",
		"accesses": []interface{}{"schema.entity.invoice"},
	})
	ix.Register(e)

	ix.RemoveTarget(e.ID(), "schema.entity.invoice")
	got := ix.BySource(e.ID())
	require.Len(t, got, 1)
	assert.Equal(t, "business.service.billing", got[0].TargetID)

	// Removing the last reference clears the source entirely.
	ix.RemoveTarget(e.ID(), "business.service.billing")
	assert.Empty(t, ix.Sources())
}

func TestQueries(t *testing.T) {
	ix := newTestIndex(t)
	a := elementWithData(model.LayerApplication, "service", "a", map[string]interface{}{
		"realizes": "business.service.shared",
	})
	b := elementWithData(model.LayerApplication, "service", "b", map[string]interface{}{
		"realizes": "business.service.shared",
		"accesses": []interface{}{"schema.entity.invoice"},
	})
	ix.Register(a)
	ix.Register(b)

	assert.Len(t, ix.ByTarget("business.service.shared"), 2)
	assert.Len(t, ix.ByPredicate("realizes"), 2)
	assert.Len(t, ix.ByPredicate("accesses"), 1)
	assert.Empty(t, ix.ByPredicate("serves"))

	assert.Equal(t, []string{"application.service.a", "application.service.b"}, ix.Sources())
	assert.Len(t, ix.All(), 3)
}
