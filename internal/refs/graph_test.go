package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/model"
)

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

func peerNode(name, target string) *model.Element {
	return elementWithData(model.LayerTechnology, "node", name, map[string]interface{}{
		"depends-on": []interface{}{target},
	})
}

func TestGraphCyclesDetectsAndDeduplicates(t *testing.T) {
	ix := newTestIndex(t)
	ix.Register(peerNode("a", "technology.node.b"))
	ix.Register(peerNode("b", "technology.node.c"))
	ix.Register(peerNode("c", "technology.node.a"))

	cycles := ix.Graph().Cycles()
	require.Len(t, cycles, 1)
	cycle := cycles[0]
	assert.Len(t, cycle, 4)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1])
}

func TestGraphCyclesSharingANode(t *testing.T) {
	// a <-> b and a -> c -> b -> a: two elementary cycles through a and b.
	ix := newTestIndex(t)
	ix.Register(elementWithData(model.LayerTechnology, "node", "a", map[string]interface{}{
		"depends-on": []interface{}{"technology.node.b", "technology.node.c"},
	}))
	ix.Register(peerNode("b", "technology.node.a"))
	ix.Register(peerNode("c", "technology.node.b"))

	cycles := ix.Graph().Cycles()
	require.Len(t, cycles, 2)
	assert.Contains(t, cycles, []string{"technology.node.a", "technology.node.b", "technology.node.a"})
	assert.Contains(t, cycles, []string{"technology.node.a", "technology.node.c", "technology.node.b", "technology.node.a"})
}

func TestGraphNoCycles(t *testing.T) {
	ix := newTestIndex(t)
	ix.Register(peerNode("a", "technology.node.b"))
	ix.Register(peerNode("b", "technology.node.c"))

	assert.Empty(t, ix.Graph().Cycles())
}

func TestGraphSelfCycle(t *testing.T) {
	ix := newTestIndex(t)
	ix.Register(peerNode("a", "technology.node.a"))

	cycles := ix.Graph().Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"technology.node.a", "technology.node.a"}, cycles[0])
}

func TestImpact(t *testing.T) {
	// c -> b -> a: everything upstream of a depends on it.
	ix := newTestIndex(t)
	ix.Register(peerNode("b", "technology.node.a"))
	ix.Register(peerNode("c", "technology.node.b"))

	g := ix.Graph()

	assert.Equal(t, []string{"technology.node.b", "technology.node.c"},
		g.Impact("technology.node.a", 0))

	// Bounded to one hop.
	assert.Equal(t, []string{"technology.node.b"},
		g.Impact("technology.node.a", 1))

	assert.Empty(t, g.Impact("technology.node.c", 0))
}

func TestImpactTerminatesOnCycle(t *testing.T) {
	ix := newTestIndex(t)
	ix.Register(peerNode("a", "technology.node.b"))
	ix.Register(peerNode("b", "technology.node.a"))

	got := ix.Graph().Impact("technology.node.a", 0)
	assert.Equal(t, []string{"technology.node.b"}, got)
}

func TestGraphViewIsASnapshot(t *testing.T) {
	ix := newTestIndex(t)
	ix.Register(peerNode("b", "technology.node.a"))

	stale := ix.Graph()
	ix.Remove("technology.node.b")

	// The old view still sees the removed edge; a fresh one does not.
	assert.Len(t, stale.Incoming("technology.node.a"), 1)
	assert.Empty(t, ix.Graph().Incoming("technology.node.a"))
}

func TestDangling(t *testing.T) {
	ix := newTestIndex(t)
	a := peerNode("a", "technology.node.missing")
	ix.Register(a)

	lookup := mapLookup{a.ID(): a}
	dangling := ix.Graph().Dangling(lookup)
	require.Len(t, dangling, 1)
	assert.Equal(t, "technology.node.missing", dangling[0].TargetID)

	lookup["technology.node.missing"] = model.NewElement(model.LayerTechnology, "node", "missing")
	assert.Empty(t, ix.Graph().Dangling(lookup))
}
