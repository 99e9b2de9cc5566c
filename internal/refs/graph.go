package refs

import (
	"sort"

	"github.com/stratum-model/stratum/internal/model"
)

// Graph is a directed adjacency view over the index, built on demand by
// Index.Graph. It is a snapshot: the instant the index mutates, any
// previously obtained Graph is stale and must be discarded. The engine does
// no caching of views; callers repeating analysis over an unchanged index
// are responsible for their own memoization.
type Graph struct {
	out map[string][]Reference
	in  map[string][]Reference
}

// Graph constructs a fresh directed-graph view from current index state.
func (ix *Index) Graph() *Graph {
	g := &Graph{
		out: make(map[string][]Reference, len(ix.bySource)),
		in:  make(map[string][]Reference),
	}
	for _, source := range ix.Sources() {
		refs := ix.bySource[source]
		g.out[source] = append(g.out[source], refs...)
		for _, r := range refs {
			g.in[r.TargetID] = append(g.in[r.TargetID], r)
		}
	}
	return g
}

// Nodes returns every node appearing as a source or target, sorted.
func (g *Graph) Nodes() []string {
	seen := make(map[string]bool, len(g.out))
	for id := range g.out {
		seen[id] = true
	}
	for id := range g.in {
		seen[id] = true
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Outgoing returns the edges leaving a node.
func (g *Graph) Outgoing(id string) []Reference { return g.out[id] }

// Incoming returns the edges arriving at a node.
func (g *Graph) Incoming(id string) []Reference { return g.in[id] }

// Cycles returns every elementary cycle in the graph as a node path closed
// by repeating the first node. A cycle is a finding, not an error: whether it
// is legal (peer-to-peer references between elements of the same type often
// are) is the caller's policy.
//
// Each node in turn is taken as a root and the search is restricted to nodes
// ordering at or after it, so a cycle is discovered exactly once, rooted at
// its smallest node. A single global DFS would miss cycles sharing a node
// with an already-reported one.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	onStack := make(map[string]bool)
	seen := make(map[string]bool) // canonical cycle keys, to report each once

	var path []string
	var walk func(root, id string)
	walk = func(root, id string) {
		onStack[id] = true
		path = append(path, id)

		for _, edge := range g.out[id] {
			next := edge.TargetID
			if next == root {
				cycle := make([]string, len(path), len(path)+1)
				copy(cycle, path)
				cycle = append(cycle, root)
				if key := cycleKey(cycle); !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
				continue
			}
			if next < root || onStack[next] {
				continue
			}
			walk(root, next)
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	for _, root := range g.Nodes() {
		walk(root, root)
	}
	return cycles
}

// cycleKey normalizes a closed cycle path to its rotation starting at the
// smallest node id, so the same cycle discovered from different entry points
// is reported once.
func cycleKey(cycle []string) string {
	nodes := cycle[:len(cycle)-1]
	minAt := 0
	for i, n := range nodes {
		if n < nodes[minAt] {
			minAt = i
		}
	}
	key := ""
	for i := range nodes {
		key += nodes[(minAt+i)%len(nodes)] + "\x00"
	}
	return key
}

// Impact computes the reverse transitive closure of a node: every element
// that depends on it, directly or through intermediaries. maxDepth bounds
// the hop count; zero means unbounded. The start node itself is not part of
// the result. The result is sorted.
func (g *Graph) Impact(id string, maxDepth int) []string {
	type hop struct {
		id    string
		depth int
	}
	visited := map[string]bool{id: true}
	var out []string
	queue := []hop{{id: id}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if maxDepth > 0 && current.depth >= maxDepth {
			continue
		}
		for _, edge := range g.in[current.id] {
			dependent := edge.SourceID
			if visited[dependent] {
				continue
			}
			visited[dependent] = true
			out = append(out, dependent)
			queue = append(queue, hop{id: dependent, depth: current.depth + 1})
		}
	}

	sort.Strings(out)
	return out
}

// Dangling returns every reference whose target id does not resolve through
// the lookup.
func (g *Graph) Dangling(lookup model.Lookup) []Reference {
	var out []Reference
	sources := make([]string, 0, len(g.out))
	for id := range g.out {
		sources = append(sources, id)
	}
	sort.Strings(sources)
	for _, source := range sources {
		for _, r := range g.out[source] {
			if _, ok := lookup.Get(r.TargetID); !ok {
				out = append(out, r)
			}
		}
	}
	return out
}
