package dag

import (
	"errors"
	"maps"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/asset"
)

var (
	// ErrGraphHasCycle is matched by every [CycleError] and returned by
	// [Graph.Validate] when a cycle is detected. Cycles are detected using
	// depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrUnknownNode is returned by queries that require an existing node.
	ErrUnknownNode = errors.New("unknown node")
)

// Edge is a directed consumer→dependency relation: From needs To built first.
type Edge struct {
	From asset.ID
	To   asset.ID
}

// Graph is a directed graph of assets. Edges point from a consumer to the
// asset it depends on.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation; once built it may be queried
// from multiple goroutines.
type Graph struct {
	nodes    map[asset.ID]struct{}
	outgoing map[asset.ID][]asset.ID // consumer -> dependencies
	incoming map[asset.ID][]asset.ID // dependency -> consumers
	edges    int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[asset.ID]struct{}),
		outgoing: make(map[asset.ID][]asset.ID),
		incoming: make(map[asset.ID][]asset.ID),
	}
}

// AddNode registers an asset. Registering an existing node is a no-op;
// registration never fails.
func (g *Graph) AddNode(id asset.ID) {
	g.nodes[id] = struct{}{}
}

// AddEdge records that from depends on to, registering both nodes.
// Duplicate edges are ignored. Self loops are recorded and reported as
// cycles by [Graph.BuildOrder].
func (g *Graph) AddEdge(from, to asset.ID) {
	g.AddNode(from)
	g.AddNode(to)
	if slices.Contains(g.outgoing[from], to) {
		return
	}
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	g.edges++
}

// HasNode reports whether id is registered.
func (g *Graph) HasNode(id asset.ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns every node in sorted order.
func (g *Graph) Nodes() []asset.ID {
	return slices.SortedFunc(maps.Keys(g.nodes), asset.ID.Compare)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns every edge, sorted by consumer then dependency.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, from := range g.Nodes() {
		for _, to := range g.Dependencies(from) {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Dependencies returns the assets id depends on, sorted. The returned slice
// is a copy.
func (g *Graph) Dependencies(id asset.ID) []asset.ID {
	return sortedCopy(g.outgoing[id])
}

// Dependents returns the assets that depend on id, sorted. The returned
// slice is a copy.
func (g *Graph) Dependents(id asset.ID) []asset.ID {
	return sortedCopy(g.incoming[id])
}

// Sources returns nodes nothing depends on (top-level consumers), sorted.
func (g *Graph) Sources() []asset.ID {
	var out []asset.ID
	for _, id := range g.Nodes() {
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sinks returns nodes with no dependencies (leaves), sorted.
func (g *Graph) Sinks() []asset.ID {
	var out []asset.ID
	for _, id := range g.Nodes() {
		if len(g.outgoing[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Closure returns the subgraph made of roots and everything they depend on,
// transitively. Unknown roots yield ErrUnknownNode.
func (g *Graph) Closure(roots ...asset.ID) (*Graph, error) {
	sub := New()
	var visit func(id asset.ID)
	visit = func(id asset.ID) {
		if sub.HasNode(id) {
			return
		}
		sub.AddNode(id)
		for _, dep := range g.outgoing[id] {
			visit(dep)
			sub.AddEdge(id, dep)
		}
	}
	for _, r := range roots {
		if !g.HasNode(r) {
			return nil, ErrUnknownNode
		}
		visit(r)
	}
	return sub, nil
}

// Validate returns nil if the graph is acyclic and ErrGraphHasCycle
// otherwise. It runs in O(N+E) time.
func (g *Graph) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[asset.ID]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id asset.ID)
	dfs = func(id asset.ID) {
		color[id] = gray
		for _, dep := range g.outgoing[id] {
			switch color[dep] {
			case white:
				dfs(dep)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range g.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

func sortedCopy(ids []asset.ID) []asset.ID {
	out := slices.Clone(ids)
	slices.SortFunc(out, asset.ID.Compare)
	return out
}
