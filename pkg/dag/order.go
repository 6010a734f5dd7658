package dag

import (
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// CycleError reports one concrete dependency cycle. Cycle starts and ends
// with the same asset; every consecutive pair is connected by an edge.
type CycleError struct {
	Cycle []asset.ID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = id.String()
	}
	return "dependency cycle: " + strings.Join(parts, " -> ")
}

// Unwrap lets errors.Is match both ErrGraphHasCycle and the
// DEPENDENCY_CYCLE error code.
func (e *CycleError) Unwrap() []error {
	return []error{
		ErrGraphHasCycle,
		errors.New(errors.ErrCodeDependencyCycle, "%s", e.Error()),
	}
}

// BuildOrder returns every node such that each dependency precedes its
// consumers. It uses Kahn's algorithm; ties are broken by [asset.ID.Compare]
// so the order is deterministic.
//
// If the graph contains a cycle (a self loop included), BuildOrder returns a
// *CycleError naming one concrete cycle.
func (g *Graph) BuildOrder() ([]asset.ID, error) {
	pending := make(map[asset.ID]int, len(g.nodes))
	var ready []asset.ID
	for id := range g.nodes {
		pending[id] = len(g.outgoing[id])
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}
	slices.SortFunc(ready, asset.ID.Compare)

	order := make([]asset.ID, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, consumer := range g.incoming[id] {
			pending[consumer]--
			if pending[consumer] == 0 {
				i, _ := slices.BinarySearchFunc(ready, consumer, asset.ID.Compare)
				ready = slices.Insert(ready, i, consumer)
			}
		}
	}

	if len(order) < len(g.nodes) {
		return nil, &CycleError{Cycle: g.findCycle()}
	}
	return order, nil
}

// Levels groups the build order into waves. Every member of a wave depends
// only on members of earlier waves, so a wave's members can be built
// concurrently. Each wave is sorted.
func (g *Graph) Levels() ([][]asset.ID, error) {
	order, err := g.BuildOrder()
	if err != nil {
		return nil, err
	}
	depth := make(map[asset.ID]int, len(order))
	var levels [][]asset.ID
	for _, id := range order {
		d := 0
		for _, dep := range g.outgoing[id] {
			d = max(d, depth[dep]+1)
		}
		depth[id] = d
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], id)
	}
	for _, l := range levels {
		slices.SortFunc(l, asset.ID.Compare)
	}
	return levels, nil
}

// findCycle walks the graph depth first with an on-path marker and returns
// the path slice from the first repeated node, closed by repeating it.
func (g *Graph) findCycle() []asset.ID {
	visited := make(map[asset.ID]bool, len(g.nodes))
	onPath := make(map[asset.ID]int) // node -> index in path
	var path []asset.ID

	var dfs func(id asset.ID) []asset.ID
	dfs = func(id asset.ID) []asset.ID {
		visited[id] = true
		onPath[id] = len(path)
		path = append(path, id)

		for _, dep := range g.Dependencies(id) {
			if i, ok := onPath[dep]; ok {
				cycle := slices.Clone(path[i:])
				return append(cycle, dep)
			}
			if !visited[dep] {
				if c := dfs(dep); c != nil {
					return c
				}
			}
		}

		delete(onPath, id)
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range g.Nodes() {
		if !visited[id] {
			if c := dfs(id); c != nil {
				return c
			}
		}
	}
	return nil
}
