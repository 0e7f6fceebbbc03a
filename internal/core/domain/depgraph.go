package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// DependencyGraph is a directed graph of item ids where an edge dep -> item means
// the item cannot complete before dep. Node order is insertion order so results are stable.
type DependencyGraph struct {
	order []string
	deps  map[string][]string
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{deps: make(map[string][]string)}
}

// AddNode registers id with its dependency ids. Re-adding an id replaces its dependencies.
func (g *DependencyGraph) AddNode(id string, dependencies []string) {
	if _, exists := g.deps[id]; !exists {
		g.order = append(g.order, id)
	}
	g.deps[id] = append([]string(nil), dependencies...)
}

// Has reports whether id is a node of the graph.
func (g *DependencyGraph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// Dependencies returns the direct dependencies of id.
func (g *DependencyGraph) Dependencies(id string) []string {
	return g.deps[id]
}

// Validate checks that every dependency references a node, that no node depends on itself
// and that the graph is acyclic.
func (g *DependencyGraph) Validate() error {
	for _, id := range g.order {
		seen := make(map[string]bool, len(g.deps[id]))
		for _, dep := range g.deps[id] {
			if dep == id {
				return fmt.Errorf("%w: item %s depends on itself", apperrors.ErrValidation, id)
			}
			if !g.Has(dep) {
				return fmt.Errorf("%w: item %s depends on unknown item %s", apperrors.ErrValidation, id, dep)
			}
			if seen[dep] {
				return fmt.Errorf("%w: item %s lists dependency %s twice", apperrors.ErrValidation, id, dep)
			}
			seen[dep] = true
		}
	}
	_, err := g.TopologicalOrder()
	return err
}

// TopologicalOrder returns the nodes so that every item appears after its dependencies (Kahn).
func (g *DependencyGraph) TopologicalOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))
	for _, id := range g.order {
		for _, dep := range g.deps[id] {
			if !g.Has(dep) {
				continue
			}
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(g.order) {
		cyclic := make([]string, 0)
		for _, id := range g.order {
			if indegree[id] > 0 {
				cyclic = append(cyclic, id)
			}
		}
		return nil, fmt.Errorf("%w: dependency cycle between items %s", apperrors.ErrValidation, strings.Join(cyclic, ", "))
	}
	return sorted, nil
}

// UnmetDependencies lists the dependencies of id for which done returns false.
func (g *DependencyGraph) UnmetDependencies(id string, done func(string) bool) []string {
	var unmet []string
	for _, dep := range g.deps[id] {
		if !done(dep) {
			unmet = append(unmet, dep)
		}
	}
	return unmet
}
