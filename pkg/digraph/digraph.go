package digraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a directed cycle
	// is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Edge is a directed connection between two nodes.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph that may contain cycles and self-loops.
// Nodes keep their insertion order, which makes traversal deterministic.
//
// The zero value is not usable; use New.
type Graph struct {
	index    map[string]int
	order    []string
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the node already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return ErrDuplicateNodeID
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// EnsureNode adds the node unless it already exists.
func (g *Graph) EnsureNode(id string) error {
	if g.HasNode(id) {
		return nil
	}
	return g.AddNode(id)
}

// AddEdge adds a directed edge between two existing nodes.
// Parallel edges are kept.
func (g *Graph) AddEdge(from, to string) error {
	if !g.HasNode(from) {
		return ErrUnknownSourceNode
	}
	if !g.HasNode(to) {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// RemoveEdge removes every edge from→to. Missing edges are ignored.
func (g *Graph) RemoveEdge(from, to string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Sources returns nodes without incoming edges, in insertion order.
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Validate returns ErrGraphHasCycle if the graph contains a directed cycle.
// Runs in O(N+E).
func (g *Graph) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
