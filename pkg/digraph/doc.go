// Package digraph provides a small directed graph keyed by string node IDs.
//
// # Overview
//
// Money-flow graphs are not acyclic in general: two owned accounts can pay
// each other, and a payment request can send money around a loop. This
// package holds such graphs and answers the questions the flow builder asks
// of them: whether a node exists, whether the graph has a cycle, what its
// elementary circuits are and which edges break them.
//
// # Basic Usage
//
//	g := digraph.New()
//	g.AddNode("a")
//	g.AddNode("b")
//	g.AddEdge("a", "b")
//	g.AddEdge("b", "a")
//
//	for _, cycle := range g.SimpleCycles() {
//	    fmt.Println(cycle) // [a b]
//	}
//
// # Cycles
//
// [Graph.Validate] reports [ErrGraphHasCycle] using a white/gray/black
// depth-first search. [Graph.SimpleCycles] enumerates every elementary
// circuit, each exactly once, using Johnson's algorithm restricted to the
// strongly connected component of the current start node. Self-loops are
// circuits of length one. Output order is deterministic: circuits are
// grouped by their least node in insertion order.
//
// A Graph is not safe for concurrent use without external synchronization.
package digraph
