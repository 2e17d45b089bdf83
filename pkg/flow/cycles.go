package flow

import (
	"github.com/timohermans/rabo-overview/pkg/digraph"
)

// SuppressCycles removes links that close a cycle in the flow graph.
//
// For every elementary cycle, each link whose endpoints both lie on the
// cycle and whose target is external is marked. Marked links are removed
// once, however many cycles they belong to. kept preserves input order;
// removed lists the dropped links in input order.
func SuppressCycles(links []Link) (kept, removed []Link) {
	g := linkGraph(links)
	cycles := g.SimpleCycles()
	if len(cycles) == 0 {
		return links, nil
	}

	marked := make([]bool, len(links))
	for _, cycle := range cycles {
		members := make(map[string]bool, len(cycle))
		for _, id := range cycle {
			members[id] = true
		}
		for i, l := range links {
			if l.IsTargetExternal && members[l.Source] && members[l.Target] {
				marked[i] = true
			}
		}
	}

	for i, l := range links {
		if marked[i] {
			removed = append(removed, l)
		} else {
			kept = append(kept, l)
		}
	}
	return kept, removed
}

// HasCycle reports whether links still form a directed cycle.
func HasCycle(links []Link) bool {
	return linkGraph(links).Validate() != nil
}

// BreakRemainingCycles drops depth-first back edges until links are
// acyclic, for renderers that cannot draw cycles at all. It returns the
// links left and the links dropped.
func BreakRemainingCycles(links []Link) (kept, removed []Link) {
	g := linkGraph(links)
	back := g.BreakCycles()
	if len(back) == 0 {
		return links, nil
	}
	drop := make(map[digraph.Edge]bool, len(back))
	for _, e := range back {
		drop[e] = true
	}
	for _, l := range links {
		if drop[digraph.Edge{From: l.Source, To: l.Target}] {
			removed = append(removed, l)
		} else {
			kept = append(kept, l)
		}
	}
	return kept, removed
}

func linkGraph(links []Link) *digraph.Graph {
	g := digraph.New()
	for _, l := range links {
		if l.Source == "" || l.Target == "" {
			continue
		}
		_ = g.EnsureNode(l.Source)
		_ = g.EnsureNode(l.Target)
		_ = g.AddEdge(l.Source, l.Target)
	}
	return g
}
