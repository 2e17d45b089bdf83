package flow

import (
	"github.com/shopspring/decimal"
)

// Node is a party in the flow graph, addressed by its display name.
type Node struct {
	Name string `json:"name"`
}

// Link is the net amount of money that moved from Source to Target.
// IsTargetExternal is true when the money left the statement owner's side.
type Link struct {
	Source           string          `json:"source"`
	Target           string          `json:"target"`
	Value            decimal.Decimal `json:"value"`
	IsTargetExternal bool            `json:"is_target_external"`
}

// reverse swaps the link direction and flips the external flag.
func (l *Link) reverse() {
	l.Source, l.Target = l.Target, l.Source
	l.IsTargetExternal = !l.IsTargetExternal
}

// Graph is the flow graph handed to renderers.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// Assemble combines nodes and links into a graph. Nil slices become empty
// slices so the graph encodes as {"nodes": [], "links": []}.
func Assemble(nodes []Node, links []Link) Graph {
	if nodes == nil {
		nodes = []Node{}
	}
	if links == nil {
		links = []Link{}
	}
	return Graph{Nodes: nodes, Links: links}
}
