package flow

import (
	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// Result is a built graph together with the links cycle suppression dropped.
type Result struct {
	Graph   Graph
	Removed []Link
}

// Build derives the flow graph for txs.
func Build(txs []*ledger.Transaction) Graph {
	return BuildWithReport(txs).Graph
}

// BuildWithReport is Build, additionally reporting the links removed by
// [SuppressCycles].
func BuildWithReport(txs []*ledger.Transaction) Result {
	nodes := BuildNodes(txs)
	links := AggregateLinks(txs, nodes)
	kept, removed := SuppressCycles(links)
	return Result{
		Graph:   Assemble(nodes, kept),
		Removed: removed,
	}
}
