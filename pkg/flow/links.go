package flow

import (
	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// IsInternalExpense reports whether t is the paying side of a transfer
// between two owned accounts. Its receiving side carries the same money, so
// the expense is left out of the graph.
func IsInternalExpense(t *ledger.Transaction) bool {
	return t.OtherParty != nil && t.OtherParty.IsUserOwner && t.Amount.IsNegative()
}

// AggregateLinks folds txs into at most one link per pair of parties.
//
// Incoming money (positive amount) flows from the other party to the
// receiver; everything else flows from the receiver to the other party and
// is marked as external. Amounts between the same two parties are netted in
// input order; a link whose net value turns negative is reversed.
func AggregateLinks(txs []*ledger.Transaction, nodes []Node) []Link {
	var links []Link
	for _, t := range txs {
		if t.Receiver == nil || t.OtherParty == nil || IsInternalExpense(t) {
			continue
		}
		receiver := ResolveName(t.Receiver, nodes)
		other := ResolveName(t.OtherParty, nodes)

		link := Link{
			Source:           receiver,
			Target:           other,
			Value:            t.Amount.Abs(),
			IsTargetExternal: true,
		}
		if t.Amount.IsPositive() {
			link.Source, link.Target = other, receiver
			link.IsTargetExternal = false
		}
		links = merge(links, link)
	}
	return links
}

// merge adds link into links, netting it against an existing link between
// the same two parties if there is one.
func merge(links []Link, link Link) []Link {
	for i := range links {
		existing := &links[i]
		switch {
		case existing.Source == link.Source && existing.Target == link.Target:
			existing.Value = existing.Value.Add(link.Value)
		case existing.Source == link.Target && existing.Target == link.Source:
			existing.Value = existing.Value.Sub(link.Value)
		default:
			continue
		}
		if existing.Value.IsNegative() {
			existing.reverse()
			existing.Value = existing.Value.Abs()
		}
		return links
	}
	return append(links, link)
}
