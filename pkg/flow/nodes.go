package flow

import (
	"slices"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// ResolveName returns the node name for account: its qualified label when
// nodes contain it, otherwise the bare account name.
func ResolveName(account *ledger.Account, nodes []Node) string {
	label := account.Label()
	for _, n := range nodes {
		if n.Name == label {
			return label
		}
	}
	return account.Name
}

// BuildNodes returns one node per party in txs, sorted by name.
//
// Accounts are grouped by name. A name shared by more than one distinct
// account yields a node per account, labelled "Name (AccountNumber)";
// otherwise the bare name is used.
func BuildNodes(txs []*ledger.Transaction) []Node {
	var names []string
	groups := make(map[string][]*ledger.Account)
	add := func(a *ledger.Account) {
		if a == nil {
			return
		}
		group, ok := groups[a.Name]
		if !ok {
			names = append(names, a.Name)
		}
		if !slices.ContainsFunc(group, a.Equal) {
			groups[a.Name] = append(group, a)
		}
	}
	for _, t := range txs {
		add(t.Receiver)
		add(t.OtherParty)
	}

	seen := make(map[string]bool)
	var labels []string
	for _, name := range names {
		group := groups[name]
		if len(group) == 1 {
			labels = appendUnique(labels, seen, name)
			continue
		}
		for _, a := range group {
			labels = appendUnique(labels, seen, a.Label())
		}
	}
	slices.Sort(labels)

	nodes := make([]Node, len(labels))
	for i, l := range labels {
		nodes[i] = Node{Name: l}
	}
	return nodes
}

func appendUnique(labels []string, seen map[string]bool, label string) []string {
	if seen[label] {
		return labels
	}
	seen[label] = true
	return append(labels, label)
}
