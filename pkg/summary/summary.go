// Package summary computes the overview shown for a set of transactions:
// the period covered, the owner's accounts, money in and out, and the flow
// graph.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timohermans/rabo-overview/pkg/flow"
	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// Summary aggregates a list of transactions. The zero value describes an
// empty list.
type Summary struct {
	DateFirst          time.Time         `json:"date_first"`
	DateLast           time.Time         `json:"date_last"`
	Receivers          []*ledger.Account `json:"receivers"`
	AmountOfReceivers  int               `json:"amount_of_receivers"`
	ExpensesToOutside  decimal.Decimal   `json:"expenses_to_outside"`
	IncomesFromOutside decimal.Decimal   `json:"incomes_from_outside"`
	TotalBalance       decimal.Decimal   `json:"total_balance"`
	FlowGraph          flow.Graph        `json:"flow_graph"`

	// SuppressedLinks are the links removed from FlowGraph to break cycles.
	SuppressedLinks []flow.Link `json:"suppressed_links,omitempty"`

	transactions []*ledger.Transaction
}

// New summarizes txs. An empty list yields zero totals and an empty graph.
func New(txs []*ledger.Transaction) *Summary {
	return NewWithFlow(txs, flow.BuildWithReport(txs))
}

// NewWithFlow summarizes txs using a flow graph that was already built from
// them, for callers that cache graphs.
func NewWithFlow(txs []*ledger.Transaction, result flow.Result) *Summary {
	s := &Summary{
		Receivers:    []*ledger.Account{},
		FlowGraph:    flow.Assemble(nil, nil),
		transactions: txs,
	}
	if len(txs) == 0 {
		return s
	}

	s.DateFirst, s.DateLast = txs[0].Date, txs[0].Date
	var receivers []*ledger.Account
	for _, t := range txs {
		if t.Date.Before(s.DateFirst) {
			s.DateFirst = t.Date
		}
		if t.Date.After(s.DateLast) {
			s.DateLast = t.Date
		}
		receivers = append(receivers, t.Receiver)

		if t.IsInternal() {
			continue
		}
		switch {
		case t.IsExpense():
			s.ExpensesToOutside = s.ExpensesToOutside.Add(t.Amount)
		case t.IsIncome():
			s.IncomesFromOutside = s.IncomesFromOutside.Add(t.Amount)
		}
	}
	s.Receivers = ledger.DistinctAccounts(receivers)
	s.AmountOfReceivers = len(s.Receivers)
	s.TotalBalance = s.IncomesFromOutside.Add(s.ExpensesToOutside)

	s.FlowGraph = flow.Assemble(result.Graph.Nodes, result.Graph.Links)
	s.SuppressedLinks = result.Removed
	return s
}

// Empty reports whether the summary covers no transactions.
func (s *Summary) Empty() bool { return len(s.transactions) == 0 }

// Transactions returns the summarized transactions.
func (s *Summary) Transactions() []*ledger.Transaction { return s.transactions }

// TopExpenses returns the n largest expenses to parties outside the owner's
// accounts.
func (s *Summary) TopExpenses(n int) []*ledger.Transaction {
	return ledger.TopExpenses(s.transactions, n)
}

// TopIncomes returns the n largest incomes from parties outside the owner's
// accounts.
func (s *Summary) TopIncomes(n int) []*ledger.Transaction {
	return ledger.TopIncomes(s.transactions, n)
}
