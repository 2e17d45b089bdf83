package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

func tx(day string, receiver, other *ledger.Account, amount string) *ledger.Transaction {
	d, _ := time.Parse(time.DateOnly, day)
	return &ledger.Transaction{
		Date:       d,
		Amount:     decimal.RequireFromString(amount),
		Receiver:   receiver,
		OtherParty: other,
	}
}

func TestNew(t *testing.T) {
	checking := &ledger.Account{Name: "Betaalrekening", AccountNumber: "NL11RABO01", IsUserOwner: true}
	savings := &ledger.Account{Name: "Spaarrekening", AccountNumber: "NL11RABO02", IsUserOwner: true}
	hema := &ledger.Account{Name: "Hema", AccountNumber: "NL30ABNA01"}
	work := &ledger.Account{Name: "Kabisa", AccountNumber: "NL20ABNA01"}
	txs := []*ledger.Transaction{
		tx("2019-09-10", checking, hema, "-100"),
		tx("2019-09-01", checking, work, "2500"),
		tx("2019-09-25", checking, savings, "-300"),
		tx("2019-09-25", savings, checking, "300"),
		tx("2019-09-30", checking, hema, "-20.50"),
	}

	s := New(txs)

	if s.Empty() {
		t.Fatal("Empty() = true, want false")
	}
	if got := s.DateFirst.Format(time.DateOnly); got != "2019-09-01" {
		t.Errorf("DateFirst = %s, want 2019-09-01", got)
	}
	if got := s.DateLast.Format(time.DateOnly); got != "2019-09-30" {
		t.Errorf("DateLast = %s, want 2019-09-30", got)
	}
	if s.AmountOfReceivers != 2 {
		t.Errorf("AmountOfReceivers = %d, want 2", s.AmountOfReceivers)
	}
	if s.Receivers[0] != checking || s.Receivers[1] != savings {
		t.Error("Receivers should be listed in first-seen order")
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"ExpensesToOutside", s.ExpensesToOutside, "-120.50"},
		{"IncomesFromOutside", s.IncomesFromOutside, "2500"},
		{"TotalBalance", s.TotalBalance, "2379.50"},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	if len(s.FlowGraph.Nodes) != 4 {
		t.Errorf("FlowGraph has %d nodes, want 4", len(s.FlowGraph.Nodes))
	}
	if len(s.FlowGraph.Links) != 3 {
		t.Errorf("FlowGraph has %d links, want 3", len(s.FlowGraph.Links))
	}
}

func TestNew_Empty(t *testing.T) {
	s := New(nil)

	if !s.Empty() {
		t.Error("Empty() = false, want true")
	}
	if !s.DateFirst.IsZero() || !s.DateLast.IsZero() {
		t.Error("dates should be zero for an empty summary")
	}
	if !s.TotalBalance.IsZero() || !s.ExpensesToOutside.IsZero() || !s.IncomesFromOutside.IsZero() {
		t.Error("totals should be zero for an empty summary")
	}
	if s.AmountOfReceivers != 0 || s.Receivers == nil {
		t.Error("receivers should be an empty, non-nil list")
	}
	if s.FlowGraph.Nodes == nil || s.FlowGraph.Links == nil {
		t.Error("flow graph should hold empty, non-nil slices")
	}
}

func TestNew_FlowGraph(t *testing.T) {
	shopping := &ledger.Account{Name: "Hema", AccountNumber: "NL30ABNA01"}
	checking := &ledger.Account{Name: "Betaalrekening", AccountNumber: "NL11RABO01", IsUserOwner: true}
	txs := []*ledger.Transaction{
		tx("2019-09-01", checking, shopping, "-100"),
		tx("2019-09-02", checking, shopping, "250"),
	}

	s := New(txs)

	if len(s.FlowGraph.Links) != 1 {
		t.Fatalf("FlowGraph has %d links, want 1", len(s.FlowGraph.Links))
	}
	l := s.FlowGraph.Links[0]
	if l.Source != "Hema" || l.Target != "Betaalrekening" || !l.Value.Equal(decimal.NewFromInt(150)) {
		t.Errorf("link = %s -> %s %s, want Hema -> Betaalrekening 150", l.Source, l.Target, l.Value)
	}
}

func TestTopTransactions(t *testing.T) {
	own := &ledger.Account{Name: "Own account", AccountNumber: "NL11RABO01", IsUserOwner: true}
	hema := &ledger.Account{Name: "Hema", AccountNumber: "NL30ABNA01"}
	txs := []*ledger.Transaction{
		tx("2019-09-01", own, hema, "-5"),
		tx("2019-09-02", own, hema, "-50"),
		tx("2019-09-03", own, hema, "75"),
	}

	s := New(txs)

	if got := s.TopExpenses(1); len(got) != 1 || !got[0].Amount.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("TopExpenses(1) = %v, want the -50 transaction", got)
	}
	if got := s.TopIncomes(1); len(got) != 1 || !got[0].Amount.Equal(decimal.NewFromInt(75)) {
		t.Errorf("TopIncomes(1) = %v, want the 75 transaction", got)
	}
}
