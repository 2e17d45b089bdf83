package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single statement row.
type Transaction struct {
	ID         string          `json:"id,omitempty"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Code       string          `json:"code"`
	Currency   string          `json:"currency"`
	Memo       string          `json:"memo"`
	Receiver   *Account        `json:"receiver"`
	OtherParty *Account        `json:"other_party"`
}

// IsExpense reports whether money left the receiver.
func (t *Transaction) IsExpense() bool { return t.Amount.IsNegative() }

// IsIncome reports whether money entered the receiver.
func (t *Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// IsInternal reports whether the counterparty is also owned by the user.
func (t *Transaction) IsInternal() bool {
	return t.OtherParty != nil && t.OtherParty.IsUserOwner
}

// TopExpenses returns the largest outgoing transactions to parties the user
// does not own, largest first. A negative limit returns all of them.
func TopExpenses(txs []*Transaction, limit int) []*Transaction {
	sorted := sortedByAmount(txs, func(a, b *Transaction) int { return a.Amount.Cmp(b.Amount) })
	return takeExternal(sorted, limit)
}

// TopIncomes returns the largest incoming transactions from parties the user
// does not own, largest first. A negative limit returns all of them.
func TopIncomes(txs []*Transaction, limit int) []*Transaction {
	sorted := sortedByAmount(txs, func(a, b *Transaction) int { return b.Amount.Cmp(a.Amount) })
	return takeExternal(sorted, limit)
}

func sortedByAmount(txs []*Transaction, cmpFn func(a, b *Transaction) int) []*Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, cmpFn)
	return sorted
}

func takeExternal(txs []*Transaction, limit int) []*Transaction {
	out := make([]*Transaction, 0, max(limit, 0))
	for _, t := range txs {
		if limit >= 0 && len(out) == limit {
			break
		}
		if !t.IsInternal() {
			out = append(out, t)
		}
	}
	return out
}

// SortByDate orders transactions by date, keeping input order for equal dates.
func SortByDate(txs []*Transaction) {
	slices.SortStableFunc(txs, func(a, b *Transaction) int {
		return cmp.Compare(a.Date.Unix(), b.Date.Unix())
	})
}
