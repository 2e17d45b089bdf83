package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func seed(t *testing.T, s Repository) (own, hema *ledger.Account) {
	t.Helper()
	ctx := context.Background()
	own = &ledger.Account{Name: "Own account", AccountNumber: "NL11RABO0104955555", IsUserOwner: true}
	hema = &ledger.Account{Name: "Hema", AccountNumber: "NL30ABNA0000000001"}
	require.NoError(t, s.CreateAccount(ctx, own))
	require.NoError(t, s.CreateAccount(ctx, hema))
	return own, hema
}

func TestMemoryStore_CreateAccountAssignsID(t *testing.T) {
	s := NewMemoryStore()
	own, hema := seed(t, s)

	assert.NotEmpty(t, own.ID)
	assert.NotEqual(t, own.ID, hema.ID)

	accounts, err := s.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*ledger.Account{own, hema}, accounts)
}

func TestMemoryStore_FindAccountByNumber(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	own, _ := seed(t, s)

	found, ok, err := s.FindAccountByNumber(ctx, "NL11RABO0104955555")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, own, found)

	_, ok, err = s.FindAccountByNumber(ctx, "NL99UNKNOWN")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_FindAccountByNumberOrName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	first := &ledger.Account{Name: "Lukoil TANKAUTOMAAT"}
	second := &ledger.Account{Name: "Lukoil TANKAUTOMAAT"}
	numbered := &ledger.Account{Name: "Beter Bed", AccountNumber: "NL10INGB0001"}
	for _, a := range []*ledger.Account{first, second, numbered} {
		require.NoError(t, s.CreateAccount(ctx, a))
	}

	found, ok, err := s.FindAccountByNumberOrName(ctx, "", "Lukoil TANKAUTOMAAT")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, first, found, "first match in creation order wins")

	found, ok, err = s.FindAccountByNumberOrName(ctx, "NL10INGB0001", "Other name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, numbered, found, "number takes precedence over name")

	_, ok, err = s.FindAccountByNumberOrName(ctx, "NL10INGB9999", "Beter Bed")
	require.NoError(t, err)
	assert.False(t, ok, "name is not consulted when a number is given")
}

func TestMemoryStore_MarkAsOwner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	own, hema := seed(t, s)
	tx := &ledger.Transaction{Code: "1", Receiver: own, OtherParty: hema, Amount: decimal.NewFromInt(-1)}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	require.NoError(t, s.MarkAsOwner(ctx, hema))

	assert.True(t, hema.IsUserOwner)
	assert.True(t, tx.OtherParty.IsUserOwner, "transactions see the change")
	assert.ErrorIs(t, s.MarkAsOwner(ctx, &ledger.Account{Name: "stranger"}), ErrAccountNotStored)
}

func TestMemoryStore_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	own, hema := seed(t, s)

	tx := &ledger.Transaction{Code: "NL11RABO01000001", Receiver: own, OtherParty: hema, Amount: decimal.NewFromInt(-5)}
	require.NoError(t, s.CreateTransaction(ctx, tx))
	assert.NotEmpty(t, tx.ID)

	exists, err := s.TransactionExists(ctx, "NL11RABO01000001")
	require.NoError(t, err)
	assert.True(t, exists)

	dup := &ledger.Transaction{Code: "NL11RABO01000001", Receiver: own, OtherParty: hema}
	assert.ErrorIs(t, s.CreateTransaction(ctx, dup), ErrDuplicateCode)

	orphan := &ledger.Transaction{Code: "2", Receiver: own, OtherParty: &ledger.Account{Name: "x"}}
	assert.ErrorIs(t, s.CreateTransaction(ctx, orphan), ErrAccountNotStored)
}

func TestMemoryStore_ListTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	own, hema := seed(t, s)
	for _, tx := range []*ledger.Transaction{
		{Code: "c", Date: day("2019-10-01"), Receiver: own, OtherParty: hema},
		{Code: "a", Date: day("2019-09-15"), Receiver: own, OtherParty: hema},
		{Code: "b", Date: day("2019-09-15"), Receiver: own, OtherParty: hema},
		{Code: "z", Date: day("2019-08-31"), Receiver: own, OtherParty: hema},
	} {
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	all, err := s.ListTransactions(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b", "c"}, txCodes(all))

	start, end := ledger.MonthRange(day("2019-09-01"))
	september, err := s.ListTransactions(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, txCodes(september))
}

func txCodes(txs []*ledger.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.Code
	}
	return out
}
