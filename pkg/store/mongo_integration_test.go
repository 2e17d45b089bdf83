//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// Run with: MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/store/...
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoOptions{
		URI:      uri,
		Database: "rabo_test",
		Owner:    "test-" + uuid.New().String(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.accounts.DeleteMany(context.Background(), map[string]string{"user": s.owner})
		_, _ = s.transactions.DeleteMany(context.Background(), map[string]string{"user": s.owner})
		_ = s.Close(context.Background())
	})
	return s
}

func TestMongoStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestMongoStore(t)
	own, hema := seed(t, s)

	tx := &ledger.Transaction{
		Date:       day("2019-09-01"),
		Amount:     decimal.RequireFromString("-41.20"),
		Code:       "NL11RABO0104955555000000000000007213",
		Currency:   "EUR",
		Memo:       "Spotify12",
		Receiver:   own,
		OtherParty: hema,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))
	assert.ErrorIs(t, s.CreateTransaction(ctx, tx), ErrDuplicateCode)

	exists, err := s.TransactionExists(ctx, tx.Code)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.MarkAsOwner(ctx, hema))

	txs, err := s.ListTransactions(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	got := txs[0]
	assert.True(t, got.Amount.Equal(tx.Amount))
	assert.Equal(t, "Spotify12", got.Memo)
	assert.Equal(t, own.AccountNumber, got.Receiver.AccountNumber)
	assert.True(t, got.OtherParty.IsUserOwner)
}

func TestMongoStore_FirstMatchByName(t *testing.T) {
	ctx := context.Background()
	s := newTestMongoStore(t)
	first := &ledger.Account{Name: "Lukoil TANKAUTOMAAT"}
	second := &ledger.Account{Name: "Lukoil TANKAUTOMAAT"}
	require.NoError(t, s.CreateAccount(ctx, first))
	require.NoError(t, s.CreateAccount(ctx, second))

	found, ok, err := s.FindAccountByNumberOrName(ctx, "", "Lukoil TANKAUTOMAAT")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)
}
