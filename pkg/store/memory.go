package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

// MemoryStore is an in-process Repository. Returned accounts and
// transactions are the stored values themselves, so a MarkAsOwner is seen
// by every transaction referencing the account.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     []*ledger.Account
	transactions []*ledger.Transaction
	codes        map[string]bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]bool)}
}

// TransactionExists implements Repository.
func (s *MemoryStore) TransactionExists(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.codes[code], nil
}

// FindAccountByNumber implements Repository.
func (s *MemoryStore) FindAccountByNumber(ctx context.Context, number string) (*ledger.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(func(a *ledger.Account) bool { return a.AccountNumber == number })
}

// FindAccountByNumberOrName implements Repository.
func (s *MemoryStore) FindAccountByNumberOrName(ctx context.Context, number, name string) (*ledger.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if number == "" {
		return s.find(func(a *ledger.Account) bool { return a.Name == name })
	}
	return s.find(func(a *ledger.Account) bool { return a.AccountNumber == number })
}

func (s *MemoryStore) find(match func(*ledger.Account) bool) (*ledger.Account, bool, error) {
	i := slices.IndexFunc(s.accounts, match)
	if i < 0 {
		return nil, false, nil
	}
	return s.accounts[i], true, nil
}

// MarkAsOwner implements Repository.
func (s *MemoryStore) MarkAsOwner(ctx context.Context, account *ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.accounts, account) {
		return ErrAccountNotStored
	}
	account.IsUserOwner = true
	return nil
}

// CreateAccount implements Repository.
func (s *MemoryStore) CreateAccount(ctx context.Context, account *ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = uuid.New().String()
	s.accounts = append(s.accounts, account)
	return nil
}

// CreateTransaction implements Repository.
func (s *MemoryStore) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codes[tx.Code] {
		return ErrDuplicateCode
	}
	if !slices.Contains(s.accounts, tx.Receiver) || !slices.Contains(s.accounts, tx.OtherParty) {
		return ErrAccountNotStored
	}
	tx.ID = uuid.New().String()
	s.transactions = append(s.transactions, tx)
	s.codes[tx.Code] = true
	return nil
}

// ListAccounts implements Repository.
func (s *MemoryStore) ListAccounts(ctx context.Context) ([]*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts), nil
}

// ListTransactions implements Repository.
func (s *MemoryStore) ListTransactions(ctx context.Context, start, end time.Time) ([]*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := ledger.Between(s.transactions, start, end)
	ledger.SortByDate(txs)
	return txs, nil
}

// Close implements Repository.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Repository.
var _ Repository = (*MemoryStore)(nil)
