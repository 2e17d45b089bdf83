// Package store persists accounts and transactions imported from statements.
//
// [Repository] is the single storage interface the statement parser and the
// report commands depend on. Two implementations are provided:
//
//   - [MemoryStore] keeps everything in process, for one-off reports
//     straight from CSV files.
//   - [MongoStore] persists to MongoDB, scoping every document by owner so
//     several people can share one database.
//
// Lookups that can match several accounts return the first one created.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/timohermans/rabo-overview/pkg/ledger"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

var (
	// ErrDuplicateCode is returned by CreateTransaction when a transaction
	// with the same code already exists for the owner.
	ErrDuplicateCode = errors.New("duplicate transaction code")

	// ErrAccountNotStored is returned when an operation needs an account
	// that was not created through the same repository.
	ErrAccountNotStored = errors.New("account not stored")
)

// Repository stores accounts and transactions of one owner.
type Repository interface {
	// TransactionExists reports whether a transaction with code is stored.
	TransactionExists(ctx context.Context, code string) (bool, error)

	// FindAccountByNumber returns the first account with the given number.
	FindAccountByNumber(ctx context.Context, number string) (*ledger.Account, bool, error)

	// FindAccountByNumberOrName looks an account up by number, or by name
	// when number is empty.
	FindAccountByNumberOrName(ctx context.Context, number, name string) (*ledger.Account, bool, error)

	// MarkAsOwner flags account as belonging to the owner. The change is
	// applied to account itself as well as to storage.
	MarkAsOwner(ctx context.Context, account *ledger.Account) error

	// CreateAccount stores account and assigns its ID.
	CreateAccount(ctx context.Context, account *ledger.Account) error

	// CreateTransaction stores tx and assigns its ID. Its Receiver and
	// OtherParty must have been created through this repository.
	CreateTransaction(ctx context.Context, tx *ledger.Transaction) error

	// ListAccounts returns all accounts in creation order.
	ListAccounts(ctx context.Context) ([]*ledger.Account, error)

	// ListTransactions returns the transactions dated within [start, end],
	// ordered by date and then creation. Zero bounds are open.
	ListTransactions(ctx context.Context, start, end time.Time) ([]*ledger.Transaction, error)

	// Close releases the repository's resources.
	Close(ctx context.Context) error
}
