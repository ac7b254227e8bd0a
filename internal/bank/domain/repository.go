package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountRepository is the port onto account storage. Implementations honor
// a transaction carried in the context by TxManager.
type AccountRepository interface {
	// FindByNumber looks up an account by its public account number.
	FindByNumber(ctx context.Context, accountNumber string) (*Account, error)

	// FindByUser looks up a user's account; ErrAccountNotFound when the user
	// has none.
	FindByUser(ctx context.Context, userID int64) (*Account, error)

	// Create inserts a freshly provisioned account.
	Create(ctx context.Context, account *Account) error

	// AddToBalance applies a signed delta to the account's balance, guarded
	// by the version read earlier. Returns ErrBalanceConflict when the
	// version no longer matches.
	AddToBalance(ctx context.Context, accountID int64, delta decimal.Decimal, version int64) error
}

// PostingRepository is the append-only ledger port.
type PostingRepository interface {
	// Create appends one posting.
	Create(ctx context.Context, posting *Posting) error

	// ListBySourceAccounts returns postings whose source is one of the given
	// accounts, newest first, with destination accounts resolved.
	ListBySourceAccounts(ctx context.Context, accountIDs []int64) ([]Posting, error)
}

// UserRepository reads and updates account owners.
type UserRepository interface {
	// FindByID returns the user or ErrOwnerNotFound.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail returns the user or ErrOwnerNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile changes and the provisioning flag.
	Update(ctx context.Context, user *User) error
}

// TxManager runs fn inside one storage transaction: every repository call
// made with the ctx passed to fn commits or rolls back as a unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
