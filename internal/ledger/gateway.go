// Package ledger holds the account balances that rent payments settle
// against. Balances are integer currency units; every movement is recorded
// as an immutable transaction row tagged with the tick it happened at.
package ledger

import (
	"context"

	"collectrent/internal/domain"

	"github.com/google/uuid"
)

// Gateway is the full banking surface. The rental engine only needs
// Transfer; the HTTP layer uses the rest for account management.
type Gateway interface {
	// CreateAccount opens a new account with a zero balance.
	CreateAccount(ctx context.Context, email string) (*domain.Account, error)

	// Account returns the current state of an account.
	Account(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// Deposit credits an account from outside the system. The recorded
	// transaction has a nil from-account.
	Deposit(ctx context.Context, id uuid.UUID, amount domain.Balance, tick domain.Tick) error

	// Transfer moves amount from one account to another atomically.
	// It returns domain.ErrInsufficientFunds when the source balance is
	// too low and domain.ErrAccountNotFound when either side is missing.
	Transfer(ctx context.Context, from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error

	// ListTransactions returns every transaction the account took part
	// in, oldest first.
	ListTransactions(ctx context.Context, account uuid.UUID) ([]domain.Transaction, error)
}

const (
	MemoDeposit = "deposit"
	MemoRent    = "rent"
)
