package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a party in the bank behind the ledger gateway. Email is
// optional and only used for rental notifications.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email,omitempty"`
	Balance   Balance   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is one completed transfer between two accounts.
type Transaction struct {
	ID        int64     `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Amount    Balance   `json:"amount"`
	Tick      Tick      `json:"tick"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
}
