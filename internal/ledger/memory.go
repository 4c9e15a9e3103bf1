package ledger

import (
	"context"
	"sync"
	"time"

	"collectrent/internal/domain"

	"github.com/google/uuid"
)

// MemoryBank is the in-process Gateway used by the memory store backend
// and by tests. All methods are safe for concurrent use.
type MemoryBank struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*domain.Account
	transactions []domain.Transaction
	nextID       int64
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{
		accounts: make(map[uuid.UUID]*domain.Account),
		nextID:   1,
	}
}

func (b *MemoryBank) CreateAccount(ctx context.Context, email string) (*domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account := &domain.Account{
		ID:        uuid.New(),
		Email:     email,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
	b.accounts[account.ID] = account
	copied := *account
	return &copied, nil
}

func (b *MemoryBank) Account(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (b *MemoryBank) Deposit(ctx context.Context, id uuid.UUID, amount domain.Balance, tick domain.Tick) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance += amount
	b.record(uuid.Nil, id, amount, tick, MemoDeposit)
	return nil
}

func (b *MemoryBank) Transfer(ctx context.Context, from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	source, ok := b.accounts[from]
	if !ok {
		return domain.ErrAccountNotFound
	}
	dest, ok := b.accounts[to]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if source.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	source.Balance -= amount
	dest.Balance += amount
	b.record(from, to, amount, tick, memo)
	return nil
}

func (b *MemoryBank) ListTransactions(ctx context.Context, account uuid.UUID) ([]domain.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var txs []domain.Transaction
	for _, tx := range b.transactions {
		if tx.From == account || tx.To == account {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (b *MemoryBank) record(from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) {
	b.transactions = append(b.transactions, domain.Transaction{
		ID:        b.nextID,
		From:      from,
		To:        to,
		Amount:    amount,
		Tick:      tick,
		Memo:      memo,
		CreatedAt: time.Now().UTC(),
	})
	b.nextID++
}
