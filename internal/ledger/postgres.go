package ledger

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"time"

	"collectrent/internal/domain"

	"github.com/google/uuid"
)

// PostgresBank stores balances in the accounts table and records every
// movement in ledger_transactions. Transfers lock both account rows in
// ascending id order so concurrent transfers over the same pair cannot
// deadlock.
type PostgresBank struct {
	db *sql.DB
}

func NewPostgresBank(db *sql.DB) *PostgresBank {
	return &PostgresBank{db: db}
}

func (b *PostgresBank) CreateAccount(ctx context.Context, email string) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uuid.New(),
		Email:     email,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO accounts (id, email, balance, created_at) VALUES ($1, $2, $3, $4)`
	_, err := b.db.ExecContext(ctx, query, account.ID, account.Email, int64(account.Balance), account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (b *PostgresBank) Account(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var (
		account domain.Account
		balance int64
	)
	query := `SELECT id, email, balance, created_at FROM accounts WHERE id = $1`
	err := b.db.QueryRowContext(ctx, query, id).Scan(&account.ID, &account.Email, &balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	account.Balance = domain.Balance(balance)
	return &account, nil
}

func (b *PostgresBank) Deposit(ctx context.Context, id uuid.UUID, amount domain.Balance, tick domain.Tick) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, int64(amount), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	if err := insertTransaction(ctx, tx, uuid.NullUUID{}, id, amount, tick, MemoDeposit); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *PostgresBank) Transfer(ctx context.Context, from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balances := make(map[uuid.UUID]domain.Balance, 2)
	for _, id := range lockOrder(from, to) {
		var balance int64
		err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&balance)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrAccountNotFound
			}
			return err
		}
		balances[id] = domain.Balance(balance)
	}
	if balances[from] < amount {
		return domain.ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, int64(amount), from); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, int64(amount), to); err != nil {
		return err
	}
	if err := insertTransaction(ctx, tx, uuid.NullUUID{UUID: from, Valid: true}, to, amount, tick, memo); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *PostgresBank) ListTransactions(ctx context.Context, account uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT id, from_account, to_account, amount, tick, memo, created_at
	          FROM ledger_transactions WHERE from_account = $1 OR to_account = $1 ORDER BY id`
	rows, err := b.db.QueryContext(ctx, query, account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var (
			record domain.Transaction
			from   uuid.NullUUID
			amount int64
			tick   int64
		)
		if err := rows.Scan(&record.ID, &from, &record.To, &amount, &tick, &record.Memo, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.From = from.UUID
		record.Amount = domain.Balance(amount)
		record.Tick = domain.Tick(tick)
		txs = append(txs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, from uuid.NullUUID, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error {
	query := `INSERT INTO ledger_transactions (from_account, to_account, amount, tick, memo, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := tx.ExecContext(ctx, query, from, to, int64(amount), int64(tick), memo, time.Now().UTC())
	return err
}

func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if a == b {
		return []uuid.UUID{a}
	}
	if bytes.Compare(a[:], b[:]) > 0 {
		return []uuid.UUID{b, a}
	}
	return []uuid.UUID{a, b}
}
