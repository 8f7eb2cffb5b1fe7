package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage implements Storage on a balances table.
//
// Schema:
//
//	CREATE TABLE balances (
//	    account    TEXT NOT NULL,
//	    token      TEXT NOT NULL,
//	    amount     BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (account, token)
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed ledger storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Balance(ctx context.Context, account, token string) (int64, error) {
	query := `SELECT amount FROM balances WHERE account = $1 AND token = $2`

	var amount int64
	err := s.db.QueryRowContext(ctx, query, account, token).Scan(&amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return amount, nil
}

func (s *PostgresStorage) Credit(ctx context.Context, account, token string, amount int64) error {
	query := `
		INSERT INTO balances (account, token, amount, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (account, token)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount, updated_at = now()
	`

	if _, err := s.db.ExecContext(ctx, query, account, token, amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", account, err)
	}
	return nil
}

func (s *PostgresStorage) Debit(ctx context.Context, account, token string, amount int64) error {
	query := `
		UPDATE balances
		SET amount = amount - $3, updated_at = now()
		WHERE account = $1 AND token = $2 AND amount >= $3
	`

	res, err := s.db.ExecContext(ctx, query, account, token, amount)
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", account, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", account, err)
	}
	if affected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *PostgresStorage) Transfer(ctx context.Context, from, to, token string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback()

	debit := `
		UPDATE balances
		SET amount = amount - $3, updated_at = now()
		WHERE account = $1 AND token = $2 AND amount >= $3
	`
	res, err := tx.ExecContext(ctx, debit, from, token, amount)
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if affected == 0 {
		return ErrInsufficientFunds
	}

	credit := `
		INSERT INTO balances (account, token, amount, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (account, token)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount, updated_at = now()
	`
	if _, err := tx.ExecContext(ctx, credit, to, token, amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}
