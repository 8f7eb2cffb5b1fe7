package conditional

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage implements Storage on a conditional_payments table.
//
// Schema:
//
//	CREATE TABLE conditional_payments (
//	    id                   BIGSERIAL PRIMARY KEY,
//	    recipient            TEXT NOT NULL,
//	    token                TEXT NOT NULL,
//	    amount               BIGINT NOT NULL CHECK (amount > 0),
//	    condition_commitment TEXT NOT NULL,
//	    executed             BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed conditional payment storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, cp *ConditionalPayment) error {
	query := `
		INSERT INTO conditional_payments (recipient, token, amount, condition_commitment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		cp.Recipient,
		cp.Token,
		cp.Amount,
		cp.ConditionCommitment,
		cp.CreatedAt,
	).Scan(&cp.ID)
	if err != nil {
		return fmt.Errorf("failed to create conditional payment: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*ConditionalPayment, error) {
	query := `
		SELECT id, recipient, token, amount, condition_commitment, executed, created_at
		FROM conditional_payments
		WHERE id = $1
	`

	cp := &ConditionalPayment{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&cp.ID,
		&cp.Recipient,
		&cp.Token,
		&cp.Amount,
		&cp.ConditionCommitment,
		&cp.Executed,
		&cp.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conditional payment: %w", err)
	}
	return cp, nil
}

func (s *PostgresStorage) MarkExecuted(ctx context.Context, id int64) error {
	query := `UPDATE conditional_payments SET executed = TRUE WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark conditional payment executed: %w", err)
	}
	return nil
}
