package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStorage implements Storage on three tables.
//
// Schema:
//
//	CREATE TABLE payments (
//	    id                  BIGSERIAL PRIMARY KEY,
//	    recipient           TEXT NOT NULL,
//	    token               TEXT NOT NULL,
//	    amount              BIGINT NOT NULL CHECK (amount > 0),
//	    interval_seconds    BIGINT NOT NULL DEFAULT 0,
//	    next_execution_time TIMESTAMPTZ NOT NULL,
//	    description         TEXT NOT NULL DEFAULT '',
//	    active              BOOLEAN NOT NULL DEFAULT TRUE,
//	    requires_approval   BOOLEAN NOT NULL,
//	    approval_deadline   TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
//	    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
//
//	CREATE TABLE payment_approvals (
//	    payment_id BIGINT NOT NULL REFERENCES payments(id),
//	    approver   TEXT NOT NULL,
//	    PRIMARY KEY (payment_id, approver)
//	)
//
//	CREATE TABLE approval_config (
//	    id                 INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
//	    approvers          TEXT[] NOT NULL,
//	    required_approvals INT NOT NULL,
//	    approval_threshold BIGINT NOT NULL,
//	    timelock_seconds   BIGINT NOT NULL,
//	    version            BIGINT NOT NULL
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed payment storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const paymentColumns = `id, recipient, token, amount, interval_seconds, next_execution_time, description, active, requires_approval, approval_deadline, created_at`

func (s *PostgresStorage) CreatePayment(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (recipient, token, amount, interval_seconds, next_execution_time, description, active, requires_approval, approval_deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Recipient,
		p.Token,
		p.Amount,
		p.IntervalSeconds,
		p.NextExecutionTime,
		p.Description,
		p.Active,
		p.RequiresApproval,
		p.ApprovalDeadline,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	p := &Payment{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Recipient,
		&p.Token,
		&p.Amount,
		&p.IntervalSeconds,
		&p.NextExecutionTime,
		&p.Description,
		&p.Active,
		&p.RequiresApproval,
		&p.ApprovalDeadline,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if err := s.loadApprovals(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStorage) loadApprovals(ctx context.Context, p *Payment) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT approver FROM payment_approvals WHERE payment_id = $1 ORDER BY approver`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load approvals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var approver string
		if err := rows.Scan(&approver); err != nil {
			return fmt.Errorf("failed to scan approval: %w", err)
		}
		p.ApprovedBy = append(p.ApprovedBy, approver)
	}
	return nil
}

func (s *PostgresStorage) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(
			&p.ID,
			&p.Recipient,
			&p.Token,
			&p.Amount,
			&p.IntervalSeconds,
			&p.NextExecutionTime,
			&p.Description,
			&p.Active,
			&p.RequiresApproval,
			&p.ApprovalDeadline,
			&p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	for _, p := range payments {
		if err := s.loadApprovals(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return payments, total, nil
}

func (s *PostgresStorage) UpdatePayment(ctx context.Context, p *Payment) error {
	query := `UPDATE payments SET active = $2, next_execution_time = $3 WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, p.ID, p.Active, p.NextExecutionTime); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (s *PostgresStorage) AddApproval(ctx context.Context, paymentID int64, approver string) error {
	query := `
		INSERT INTO payment_approvals (payment_id, approver)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, paymentID, approver); err != nil {
		return fmt.Errorf("failed to add approval: %w", err)
	}
	return nil
}

func (s *PostgresStorage) RemoveApproval(ctx context.Context, paymentID int64, approver string) error {
	query := `DELETE FROM payment_approvals WHERE payment_id = $1 AND approver = $2`

	if _, err := s.db.ExecContext(ctx, query, paymentID, approver); err != nil {
		return fmt.Errorf("failed to remove approval: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetConfig(ctx context.Context) (*Config, error) {
	query := `
		SELECT approvers, required_approvals, approval_threshold, timelock_seconds, version
		FROM approval_config
		WHERE id = 1
	`

	cfg := &Config{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		pq.Array(&cfg.Approvers),
		&cfg.RequiredApprovals,
		&cfg.ApprovalThreshold,
		&cfg.TimelockSeconds,
		&cfg.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg, nil
}

func (s *PostgresStorage) SetConfig(ctx context.Context, cfg *Config) error {
	query := `
		INSERT INTO approval_config (id, approvers, required_approvals, approval_threshold, timelock_seconds, version)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET approvers = EXCLUDED.approvers,
		              required_approvals = EXCLUDED.required_approvals,
		              approval_threshold = EXCLUDED.approval_threshold,
		              timelock_seconds = EXCLUDED.timelock_seconds,
		              version = EXCLUDED.version
	`

	_, err := s.db.ExecContext(ctx, query,
		pq.Array(cfg.Approvers),
		cfg.RequiredApprovals,
		cfg.ApprovalThreshold,
		cfg.TimelockSeconds,
		cfg.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to set config: %w", err)
	}
	return nil
}
