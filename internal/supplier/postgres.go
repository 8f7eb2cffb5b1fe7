package supplier

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage implements Storage on a suppliers table.
//
// Schema:
//
//	CREATE TABLE suppliers (
//	    address         TEXT PRIMARY KEY,
//	    name            TEXT NOT NULL DEFAULT '',
//	    preferred_token TEXT NOT NULL DEFAULT '',
//	    total_paid      BIGINT NOT NULL DEFAULT 0,
//	    payment_count   BIGINT NOT NULL DEFAULT 0,
//	    active          BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed supplier storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, sup *Supplier) error {
	// Upsert: execution stats may have created a bare row for this
	// address before the supplier was formally registered.
	query := `
		INSERT INTO suppliers (address, name, preferred_token, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address)
		DO UPDATE SET name = EXCLUDED.name,
		              preferred_token = EXCLUDED.preferred_token,
		              active = EXCLUDED.active
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query, sup.Address, sup.Name, sup.PreferredToken, sup.Active).
		Scan(&sup.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetByAddress(ctx context.Context, address string) (*Supplier, error) {
	query := `
		SELECT address, name, preferred_token, total_paid, payment_count, active, created_at
		FROM suppliers
		WHERE address = $1
	`

	sup := &Supplier{}
	err := s.db.QueryRowContext(ctx, query, address).Scan(
		&sup.Address,
		&sup.Name,
		&sup.PreferredToken,
		&sup.TotalPaid,
		&sup.PaymentCount,
		&sup.Active,
		&sup.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return sup, nil
}

func (s *PostgresStorage) List(ctx context.Context, limit, offset int) ([]*Supplier, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	query := `
		SELECT address, name, preferred_token, total_paid, payment_count, active, created_at
		FROM suppliers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		sup := &Supplier{}
		if err := rows.Scan(
			&sup.Address,
			&sup.Name,
			&sup.PreferredToken,
			&sup.TotalPaid,
			&sup.PaymentCount,
			&sup.Active,
			&sup.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}

	return suppliers, total, nil
}

func (s *PostgresStorage) RecordPayment(ctx context.Context, address string, amount int64) error {
	query := `
		INSERT INTO suppliers (address, total_paid, payment_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (address)
		DO UPDATE SET total_paid = suppliers.total_paid + EXCLUDED.total_paid,
		              payment_count = suppliers.payment_count + 1
	`

	if _, err := s.db.ExecContext(ctx, query, address, amount); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
