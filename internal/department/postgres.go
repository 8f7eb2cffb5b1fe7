package department

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStorage implements Storage on a departments table.
//
// Schema:
//
//	CREATE TABLE departments (
//	    id               BIGSERIAL PRIMARY KEY,
//	    name             TEXT NOT NULL,
//	    monthly_budget   BIGINT NOT NULL CHECK (monthly_budget > 0),
//	    managers         TEXT[] NOT NULL DEFAULT '{}',
//	    spent_this_month BIGINT NOT NULL DEFAULT 0,
//	    last_reset_time  TIMESTAMPTZ NOT NULL,
//	    active           BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed department storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, d *Department) error {
	query := `
		INSERT INTO departments (name, monthly_budget, managers, spent_this_month, last_reset_time, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		d.Name,
		d.MonthlyBudget,
		pq.Array(d.Managers),
		d.SpentThisMonth,
		d.LastResetTime,
		d.Active,
		d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*Department, error) {
	query := `
		SELECT id, name, monthly_budget, managers, spent_this_month, last_reset_time, active, created_at
		FROM departments
		WHERE id = $1
	`

	d := &Department{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.MonthlyBudget,
		pq.Array(&d.Managers),
		&d.SpentThisMonth,
		&d.LastResetTime,
		&d.Active,
		&d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (s *PostgresStorage) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := `
		SELECT id, name, monthly_budget, managers, spent_this_month, last_reset_time, active, created_at
		FROM departments
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*Department
	for rows.Next() {
		d := &Department{}
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.MonthlyBudget,
			pq.Array(&d.Managers),
			&d.SpentThisMonth,
			&d.LastResetTime,
			&d.Active,
			&d.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, total, nil
}

func (s *PostgresStorage) Update(ctx context.Context, d *Department) error {
	query := `
		UPDATE departments
		SET spent_this_month = $2, last_reset_time = $3, active = $4
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, d.ID, d.SpentThisMonth, d.LastResetTime, d.Active); err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}
