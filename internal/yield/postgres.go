package yield

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage implements Storage on a yield_positions table.
//
// Schema:
//
//	CREATE TABLE yield_positions (
//	    token         TEXT NOT NULL,
//	    strategy_kind TEXT NOT NULL,
//	    principal     BIGINT NOT NULL DEFAULT 0 CHECK (principal >= 0),
//	    accrued_yield BIGINT NOT NULL DEFAULT 0,
//	    risk_level    INT NOT NULL DEFAULT 1,
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (token, strategy_kind)
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed yield position storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Get(ctx context.Context, token, strategyKind string) (*YieldPosition, error) {
	query := `
		SELECT token, strategy_kind, principal, accrued_yield, risk_level, updated_at
		FROM yield_positions
		WHERE token = $1 AND strategy_kind = $2
	`

	pos := &YieldPosition{}
	err := s.db.QueryRowContext(ctx, query, token, strategyKind).Scan(
		&pos.Token,
		&pos.StrategyKind,
		&pos.Principal,
		&pos.AccruedYield,
		&pos.RiskLevel,
		&pos.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get yield position: %w", err)
	}
	return pos, nil
}

func (s *PostgresStorage) Set(ctx context.Context, pos *YieldPosition) error {
	query := `
		INSERT INTO yield_positions (token, strategy_kind, principal, accrued_yield, risk_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (token, strategy_kind)
		DO UPDATE SET principal = EXCLUDED.principal,
		              accrued_yield = EXCLUDED.accrued_yield,
		              risk_level = EXCLUDED.risk_level,
		              updated_at = now()
	`

	_, err := s.db.ExecContext(ctx, query,
		pos.Token,
		pos.StrategyKind,
		pos.Principal,
		pos.AccruedYield,
		pos.RiskLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to set yield position: %w", err)
	}
	return nil
}

func (s *PostgresStorage) List(ctx context.Context) ([]*YieldPosition, error) {
	query := `
		SELECT token, strategy_kind, principal, accrued_yield, risk_level, updated_at
		FROM yield_positions
		ORDER BY token, strategy_kind
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list yield positions: %w", err)
	}
	defer rows.Close()

	var positions []*YieldPosition
	for rows.Next() {
		pos := &YieldPosition{}
		if err := rows.Scan(
			&pos.Token,
			&pos.StrategyKind,
			&pos.Principal,
			&pos.AccruedYield,
			&pos.RiskLevel,
			&pos.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan yield position: %w", err)
		}
		positions = append(positions, pos)
	}

	return positions, nil
}
