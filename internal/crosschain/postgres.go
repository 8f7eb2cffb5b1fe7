package crosschain

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage implements Storage on a crosschain_payments table.
//
// Schema:
//
//	CREATE TABLE crosschain_payments (
//	    payment_id         BIGINT PRIMARY KEY REFERENCES payments(id),
//	    destination_domain BIGINT NOT NULL,
//	    external_reference TEXT,
//	    initiated_at       TIMESTAMPTZ
//	)
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a Postgres-backed cross-chain storage
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, cc *CrossChainPayment) error {
	query := `
		INSERT INTO crosschain_payments (payment_id, destination_domain)
		VALUES ($1, $2)
	`

	if _, err := s.db.ExecContext(ctx, query, cc.PaymentID, cc.DestinationDomain); err != nil {
		return fmt.Errorf("failed to create cross-chain payment: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetByPaymentID(ctx context.Context, paymentID int64) (*CrossChainPayment, error) {
	query := `
		SELECT payment_id, destination_domain, COALESCE(external_reference, ''), initiated_at
		FROM crosschain_payments
		WHERE payment_id = $1
	`

	cc := &CrossChainPayment{}
	err := s.db.QueryRowContext(ctx, query, paymentID).Scan(
		&cc.PaymentID,
		&cc.DestinationDomain,
		&cc.ExternalReference,
		&cc.InitiatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cross-chain payment: %w", err)
	}
	return cc, nil
}

func (s *PostgresStorage) SetExternalReference(ctx context.Context, paymentID int64, reference string) error {
	query := `
		UPDATE crosschain_payments
		SET external_reference = $2, initiated_at = now()
		WHERE payment_id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, paymentID, reference); err != nil {
		return fmt.Errorf("failed to set external reference: %w", err)
	}
	return nil
}
