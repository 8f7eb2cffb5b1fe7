package ledger

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStorage_Balance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorage(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM balances WHERE account = $1 AND token = $2")).
		WithArgs(Vault, TokenUSDC).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(50000))

	amount, err := store.Balance(ctx, Vault, TokenUSDC)
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), amount)

	// No row means zero holdings.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM balances")).
		WithArgs("acme", TokenDAI).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}))

	amount, err = store.Balance(ctx, "acme", TokenDAI)
	assert.NoError(t, err)
	assert.Zero(t, amount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Debit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorage(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE balances")).
		WithArgs(Vault, TokenUSDC, int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Debit(ctx, Vault, TokenUSDC, 1000))

	// The guarded UPDATE matches no row when the balance is short.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE balances")).
		WithArgs(Vault, TokenUSDC, int64(1_000_000)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.Debit(ctx, Vault, TokenUSDC, 1_000_000), ErrInsufficientFunds)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Transfer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorage(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE balances")).
		WithArgs(Vault, TokenUSDC, int64(4000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO balances")).
		WithArgs("acme", TokenUSDC, int64(4000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, store.Transfer(ctx, Vault, "acme", TokenUSDC, 4000))

	// An underfunded debit rolls the whole transfer back.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE balances")).
		WithArgs(Vault, TokenUSDC, int64(9000)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, store.Transfer(ctx, Vault, "acme", TokenUSDC, 9000), ErrInsufficientFunds)

	assert.NoError(t, mock.ExpectationsWereMet())
}
