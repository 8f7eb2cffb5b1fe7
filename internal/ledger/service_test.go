package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return NewService(NewMemoryStorage())
}

func TestFundAndBalance(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Fund(ctx, TokenUSDC, 50000))
	require.NoError(t, svc.Fund(ctx, TokenUSDC, 25000))

	balance, err := svc.Balance(ctx, Vault, TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), balance)

	// Unfunded pairs read as zero, not as an error.
	balance, err = svc.Balance(ctx, Vault, TokenDAI)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestTransfer(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Fund(ctx, TokenUSDT, 10000))
	require.NoError(t, svc.Transfer(ctx, Vault, "acme", TokenUSDT, 4000))

	vault, err := svc.Balance(ctx, Vault, TokenUSDT)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), vault)

	acme, err := svc.Balance(ctx, "acme", TokenUSDT)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), acme)
}

func TestTransfer_InsufficientFundsIsAtomic(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Fund(ctx, TokenUSDC, 1000))

	err := svc.Transfer(ctx, Vault, "acme", TokenUSDC, 1001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Neither side moved.
	vault, err := svc.Balance(ctx, Vault, TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), vault)

	acme, err := svc.Balance(ctx, "acme", TokenUSDC)
	require.NoError(t, err)
	assert.Zero(t, acme)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	err := svc.Debit(ctx, Vault, TokenUSDC, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Balance(ctx, "", TokenUSDC)
	assert.ErrorIs(t, err, ErrInvalidAccount)

	_, err = svc.Balance(ctx, Vault, "DOGE")
	assert.ErrorIs(t, err, ErrUnsupportedToken)

	assert.ErrorIs(t, svc.Credit(ctx, Vault, TokenUSDC, 0), ErrInvalidAmount)
	assert.ErrorIs(t, svc.Credit(ctx, Vault, TokenUSDC, -5), ErrInvalidAmount)
	assert.ErrorIs(t, svc.Transfer(ctx, Vault, "", TokenUSDC, 100), ErrInvalidAccount)
}

func TestIsSupportedToken(t *testing.T) {
	assert.True(t, IsSupportedToken(TokenUSDC))
	assert.True(t, IsSupportedToken(TokenUSDT))
	assert.True(t, IsSupportedToken(TokenDAI))
	assert.False(t, IsSupportedToken("usdc"))
	assert.False(t, IsSupportedToken(""))
}
