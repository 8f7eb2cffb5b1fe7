package supplier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
)

func newService() *Service {
	return NewService(NewMemoryStorage())
}

func TestRegister(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sup, err := svc.Register(ctx, &RegisterSupplierRequest{
		Address:        "acme",
		Name:           "Acme Corp",
		PreferredToken: ledger.TokenUSDC,
	})
	require.NoError(t, err)
	assert.True(t, sup.Active)
	assert.Zero(t, sup.TotalPaid)

	_, err = svc.Register(ctx, &RegisterSupplierRequest{Address: "acme", Name: "Acme Again"})
	assert.ErrorIs(t, err, ErrSupplierAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterSupplierRequest{Address: "", Name: "Acme"})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = svc.Register(ctx, &RegisterSupplierRequest{Address: "acme", Name: "Acme", PreferredToken: "DOGE"})
	assert.ErrorIs(t, err, ErrUnsupportedToken)
}

func TestRecordPayment_Accumulates(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterSupplierRequest{Address: "acme", Name: "Acme Corp"})
	require.NoError(t, err)

	require.NoError(t, svc.RecordPayment(ctx, "acme", 5000))
	require.NoError(t, svc.RecordPayment(ctx, "acme", 2500))

	sup, err := svc.GetByAddress(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), sup.TotalPaid)
	assert.Equal(t, int64(2), sup.PaymentCount)
}

func TestRegister_KeepsPreRegistrationStats(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	// Payments can land before the payee is formally registered.
	require.NoError(t, svc.RecordPayment(ctx, "acme", 9000))

	sup, err := svc.Register(ctx, &RegisterSupplierRequest{Address: "acme", Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), sup.TotalPaid)
	assert.Equal(t, int64(1), sup.PaymentCount)
}

func TestGetByAddress_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.GetByAddress(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
