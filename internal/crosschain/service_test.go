package crosschain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/payment"
	"github.com/fkhayef/treasury/internal/supplier"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// failingNetwork refuses every dispatch
type failingNetwork struct{}

func (failingNetwork) InitiateTransfer(ctx context.Context, token string, amount int64, destinationDomain uint32, recipient string) (string, error) {
	return "", errors.New("bridge unavailable")
}

type fixture struct {
	svc       *Service
	ledgerSvc *ledger.Service
}

func newFixture(t *testing.T, network SettlementNetwork) *fixture {
	t.Helper()

	ledgerSvc := ledger.NewService(ledger.NewMemoryStorage())
	supplierSvc := supplier.NewService(supplier.NewMemoryStorage())
	paymentSvc := payment.NewService(payment.NewMemoryStorage(), ledgerSvc, supplierSvc).
		WithClock(func() time.Time { return baseTime })

	ctx := context.Background()
	require.NoError(t, paymentSvc.Bootstrap(ctx, &payment.Config{
		Approvers:         []string{"alice", "bob"},
		RequiredApprovals: 2,
		ApprovalThreshold: 100_000,
		TimelockSeconds:   86400,
	}))
	require.NoError(t, ledgerSvc.Fund(ctx, ledger.TokenUSDC, 100_000))

	svc := NewService(NewMemoryStorage(), paymentSvc, ledgerSvc, network, []uint32{1, 2})
	return &fixture{svc: svc, ledgerSvc: ledgerSvc}
}

func TestSchedule_UnknownDomain(t *testing.T) {
	f := newFixture(t, NewLoopbackNetwork())

	_, _, err := f.svc.Schedule(context.Background(), &ScheduleCrossChainRequest{
		Recipient:         "acme",
		Token:             ledger.TokenUSDC,
		Amount:            5000,
		DestinationDomain: 99,
	})
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestExecute_DispatchesAndRecordsReference(t *testing.T) {
	f := newFixture(t, NewLoopbackNetwork())
	ctx := context.Background()

	p, cc, err := f.svc.Schedule(ctx, &ScheduleCrossChainRequest{
		Recipient:         "acme",
		Token:             ledger.TokenUSDC,
		Amount:            5000,
		DestinationDomain: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, cc.PaymentID)
	assert.Empty(t, cc.ExternalReference)

	executed, ccAfter, err := f.svc.Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, executed.Active, "one-shot payment deactivates")
	assert.NotEmpty(t, ccAfter.ExternalReference)

	// The burn leg debits the vault; no local account is credited.
	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(95_000), vault)

	acme, err := f.ledgerSvc.Balance(ctx, "acme", ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Zero(t, acme)
}

func TestExecute_DispatchFailureRollsBack(t *testing.T) {
	f := newFixture(t, failingNetwork{})
	ctx := context.Background()

	p, _, err := f.svc.Schedule(ctx, &ScheduleCrossChainRequest{
		Recipient:         "acme",
		Token:             ledger.TokenUSDC,
		Amount:            5000,
		DestinationDomain: 1,
	})
	require.NoError(t, err)

	_, _, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrSettlementDispatch)

	// The debit was compensated and the payment stayed executable.
	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), vault)

	got, _, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestExecute_NotCrossChain(t *testing.T) {
	f := newFixture(t, NewLoopbackNetwork())

	_, _, err := f.svc.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotCrossChain)
}
