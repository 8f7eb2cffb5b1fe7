package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/supplier"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fixture wires the payment service onto in-memory storage with a
// controllable clock and a funded vault
type fixture struct {
	svc         *Service
	ledgerSvc   *ledger.Service
	supplierSvc *supplier.Service
	clock       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{clock: baseTime}
	f.ledgerSvc = ledger.NewService(ledger.NewMemoryStorage())
	f.supplierSvc = supplier.NewService(supplier.NewMemoryStorage())
	f.svc = NewService(NewMemoryStorage(), f.ledgerSvc, f.supplierSvc).
		WithClock(func() time.Time { return f.clock })

	ctx := context.Background()
	require.NoError(t, f.svc.Bootstrap(ctx, &Config{
		Approvers:         []string{"alice", "bob", "carol"},
		RequiredApprovals: 2,
		ApprovalThreshold: 10000,
		TimelockSeconds:   86400,
	}))
	require.NoError(t, f.ledgerSvc.Fund(ctx, ledger.TokenUSDC, 1_000_000))
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func TestSchedule_BelowThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient:       "acme",
		Token:           ledger.TokenUSDC,
		Amount:          9999,
		IntervalSeconds: 3600,
	})
	require.NoError(t, err)

	assert.True(t, p.Active)
	assert.False(t, p.RequiresApproval)
	assert.True(t, p.IsApproved(2), "sub-threshold payments are pre-approved")
	assert.Equal(t, baseTime.Add(3600*time.Second), p.NextExecutionTime)
}

func TestSchedule_AtThresholdRequiresApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    10000,
	})
	require.NoError(t, err)

	assert.True(t, p.RequiresApproval)
	assert.False(t, p.IsApproved(2))
	assert.Equal(t, baseTime.Add(86400*time.Second), p.ApprovalDeadline)
}

func TestSchedule_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{Recipient: "", Token: ledger.TokenUSDC, Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = f.svc.Schedule(ctx, &SchedulePaymentRequest{Recipient: "acme", Token: ledger.TokenUSDC, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.Schedule(ctx, &SchedulePaymentRequest{Recipient: "acme", Token: "DOGE", Amount: 100})
	assert.ErrorIs(t, err, ErrUnsupportedToken)
}

func TestCancel_IsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    15000,
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Active)

	// Every lifecycle verb refuses a cancelled payment.
	_, err = f.svc.Cancel(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPaymentNotActive)

	_, err = f.svc.Approve(ctx, p.ID, "alice")
	assert.ErrorIs(t, err, ErrPaymentNotActive)

	f.advance(10 * 24 * time.Hour)
	_, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPaymentNotActive)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestList_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
			Recipient: "acme",
			Token:     ledger.TokenUSDC,
			Amount:    100,
		})
		require.NoError(t, err)
	}

	page, total, err := f.svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	last, _, err := f.svc.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}

func TestCanExecute_TracksConfigChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    15000,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, p.ID, "alice")
	require.NoError(t, err)
	f.advance(2 * 24 * time.Hour)

	// One vote against a quorum of two.
	ok, err := f.svc.CanExecute(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// The quorum is evaluated live: lowering it unblocks the payment
	// without any new vote.
	_, err = f.svc.SetRequiredApprovals(ctx, 1)
	require.NoError(t, err)

	ok, err = f.svc.CanExecute(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
