package department

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/payment"
	"github.com/fkhayef/treasury/internal/supplier"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc        *Service
	paymentSvc *payment.Service
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{clock: baseTime}
	tick := func() time.Time { return f.clock }

	ledgerSvc := ledger.NewService(ledger.NewMemoryStorage())
	supplierSvc := supplier.NewService(supplier.NewMemoryStorage())
	f.paymentSvc = payment.NewService(payment.NewMemoryStorage(), ledgerSvc, supplierSvc).WithClock(tick)
	f.svc = NewService(NewMemoryStorage(), f.paymentSvc).WithClock(tick)

	require.NoError(t, f.paymentSvc.Bootstrap(context.Background(), &payment.Config{
		Approvers:         []string{"alice", "bob"},
		RequiredApprovals: 2,
		ApprovalThreshold: 100_000,
		TimelockSeconds:   86400,
	}))
	return f
}

func (f *fixture) createDepartment(t *testing.T, budget int64) *Department {
	t.Helper()
	d, err := f.svc.Create(context.Background(), &CreateDepartmentRequest{
		Name:          "engineering",
		MonthlyBudget: budget,
		Managers:      []string{"alice"},
	})
	require.NoError(t, err)
	return d
}

func paymentFor(amount int64) *payment.SchedulePaymentRequest {
	return &payment.SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    amount,
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &CreateDepartmentRequest{Name: "", MonthlyBudget: 1000})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.svc.Create(ctx, &CreateDepartmentRequest{Name: "ops", MonthlyBudget: 0})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestSchedulePayment_CeilingEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.createDepartment(t, 10000)

	_, err := f.svc.SchedulePayment(ctx, d.ID, paymentFor(5000))
	require.NoError(t, err)

	// 5000 + 6000 breaks the 10000 ceiling; nothing is consumed by the
	// rejected attempt.
	_, err = f.svc.SchedulePayment(ctx, d.ID, paymentFor(6000))
	assert.ErrorIs(t, err, ErrExceedsDepartmentBudget)

	got, err := f.svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.SpentThisMonth)

	// Exactly the remainder still fits.
	_, err = f.svc.SchedulePayment(ctx, d.ID, paymentFor(5000))
	require.NoError(t, err)

	got, err = f.svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.SpentThisMonth)
}

func TestSchedulePayment_MonthlyReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.createDepartment(t, 10000)

	_, err := f.svc.SchedulePayment(ctx, d.ID, paymentFor(5000))
	require.NoError(t, err)
	_, err = f.svc.SchedulePayment(ctx, d.ID, paymentFor(6000))
	assert.ErrorIs(t, err, ErrExceedsDepartmentBudget)

	// A budget month later the counter has lapsed and the same payment
	// goes through.
	f.clock = f.clock.Add(BudgetPeriod)
	_, err = f.svc.SchedulePayment(ctx, d.ID, paymentFor(6000))
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.SpentThisMonth)
	assert.Equal(t, baseTime.Add(BudgetPeriod), got.LastResetTime)
}

func TestSchedulePayment_RegistryRejectionConsumesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.createDepartment(t, 10000)

	// Within budget, but the registry refuses the token.
	_, err := f.svc.SchedulePayment(ctx, d.ID, &payment.SchedulePaymentRequest{
		Recipient: "acme",
		Token:     "DOGE",
		Amount:    5000,
	})
	assert.ErrorIs(t, err, payment.ErrUnsupportedToken)

	got, err := f.svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SpentThisMonth)
}

func TestSchedulePayment_UnknownDepartment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SchedulePayment(context.Background(), 404, paymentFor(100))
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}

func TestEffectiveSpent(t *testing.T) {
	d := &Department{
		MonthlyBudget:  10000,
		SpentThisMonth: 4000,
		LastResetTime:  baseTime,
	}

	assert.Equal(t, int64(4000), d.EffectiveSpent(baseTime.Add(29*24*time.Hour)))
	assert.Zero(t, d.EffectiveSpent(baseTime.Add(BudgetPeriod)))
}
