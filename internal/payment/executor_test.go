package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
)

func TestExecute_OneShot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    5000,
	})
	require.NoError(t, err)

	executed, err := f.svc.Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, executed.Active, "one-shot payments deactivate after execution")

	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(995_000), vault)

	recipient, err := f.ledgerSvc.Balance(ctx, "acme", ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), recipient)

	sup, err := f.supplierSvc.GetByAddress(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), sup.TotalPaid)
	assert.Equal(t, int64(1), sup.PaymentCount)
}

func TestExecute_NotReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient:       "acme",
		Token:           ledger.TokenUSDC,
		Amount:          5000,
		IntervalSeconds: 3600,
	})
	require.NoError(t, err)

	_, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotReady)

	f.advance(time.Hour)
	_, err = f.svc.Execute(ctx, p.ID)
	assert.NoError(t, err)
}

// A 15k payment against a 10k threshold walks the whole approval state
// machine: no votes, quorum, then the cooling-off window.
func TestExecute_ApprovalLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    15000,
	})
	require.NoError(t, err)

	_, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNeedsApproval)

	_, err = f.svc.Approve(ctx, p.ID, "alice")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, p.ID, "bob")
	require.NoError(t, err)

	// Quorum met, but the window binds even with instant votes.
	_, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNeedsApproval)

	f.advance(24 * time.Hour)
	executed, err := f.svc.Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, executed.Active)

	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(985_000), vault)
}

func TestExecute_RecurringReArmsFromSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const week = int64(7 * 24 * 60 * 60)
	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient:       "acme",
		Token:           ledger.TokenUSDC,
		Amount:          5000,
		IntervalSeconds: week,
	})
	require.NoError(t, err)
	firstDue := p.NextExecutionTime

	// Execute late; the next slot still lands on the original cadence.
	f.advance(8 * 24 * time.Hour)
	executed, err := f.svc.Execute(ctx, p.ID)
	require.NoError(t, err)

	assert.True(t, executed.Active)
	assert.Equal(t, firstDue.Add(time.Duration(week)*time.Second), executed.NextExecutionTime)
}

func TestExecute_InsufficientFundsLeavesPaymentIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    2_000_000,
	})
	require.NoError(t, err)
	// Over the threshold, so clear the approval gate first.
	_, err = f.svc.Approve(ctx, p.ID, "alice")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, p.ID, "bob")
	require.NoError(t, err)
	f.advance(24 * time.Hour)

	_, err = f.svc.Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// The failure left no bookkeeping behind: still active, still due.
	got, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, p.NextExecutionTime, got.NextExecutionTime)
}

func TestBatchExecute_SkipsIneligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ready []int64
	for i := 0; i < 3; i++ {
		p, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
			Recipient: "acme",
			Token:     ledger.TokenUSDC,
			Amount:    1000,
		})
		require.NoError(t, err)
		ready = append(ready, p.ID)
	}
	notReady, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient:       "acme",
		Token:           ledger.TokenUSDC,
		Amount:          1000,
		IntervalSeconds: 3600,
	})
	require.NoError(t, err)

	ids := append(append([]int64{}, ready...), notReady.ID, 404)
	result, err := f.svc.BatchExecute(ctx, ids)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 3, result.Executed)
	assert.Equal(t, ready, result.ExecutedIDs)
	assert.Equal(t, []int64{notReady.ID, 404}, result.SkippedIDs)

	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(997_000), vault)
}

func TestBatchExecute_FundFailureSkipsEntryOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Shrink the vault to 10,000: the first entry nearly drains it, the
	// second cannot settle. Both stay under the approval threshold.
	require.NoError(t, f.ledgerSvc.Debit(ctx, ledger.Vault, ledger.TokenUSDC, 990_000))

	first, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    9000,
	})
	require.NoError(t, err)
	second, err := f.svc.Schedule(ctx, &SchedulePaymentRequest{
		Recipient: "globex",
		Token:     ledger.TokenUSDC,
		Amount:    5000,
	})
	require.NoError(t, err)

	result, err := f.svc.BatchExecute(ctx, []int64{first.ID, second.ID})
	require.NoError(t, err)

	assert.Equal(t, []int64{first.ID}, result.ExecutedIDs)
	assert.Equal(t, []int64{second.ID}, result.SkippedIDs)

	// The completed entry stands.
	vault, err := f.ledgerSvc.Balance(ctx, ledger.Vault, ledger.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), vault)
}

func TestBatchExecute_TooLarge(t *testing.T) {
	f := newFixture(t)

	ids := make([]int64, MaxBatchSize+1)
	_, err := f.svc.BatchExecute(context.Background(), ids)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}
