package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/treasury/internal/ledger"
)

func scheduleLarge(t *testing.T, f *fixture) *Payment {
	t.Helper()
	p, err := f.svc.Schedule(context.Background(), &SchedulePaymentRequest{
		Recipient: "acme",
		Token:     ledger.TokenUSDC,
		Amount:    15000,
	})
	require.NoError(t, err)
	require.True(t, p.RequiresApproval)
	return p
}

func TestApprove_QuorumRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := scheduleLarge(t, f)

	p, err := f.svc.Approve(ctx, p.ID, "alice")
	require.NoError(t, err)
	assert.False(t, p.IsApproved(2))

	p, err = f.svc.Approve(ctx, p.ID, "bob")
	require.NoError(t, err)
	assert.True(t, p.IsApproved(2))

	// A revocation drops the payment back below quorum.
	p, err = f.svc.Revoke(ctx, p.ID, "alice")
	require.NoError(t, err)
	assert.False(t, p.IsApproved(2))
	assert.Equal(t, []string{"bob"}, p.ApprovedBy)
}

func TestApprove_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := scheduleLarge(t, f)

	_, err := f.svc.Approve(ctx, p.ID, "mallory")
	assert.ErrorIs(t, err, ErrNotAnApprover)

	_, err = f.svc.Approve(ctx, 404, "alice")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = f.svc.Approve(ctx, p.ID, "alice")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, p.ID, "alice")
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestRevoke_WithoutStandingVote(t *testing.T) {
	f := newFixture(t)
	p := scheduleLarge(t, f)

	_, err := f.svc.Revoke(context.Background(), p.ID, "alice")
	assert.ErrorIs(t, err, ErrHasNotApproved)
}

func TestAddApprover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg, err := f.svc.AddApprover(ctx, "dave")
	require.NoError(t, err)
	assert.Contains(t, cfg.Approvers, "dave")
	assert.Equal(t, int64(2), cfg.Version)

	_, err = f.svc.AddApprover(ctx, "dave")
	assert.ErrorIs(t, err, ErrAlreadyApprover)
}

func TestRemoveApprover_QuorumGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Three approvers, quorum of two: one removal is fine.
	cfg, err := f.svc.RemoveApprover(ctx, "carol")
	require.NoError(t, err)
	assert.Len(t, cfg.Approvers, 2)

	// A second removal would leave fewer approvers than the quorum needs.
	_, err = f.svc.RemoveApprover(ctx, "bob")
	assert.ErrorIs(t, err, ErrBreaksQuorum)

	_, err = f.svc.RemoveApprover(ctx, "mallory")
	assert.ErrorIs(t, err, ErrNotAnApprover)
}

func TestSetRequiredApprovals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetRequiredApprovals(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidRequirement)

	_, err = f.svc.SetRequiredApprovals(ctx, 4)
	assert.ErrorIs(t, err, ErrExceedsApproverCount)

	cfg, err := f.svc.SetRequiredApprovals(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RequiredApprovals)
	assert.Equal(t, int64(2), cfg.Version)
}

func TestSetApprovalTimelock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetApprovalTimelock(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.SetApprovalTimelock(ctx, MaxTimelockSeconds+1)
	assert.ErrorIs(t, err, ErrTimelockTooLong)

	cfg, err := f.svc.SetApprovalTimelock(ctx, 3600)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), cfg.TimelockSeconds)
}

func TestSetApprovalTimelock_ExistingDeadlinesKeep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := scheduleLarge(t, f)

	deadline := p.ApprovalDeadline
	_, err := f.svc.SetApprovalTimelock(ctx, 60)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, deadline, got.ApprovalDeadline, "already-scheduled payments keep their window")

	// A payment scheduled after the change gets the new window.
	p2 := scheduleLarge(t, f)
	assert.Equal(t, f.clock.Add(60*time.Second), p2.ApprovalDeadline)
}
