package payment

import (
	"context"
	"errors"
	"time"

	"github.com/fkhayef/treasury/internal/ledger"
)

// MaxBatchSize bounds one batch-execute call
const MaxBatchSize = 50

// Executor errors
var (
	ErrNotReady      = errors.New("scheduled execution time not reached")
	ErrNeedsApproval = errors.New("payment lacks approvals or its timelock has not elapsed")
	ErrBatchTooLarge = errors.New("batch exceeds 50 payments")
)

// Execute runs a single payment and fails loudly when it is not
// eligible: the caller targeted exactly this payment and needs to know
// why it did not run.
func (s *Service) Execute(ctx context.Context, id int64) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.eligiblePayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.settleLocally(ctx, p); err != nil {
		return nil, err
	}
	if err := s.finishExecution(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ExecuteExternal runs a single payment whose fund movement is owned by
// the caller (cross-chain dispatch instead of a local credit). The
// eligibility state machine and the re-arm bookkeeping stay here; only
// the dispatch differs. The dispatch callback must leave local state
// untouched when it fails.
func (s *Service) ExecuteExternal(ctx context.Context, id int64, dispatch func(p *Payment) error) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.eligiblePayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := dispatch(p); err != nil {
		return nil, err
	}
	if err := s.finishExecution(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// BatchExecute runs up to MaxBatchSize payments in the caller-supplied
// order. Ineligible entries are skipped, never failed: one bad payment
// must not hold the rest of the payroll hostage. Completed entries stay
// completed even if a later entry fails.
func (s *Service) BatchExecute(ctx context.Context, ids []int64) (*BatchResult, error) {
	if len(ids) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Requested: len(ids)}
	now := s.now()
	for _, id := range ids {
		p, err := s.storage.GetPayment(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.CanExecute(now, cfg.RequiredApprovals) {
			result.SkippedIDs = append(result.SkippedIDs, id)
			batchSkipped.Inc()
			continue
		}
		if err := s.settleLocally(ctx, p); err != nil {
			// Fund movement failed for this entry only; earlier
			// executions stand.
			result.SkippedIDs = append(result.SkippedIDs, id)
			batchSkipped.Inc()
			continue
		}
		if err := s.finishExecution(ctx, p); err != nil {
			return nil, err
		}
		result.ExecutedIDs = append(result.ExecutedIDs, id)
	}
	result.Executed = len(result.ExecutedIDs)
	return result, nil
}

// eligiblePayment loads the payment and verifies every execution
// precondition, returning the specific refusal. Caller holds the mutex.
func (s *Service) eligiblePayment(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !p.Active {
		return nil, ErrPaymentNotActive
	}
	if now.Before(p.NextExecutionTime) {
		return nil, ErrNotReady
	}
	if !p.IsApproved(cfg.RequiredApprovals) || (p.RequiresApproval && now.Before(p.ApprovalDeadline)) {
		return nil, ErrNeedsApproval
	}
	return p, nil
}

// settleLocally moves the funds vault -> recipient and records supplier
// statistics
func (s *Service) settleLocally(ctx context.Context, p *Payment) error {
	if err := s.ledgerSvc.Transfer(ctx, ledger.Vault, p.Recipient, p.Token, p.Amount); err != nil {
		return err
	}
	return s.supplierSvc.RecordPayment(ctx, p.Recipient, p.Amount)
}

// finishExecution applies the post-execution bookkeeping: one-shot
// payments deactivate, recurring ones re-arm from the previous schedule
// (not from now) so a late execution does not drift the cadence.
func (s *Service) finishExecution(ctx context.Context, p *Payment) error {
	if p.OneShot() {
		p.Active = false
	} else {
		p.NextExecutionTime = p.NextExecutionTime.Add(time.Duration(p.IntervalSeconds) * time.Second)
	}
	if err := s.storage.UpdatePayment(ctx, p); err != nil {
		return err
	}

	paymentsExecuted.Inc()
	return nil
}
