package payment

import (
	"context"
	"errors"
)

// Approval engine errors
var (
	ErrNotAnApprover        = errors.New("caller is not an approver")
	ErrAlreadyApproved      = errors.New("caller has already approved this payment")
	ErrHasNotApproved       = errors.New("caller has not approved this payment")
	ErrAlreadyApprover      = errors.New("address is already an approver")
	ErrBreaksQuorum         = errors.New("removing approver would break quorum")
	ErrExceedsApproverCount = errors.New("required approvals exceeds approver count")
	ErrInvalidRequirement   = errors.New("required approvals must be at least 1")
	ErrTimelockTooLong      = errors.New("timelock exceeds the 7 day maximum")
)

// Approve records a vote by the given approver. The vote set has unique
// membership; a second vote by the same approver is a conflict, not a
// no-op, so callers learn their first vote already counted.
func (s *Service) Approve(ctx context.Context, paymentID int64, approver string) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsApprover(approver) {
		return nil, ErrNotAnApprover
	}

	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !p.Active {
		return nil, ErrPaymentNotActive
	}
	if p.HasApproved(approver) {
		return nil, ErrAlreadyApproved
	}

	if err := s.storage.AddApproval(ctx, paymentID, approver); err != nil {
		return nil, err
	}
	p.ApprovedBy = append(p.ApprovedBy, approver)
	return p, nil
}

// Revoke withdraws a standing vote. A fully approved payment can drop
// back below quorum this way, as long as it has not executed.
func (s *Service) Revoke(ctx context.Context, paymentID int64, approver string) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !p.Active {
		return nil, ErrPaymentNotActive
	}
	if !p.HasApproved(approver) {
		return nil, ErrHasNotApproved
	}

	if err := s.storage.RemoveApproval(ctx, paymentID, approver); err != nil {
		return nil, err
	}
	for i, a := range p.ApprovedBy {
		if a == approver {
			p.ApprovedBy = append(p.ApprovedBy[:i], p.ApprovedBy[i+1:]...)
			break
		}
	}
	return p, nil
}

// AddApprover grants voting rights to an address
func (s *Service) AddApprover(ctx context.Context, address string) (*Config, error) {
	if address == "" {
		return nil, ErrInvalidRecipient
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.IsApprover(address) {
		return nil, ErrAlreadyApprover
	}

	cfg.Approvers = append(cfg.Approvers, address)
	cfg.Version++
	if err := s.storage.SetConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RemoveApprover withdraws voting rights. The set can never shrink below
// the required approval count.
func (s *Service) RemoveApprover(ctx context.Context, address string) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsApprover(address) {
		return nil, ErrNotAnApprover
	}
	if len(cfg.Approvers)-1 < cfg.RequiredApprovals {
		return nil, ErrBreaksQuorum
	}

	for i, a := range cfg.Approvers {
		if a == address {
			cfg.Approvers = append(cfg.Approvers[:i], cfg.Approvers[i+1:]...)
			break
		}
	}
	cfg.Version++
	if err := s.storage.SetConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetRequiredApprovals changes the quorum size
func (s *Service) SetRequiredApprovals(ctx context.Context, n int) (*Config, error) {
	if n < 1 {
		return nil, ErrInvalidRequirement
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(cfg.Approvers) {
		return nil, ErrExceedsApproverCount
	}

	cfg.RequiredApprovals = n
	cfg.Version++
	if err := s.storage.SetConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetApprovalTimelock changes the cooling-off window for payments
// scheduled from now on; already-scheduled payments keep their deadline
func (s *Service) SetApprovalTimelock(ctx context.Context, seconds int64) (*Config, error) {
	if seconds < 0 {
		return nil, ErrInvalidAmount
	}
	if seconds > MaxTimelockSeconds {
		return nil, ErrTimelockTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}

	cfg.TimelockSeconds = seconds
	cfg.Version++
	if err := s.storage.SetConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfig returns the current approval configuration
func (s *Service) GetConfig(ctx context.Context) (*Config, error) {
	return s.config(ctx)
}
