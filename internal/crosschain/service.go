package crosschain

import (
	"context"
	"errors"
	"fmt"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/payment"
)

// Common errors
var (
	ErrNotCrossChain      = errors.New("payment is not a cross-chain payment")
	ErrInvalidDomain      = errors.New("unknown destination domain")
	ErrSettlementDispatch = errors.New("settlement network dispatch failed")
)

// Service schedules and initiates cross-chain payments. Scheduling and
// eligibility belong to the payment registry; this service adds the
// routing record and replaces the local credit with a burn-and-mint
// dispatch through the external settlement network.
type Service struct {
	storage    Storage
	paymentSvc *payment.Service
	ledgerSvc  *ledger.Service
	network    SettlementNetwork
	domains    map[uint32]bool
}

// NewService creates a new cross-chain service. domains lists the
// settlement domains this deployment may route to.
func NewService(storage Storage, paymentSvc *payment.Service, ledgerSvc *ledger.Service, network SettlementNetwork, domains []uint32) *Service {
	known := make(map[uint32]bool, len(domains))
	for _, d := range domains {
		known[d] = true
	}
	return &Service{
		storage:    storage,
		paymentSvc: paymentSvc,
		ledgerSvc:  ledgerSvc,
		network:    network,
		domains:    known,
	}
}

// Schedule registers a cross-chain payment: registry validation plus a
// destination domain check
func (s *Service) Schedule(ctx context.Context, req *ScheduleCrossChainRequest) (*payment.Payment, *CrossChainPayment, error) {
	if !s.domains[req.DestinationDomain] {
		return nil, nil, ErrInvalidDomain
	}

	p, err := s.paymentSvc.Schedule(ctx, &payment.SchedulePaymentRequest{
		Recipient:       req.Recipient,
		Token:           req.Token,
		Amount:          req.Amount,
		IntervalSeconds: req.IntervalSeconds,
		Description:     req.Description,
	})
	if err != nil {
		return nil, nil, err
	}

	cc := &CrossChainPayment{
		PaymentID:         p.ID,
		DestinationDomain: req.DestinationDomain,
	}
	if err := s.storage.Create(ctx, cc); err != nil {
		return nil, nil, err
	}
	return p, cc, nil
}

// Execute initiates the cross-chain leg. The vault is debited first, the
// dispatch follows; a failed dispatch credits the debit back so no partial
// movement is ever visible as committed.
func (s *Service) Execute(ctx context.Context, paymentID int64) (*payment.Payment, *CrossChainPayment, error) {
	cc, err := s.storage.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if cc == nil {
		return nil, nil, ErrNotCrossChain
	}

	p, err := s.paymentSvc.ExecuteExternal(ctx, paymentID, func(p *payment.Payment) error {
		if err := s.ledgerSvc.Debit(ctx, ledger.Vault, p.Token, p.Amount); err != nil {
			return err
		}

		ref, err := s.network.InitiateTransfer(ctx, p.Token, p.Amount, cc.DestinationDomain, p.Recipient)
		if err != nil {
			// Compensate: the burn never left, so the debit rolls back.
			if cErr := s.ledgerSvc.Credit(ctx, ledger.Vault, p.Token, p.Amount); cErr != nil {
				return fmt.Errorf("%w: %v (compensation also failed: %v)", ErrSettlementDispatch, err, cErr)
			}
			return fmt.Errorf("%w: %v", ErrSettlementDispatch, err)
		}

		cc.ExternalReference = ref
		return s.storage.SetExternalReference(ctx, paymentID, ref)
	})
	if err != nil {
		return nil, nil, err
	}

	return p, cc, nil
}

// ApprovalConfig exposes the registry's approval configuration for
// response building
func (s *Service) ApprovalConfig(ctx context.Context) (*payment.Config, error) {
	return s.paymentSvc.GetConfig(ctx)
}

// Get returns the routing record together with the underlying payment
func (s *Service) Get(ctx context.Context, paymentID int64) (*payment.Payment, *CrossChainPayment, error) {
	cc, err := s.storage.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if cc == nil {
		return nil, nil, ErrNotCrossChain
	}

	p, err := s.paymentSvc.Get(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	return p, cc, nil
}
