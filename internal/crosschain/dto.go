package crosschain

import "github.com/fkhayef/treasury/internal/payment"

// ScheduleCrossChainRequest represents the request to schedule a
// cross-chain payment
type ScheduleCrossChainRequest struct {
	Recipient         string `json:"recipient" validate:"required"`
	Token             string `json:"token" validate:"required"`
	Amount            int64  `json:"amount" validate:"required,gt=0"`
	DestinationDomain uint32 `json:"destination_domain" validate:"required"`
	IntervalSeconds   int64  `json:"interval_seconds"`
	Description       string `json:"description"`
}

// CrossChainPaymentResponse joins the registry payment with its routing data
type CrossChainPaymentResponse struct {
	Payment           *payment.PaymentResponse `json:"payment"`
	DestinationDomain uint32                   `json:"destination_domain"`
	ExternalReference string                   `json:"external_reference,omitempty"`
	InitiatedAt       string                   `json:"initiated_at,omitempty"`
}

// ToResponse builds the joined response DTO
func ToResponse(p *payment.PaymentResponse, cc *CrossChainPayment) *CrossChainPaymentResponse {
	resp := &CrossChainPaymentResponse{
		Payment:           p,
		DestinationDomain: cc.DestinationDomain,
		ExternalReference: cc.ExternalReference,
	}
	if cc.InitiatedAt != nil {
		resp.InitiatedAt = cc.InitiatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}
