package crosschain

import "time"

// CrossChainPayment extends a registry payment with the settlement-network
// routing data. Only the initiation leg lives here; minting on the
// destination side belongs to the external network.
type CrossChainPayment struct {
	PaymentID         int64      `json:"payment_id"`
	DestinationDomain uint32     `json:"destination_domain"`
	ExternalReference string     `json:"external_reference,omitempty"`
	InitiatedAt       *time.Time `json:"initiated_at,omitempty"`
}
