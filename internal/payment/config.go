package payment

// MaxTimelockSeconds caps the cooling-off window at 7 days
const MaxTimelockSeconds = 7 * 24 * 60 * 60

// Config is the approval engine's global configuration: who may vote, how
// many votes a large payment needs, the amount that makes a payment
// "large", and the cooling-off window. It is a single versioned record;
// engine operations receive the record explicitly so that snapshot-vs-live
// semantics are visible at the call site rather than read from ambient
// state.
type Config struct {
	Approvers         []string `json:"approvers"`
	RequiredApprovals int      `json:"required_approvals"`
	ApprovalThreshold int64    `json:"approval_threshold"`
	TimelockSeconds   int64    `json:"timelock_seconds"`
	Version           int64    `json:"version"`
}

// IsApprover reports whether the address is authorized to vote
func (c *Config) IsApprover(address string) bool {
	for _, a := range c.Approvers {
		if a == address {
			return true
		}
	}
	return false
}
