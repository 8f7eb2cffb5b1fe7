package yield

import "time"

// Strategy kinds supported by the tracker
const (
	StrategyLending = "LENDING"
	StrategyStaking = "STAKING"
	StrategyLP      = "LP"
)

// IsSupportedStrategy reports whether kind names a known strategy
func IsSupportedStrategy(kind string) bool {
	switch kind {
	case StrategyLending, StrategyStaking, StrategyLP:
		return true
	}
	return false
}

// YieldPosition is the bookkeeping record for funds placed with one
// external strategy in one token. Principal moves on deposit/withdraw;
// AccruedYield only ever grows, on harvest.
type YieldPosition struct {
	Token        string    `json:"token"`
	StrategyKind string    `json:"strategy_kind"`
	Principal    int64     `json:"principal"`
	AccruedYield int64     `json:"accrued_yield"`
	RiskLevel    int       `json:"risk_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}
