package yield

// DepositRequest represents the request to place vault funds with a strategy
type DepositRequest struct {
	Token        string `json:"token" validate:"required"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	StrategyKind string `json:"strategy_kind" validate:"required"`
	RiskLevel    int    `json:"risk_level"`
}

// WithdrawRequest represents the request to pull principal back to the vault
type WithdrawRequest struct {
	Token        string `json:"token" validate:"required"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	StrategyKind string `json:"strategy_kind" validate:"required"`
}

// HarvestRequest represents the request to collect accrued proceeds
type HarvestRequest struct {
	Token        string `json:"token" validate:"required"`
	StrategyKind string `json:"strategy_kind" validate:"required"`
}

// YieldPositionResponse represents a yield position in API responses
type YieldPositionResponse struct {
	Token        string `json:"token"`
	StrategyKind string `json:"strategy_kind"`
	Principal    int64  `json:"principal"`
	AccruedYield int64  `json:"accrued_yield"`
	RiskLevel    int    `json:"risk_level"`
	UpdatedAt    string `json:"updated_at"`
}

// HarvestResponse reports what a harvest collected
type HarvestResponse struct {
	Harvested int64                  `json:"harvested"`
	Position  *YieldPositionResponse `json:"position"`
}

// ToResponse converts a YieldPosition to its response DTO
func (p *YieldPosition) ToResponse() *YieldPositionResponse {
	return &YieldPositionResponse{
		Token:        p.Token,
		StrategyKind: p.StrategyKind,
		Principal:    p.Principal,
		AccruedYield: p.AccruedYield,
		RiskLevel:    p.RiskLevel,
		UpdatedAt:    p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
