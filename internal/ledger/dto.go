package ledger

// FundRequest represents a deposit into the treasury vault
type FundRequest struct {
	Token  string `json:"token" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// BalanceResponse represents an account balance
type BalanceResponse struct {
	Account string `json:"account"`
	Token   string `json:"token"`
	Amount  int64  `json:"amount"`
}
