package ledger

import "time"

// Vault is the account holding the shared treasury pool. Every scheduled
// payment is funded from this account.
const Vault = "vault"

// Supported treasury currencies, amounts in smallest units
const (
	TokenUSDC = "USDC"
	TokenUSDT = "USDT"
	TokenDAI  = "DAI"
)

// IsSupportedToken reports whether token is one of the treasury currencies
func IsSupportedToken(token string) bool {
	switch token {
	case TokenUSDC, TokenUSDT, TokenDAI:
		return true
	}
	return false
}

// Balance represents the holdings of one account in one token
type Balance struct {
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	Amount    int64     `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
