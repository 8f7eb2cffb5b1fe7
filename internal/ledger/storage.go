package ledger

import (
	"context"
	"errors"
)

// ErrInsufficientFunds is returned by storage when a debit or transfer
// would push an account balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Storage handles persistence of account balances. The ledger exclusively
// owns balance mutation; every implementation must apply each call
// all-or-nothing.
type Storage interface {
	// Balance returns the current holdings; a never-credited pair is 0.
	Balance(ctx context.Context, account, token string) (int64, error)

	// Credit adds amount to the account's balance.
	Credit(ctx context.Context, account, token string, amount int64) error

	// Debit subtracts amount, failing with ErrInsufficientFunds if the
	// balance would go negative. No partial application.
	Debit(ctx context.Context, account, token string, amount int64) error

	// Transfer atomically debits from and credits to. Either both sides
	// apply or neither does.
	Transfer(ctx context.Context, from, to, token string, amount int64) error
}
