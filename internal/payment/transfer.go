package payment

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transferor moves value between address-like accounts. Transfers are
// synchronous: they either settle in full or fail with no effect.
//
//go:generate mockgen -source=transfer.go -destination=../mocks/transferor.go -package=mocks -mock_names=Transferor=MockTransferor
type Transferor interface {
	// Transfer moves amount from one account to another
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error
	// BalanceOf returns the current balance of an account
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// CreditHook runs synchronously when an account receives value. A non-nil
// error fails the transfer after balances have been restored. Hooks are how
// tests model failing or reentrant receivers.
type CreditHook func(ctx context.Context, from common.Address, amount *big.Int) error
