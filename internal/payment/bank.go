package payment

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInsufficientFunds is returned when the source account cannot cover the
// transfer amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTransferRejected is returned when the receiving account's credit hook
// rejects the transfer.
var ErrTransferRejected = errors.New("transfer rejected by receiver")

// Bank is an in-process value ledger. It stands in for the external payment
// rail: per-account balances, synchronous settlement, and credit hooks that
// fire while a transfer is in flight, which is exactly the window a
// malicious receiver would use to reenter the registry.
type Bank struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	hooks    map[common.Address]CreditHook
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{
		balances: make(map[common.Address]*big.Int),
		hooks:    make(map[common.Address]CreditHook),
	}
}

// Deposit credits an account out of thin air. Used to seed balances.
func (b *Bank) Deposit(account common.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.credit(account, amount)
}

// SetCreditHook installs a hook invoked whenever the account is credited.
// A nil hook removes any existing one.
func (b *Bank) SetCreditHook(account common.Address, hook CreditHook) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if hook == nil {
		delete(b.hooks, account)
		return
	}
	b.hooks[account] = hook
}

// Transfer moves amount from one account to another. The receiver's credit
// hook, if any, runs outside the bank lock but before Transfer returns; a
// hook error reverses the movement and fails the transfer.
func (b *Bank) Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative transfer amount")
	}

	b.mu.Lock()
	balance, ok := b.balances[from]
	if !ok || balance.Cmp(amount) < 0 {
		b.mu.Unlock()
		return ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	b.credit(to, amount)
	hook := b.hooks[to]
	b.mu.Unlock()

	if hook == nil {
		return nil
	}
	if err := b.hook(ctx, hook, from, amount); err != nil {
		// receiver refused the credit: put the value back
		b.mu.Lock()
		b.balances[to].Sub(b.balances[to], amount)
		b.credit(from, amount)
		b.mu.Unlock()
		return errors.Join(ErrTransferRejected, err)
	}
	return nil
}

// BalanceOf returns the current balance of an account
func (b *Bank) BalanceOf(_ context.Context, account common.Address) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.balances[account]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(balance), nil
}

func (b *Bank) hook(ctx context.Context, hook CreditHook, from common.Address, amount *big.Int) error {
	return hook(ctx, from, new(big.Int).Set(amount))
}

// credit must be called with the bank lock held.
func (b *Bank) credit(account common.Address, amount *big.Int) {
	balance, ok := b.balances[account]
	if !ok {
		balance = new(big.Int)
		b.balances[account] = balance
	}
	balance.Add(balance, amount)
}
