package payment_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namehaus/registrar/internal/payment"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func balance(t *testing.T, bank *payment.Bank, account common.Address) *big.Int {
	t.Helper()
	b, err := bank.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return b
}

func TestBank_Transfer(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(30))
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(70), balance(t, bank, alice))
	assert.Equal(t, big.NewInt(30), balance(t, bank, bob))
}

func TestBank_Transfer_InsufficientFunds(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(10))

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(30))
	assert.ErrorIs(t, err, payment.ErrInsufficientFunds)

	// a failed transfer leaves balances untouched
	assert.Equal(t, big.NewInt(10), balance(t, bank, alice))
	assert.Equal(t, big.NewInt(0), balance(t, bank, bob))
}

func TestBank_Transfer_UnknownAccount(t *testing.T) {
	bank := payment.NewBank()

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(1))
	assert.ErrorIs(t, err, payment.ErrInsufficientFunds)
}

func TestBank_Transfer_NegativeAmount(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(-1))
	assert.Error(t, err)
	assert.Equal(t, big.NewInt(100), balance(t, bank, alice))
}

func TestBank_Transfer_ZeroAmount(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), balance(t, bank, alice))
}

func TestBank_CreditHook_Observes(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	var hookFrom common.Address
	var hookAmount *big.Int
	bank.SetCreditHook(bob, func(_ context.Context, from common.Address, amount *big.Int) error {
		hookFrom = from
		hookAmount = amount
		return nil
	})

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(25))
	require.NoError(t, err)
	assert.Equal(t, alice, hookFrom)
	assert.Equal(t, big.NewInt(25), hookAmount)
	assert.Equal(t, big.NewInt(25), balance(t, bank, bob))
}

func TestBank_CreditHook_RejectionReverses(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	hookErr := errors.New("no thanks")
	bank.SetCreditHook(bob, func(context.Context, common.Address, *big.Int) error {
		return hookErr
	})

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(25))
	assert.ErrorIs(t, err, payment.ErrTransferRejected)
	assert.ErrorIs(t, err, hookErr)

	// the rejected credit is put back
	assert.Equal(t, big.NewInt(100), balance(t, bank, alice))
	assert.Equal(t, big.NewInt(0), balance(t, bank, bob))
}

func TestBank_CreditHook_Remove(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	bank.SetCreditHook(bob, func(context.Context, common.Address, *big.Int) error {
		return errors.New("reject")
	})
	bank.SetCreditHook(bob, nil)

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(25))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(25), balance(t, bank, bob))
}

func TestBank_CreditHook_ReentrantTransfer(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	// hooks run outside the bank lock, so a hook may itself transfer
	bank.SetCreditHook(bob, func(ctx context.Context, _ common.Address, amount *big.Int) error {
		return bank.Transfer(ctx, bob, alice, amount)
	})

	err := bank.Transfer(context.Background(), alice, bob, big.NewInt(25))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), balance(t, bank, alice))
	assert.Equal(t, big.NewInt(0), balance(t, bank, bob))
}

func TestBank_BalanceOf_ReturnsCopy(t *testing.T) {
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	b := balance(t, bank, alice)
	b.SetInt64(0)

	assert.Equal(t, big.NewInt(100), balance(t, bank, alice))
}
