package factory

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/addressbook"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/emitter"
	"github.com/namehaus/registrar/internal/ledger"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/payment"
	"github.com/namehaus/registrar/internal/pricing"
	"github.com/namehaus/registrar/internal/registry"
	"github.com/namehaus/registrar/internal/token"
)

// SharedConfig is the configuration every spawned registry is wired to.
// SetConfig replaces it wholesale; registries deployed earlier keep the
// wiring they were constructed with.
type SharedConfig struct {
	Book        addressbook.Book
	Records     *ledger.Log
	FeeReceiver common.Address
	// Fee is the flat namespace deployment fee; payments must match exactly
	Fee *big.Int
}

// Config holds the static factory configuration.
type Config struct {
	Shared SharedConfig
	// Admin may replace the shared configuration
	Admin common.Address
	// ExpirationPeriod is handed to every spawned registry
	ExpirationPeriod time.Duration
}

// Factory spawns namespace registries bound to a shared price table,
// address book, record ledger and fee receiver. At most one registry ever
// exists per label.
type Factory struct {
	account common.Address

	prices *pricing.Table
	bank   *payment.Bank
	clock  adapter.Clock
	events emitter.Emitter
	period time.Duration

	mu         sync.RWMutex
	shared     SharedConfig
	admin      common.Address
	registries map[string]*registry.Registry
}

// New creates a namespace factory.
func New(cfg Config, prices *pricing.Table, bank *payment.Bank, clock adapter.Clock, events emitter.Emitter) *Factory {
	return &Factory{
		account:    Account(),
		prices:     prices,
		bank:       bank,
		clock:      clock,
		events:     events,
		period:     cfg.ExpirationPeriod,
		shared:     cfg.Shared,
		admin:      cfg.Admin,
		registries: make(map[string]*registry.Registry),
	}
}

// Account returns the factory's settlement account.
func Account() common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("registrar:factory"))[12:])
}

// DeployNamespace spawns a registry for a fresh label. The payment must
// equal the configured fee exactly and is forwarded to the fee receiver in
// full; administration of the new registry goes to the caller.
func (f *Factory) DeployNamespace(ctx context.Context, name, symbol, label string, paid *big.Int, caller common.Address) (*registry.Registry, error) {
	f.mu.RLock()
	shared := f.shared
	_, taken := f.registries[label]
	f.mu.RUnlock()

	if taken {
		return nil, domain.ErrLabelTaken
	}
	if paid == nil || paid.Cmp(shared.Fee) != 0 {
		return nil, domain.ErrWrongFee
	}

	if err := f.bank.Transfer(ctx, caller, f.account, paid); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	if err := f.bank.Transfer(ctx, f.account, shared.FeeReceiver, paid); err != nil {
		f.compensate(ctx, caller, paid)
		return nil, fmt.Errorf("%w: fee forward: %v", domain.ErrTransferFailed, err)
	}

	reg := registry.New(registry.Config{
		Label:            label,
		TokenName:        name,
		TokenSymbol:      symbol,
		ExpirationPeriod: f.period,
		Admin:            caller,
		FeeReceiver:      shared.FeeReceiver,
	}, registry.Deps{
		Tokens:  token.NewMemoryLedger(name, symbol),
		Book:    shared.Book,
		Bank:    f.bank,
		Prices:  f.prices,
		Records: shared.Records,
		Clock:   f.clock,
		Emitter: f.events,
	})

	f.mu.Lock()
	if _, exists := f.registries[label]; exists {
		f.mu.Unlock()
		// lost the race to a concurrent deployment of the same label
		f.compensate(ctx, caller, paid)
		return nil, domain.ErrLabelTaken
	}
	f.registries[label] = reg
	f.mu.Unlock()

	now := f.clock.Now()
	event := domain.NewEvent(domain.EventTypeNamespaceDeployed, label, now)
	event.Owner = caller.Hex()
	event.Payment = paid.String()
	if f.events != nil {
		f.events.Emit(ctx, event)
	}

	return reg, nil
}

// Withdraw sweeps the factory's accumulated balance to the fee receiver.
// Only the fee receiver may call it.
func (f *Factory) Withdraw(ctx context.Context, caller common.Address) (*big.Int, error) {
	f.mu.RLock()
	receiver := f.shared.FeeReceiver
	f.mu.RUnlock()

	if caller != receiver {
		return nil, domain.ErrUnauthorized
	}

	balance, err := f.bank.BalanceOf(ctx, f.account)
	if err != nil {
		return nil, err
	}
	if balance.Sign() == 0 {
		return balance, nil
	}
	if err := f.bank.Transfer(ctx, f.account, receiver, balance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	return balance, nil
}

// SetConfig replaces the shared configuration wholesale. Administrative only.
func (f *Factory) SetConfig(shared SharedConfig, caller common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if caller != f.admin {
		return domain.ErrUnauthorized
	}
	f.shared = shared
	return nil
}

// SharedConfig returns the current shared configuration.
func (f *Factory) SharedConfig() SharedConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.shared
}

// GetNamespaceHandle returns the registry deployed for a label, if any.
func (f *Factory) GetNamespaceHandle(label string) (*registry.Registry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	reg, ok := f.registries[label]
	return reg, ok
}

// Labels returns the deployed namespace labels.
func (f *Factory) Labels() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	labels := make([]string, 0, len(f.registries))
	for label := range f.registries {
		labels = append(labels, label)
	}
	return labels
}

func (f *Factory) compensate(ctx context.Context, to common.Address, amount *big.Int) {
	if err := f.bank.Transfer(ctx, f.account, to, amount); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("to", to.Hex()),
			zap.String("amount", amount.String()),
		)
	}
}
