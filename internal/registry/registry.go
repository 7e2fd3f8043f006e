package registry

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
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
	"github.com/namehaus/registrar/internal/naming"
	"github.com/namehaus/registrar/internal/pricing"
	"github.com/namehaus/registrar/internal/token"
)

// Config holds the static configuration of one namespace registry.
type Config struct {
	// Label is the namespace label ("haus" in "alice.haus")
	Label string
	// TokenName and TokenSymbol are the collection metadata of the
	// namespace's token ledger
	TokenName   string
	TokenSymbol string
	// ExpirationPeriod is added to now on registration and to the stored
	// expiry on renewal
	ExpirationPeriod time.Duration
	// Admin may burn names, change prices and hand over administration
	Admin common.Address
	// FeeReceiver receives the exact price of every registration and renewal
	FeeReceiver common.Address
}

// Deps holds the collaborators a registry operates against.
type Deps struct {
	Tokens  token.Ledger
	Book    addressbook.Book
	Bank    paymentTransferor
	Prices  *pricing.Table
	Records *ledger.Log
	Clock   adapter.Clock
	Emitter emitter.Emitter
}

// paymentTransferor is the slice of payment.Transferor the registry needs.
type paymentTransferor interface {
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error
}

// Registry is the per-namespace naming state machine. Every state-changing
// operation is all-or-nothing: value transfers run first and are compensated
// on partial failure, token allocation and record writes commit only after
// all transfers settled, and the append-only record ledger is fed strictly
// post-commit.
type Registry struct {
	cfg     Config
	account common.Address

	tokens  token.Ledger
	book    addressbook.Book
	bank    paymentTransferor
	prices  *pricing.Table
	records *ledger.Log
	clock   adapter.Clock
	events  emitter.Emitter

	// busy guards the whole span of a paying operation, including the
	// in-flight external transfers. A nested or overlapping call observes
	// ErrReentrancyBlocked instead of a deadlock.
	busy atomic.Bool

	mu          sync.RWMutex
	admin       common.Address
	domains     map[common.Hash]domain.DomainRecord
	tokenByHash map[common.Hash]domain.TokenID
	hashByToken map[domain.TokenID]common.Hash
}

// New creates a registry for one namespace.
func New(cfg Config, deps Deps) *Registry {
	return &Registry{
		cfg:         cfg,
		account:     AccountForLabel(cfg.Label),
		tokens:      deps.Tokens,
		book:        deps.Book,
		bank:        deps.Bank,
		prices:      deps.Prices,
		records:     deps.Records,
		clock:       deps.Clock,
		events:      deps.Emitter,
		admin:       cfg.Admin,
		domains:     make(map[common.Hash]domain.DomainRecord),
		tokenByHash: make(map[common.Hash]domain.TokenID),
		hashByToken: make(map[domain.TokenID]common.Hash),
	}
}

// AccountForLabel derives the settlement account a registry collects
// payments into before forwarding and refunding.
func AccountForLabel(label string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("registry:" + label))[12:])
}

// Label returns the namespace label.
func (r *Registry) Label() string {
	return r.cfg.Label
}

// Account returns the registry's settlement account.
func (r *Registry) Account() common.Address {
	return r.account
}

// ExpirationPeriod returns the configured registration period.
func (r *Registry) ExpirationPeriod() time.Duration {
	return r.cfg.ExpirationPeriod
}

// Admin returns the current administrator.
func (r *Registry) Admin() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admin
}

// RegisterDomain registers a top-level name for the caller. The payment must
// cover the length-tiered price; the price is forwarded to the fee receiver
// and any overpayment refunded. On success the caller holds a fresh
// ownership token, the record resolves to the caller, and a ledger entry is
// appended.
func (r *Registry) RegisterDomain(ctx context.Context, name string, payment *big.Int, caller common.Address) (*domain.RegistrationResult, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrReentrancyBlocked
	}
	defer r.busy.Store(false)

	canonical := naming.Canonicalize(name)
	hash := naming.Hash(canonical, r.cfg.Label)

	r.mu.RLock()
	_, taken := r.tokenByHash[hash]
	r.mu.RUnlock()
	if taken {
		return nil, domain.ErrAlreadyRegistered
	}

	price, err := r.prices.PriceFor(len(canonical))
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.Cmp(price) < 0 {
		return nil, domain.ErrInsufficientPayment
	}
	refund := new(big.Int).Sub(payment, price)

	if err := r.settle(ctx, caller, price, refund); err != nil {
		return nil, err
	}

	tokenID, err := r.tokens.Mint(ctx, caller)
	if err != nil {
		r.unwindForward(ctx, caller, price, refund)
		return nil, fmt.Errorf("failed to mint ownership token: %w", err)
	}

	if err := r.book.LinkName(ctx, hash, caller); err != nil {
		if burnErr := r.tokens.Burn(ctx, tokenID); burnErr != nil {
			logger.ErrorCtx(ctx, burnErr, zap.Uint64("token_id", uint64(tokenID)))
		}
		r.unwindForward(ctx, caller, price, refund)
		return nil, fmt.Errorf("failed to link name to owner: %w", err)
	}

	now := r.clock.Now()
	expires := now.Add(r.cfg.ExpirationPeriod)

	r.mu.Lock()
	r.domains[hash] = domain.DomainRecord{
		Name:     canonical,
		Resolver: caller,
		Expires:  expires,
	}
	r.tokenByHash[hash] = tokenID
	r.hashByToken[tokenID] = hash
	r.mu.Unlock()

	fullName := naming.FullName(canonical, r.cfg.Label)
	r.records.Append(domain.LedgerEntry{
		FullName:          fullName,
		Owner:             caller,
		RegistrationDate:  now,
		ExpirationDate:    expires,
		RegistrationPrice: price,
		Source:            r.cfg.Label,
	})

	r.emitDomainEvent(ctx, domain.EventTypeDomainRegistered, fullName, hash, caller, tokenID, price, refund, expires, now)
	r.emitDomainEvent(ctx, domain.EventTypeRecordAdded, fullName, hash, caller, tokenID, price, nil, expires, now)

	return &domain.RegistrationResult{
		TokenID:  tokenID,
		NameHash: hash,
		FullName: fullName,
		Owner:    caller,
		Price:    price,
		Refund:   refund,
		Expires:  expires,
	}, nil
}

// RenewDomain extends a name's expiry by the configured period. Only the
// ownership-token holder may renew. The extension is additive: renewing an
// already expired name adds the period to the stale timestamp rather than
// restarting from now.
func (r *Registry) RenewDomain(ctx context.Context, name string, payment *big.Int, caller common.Address) (*domain.RegistrationResult, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrReentrancyBlocked
	}
	defer r.busy.Store(false)

	canonical := naming.Canonicalize(name)
	hash := naming.Hash(canonical, r.cfg.Label)

	tokenID, err := r.requireOwner(ctx, hash, caller)
	if err != nil {
		return nil, err
	}

	price, err := r.prices.PriceFor(len(canonical))
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.Cmp(price) < 0 {
		return nil, domain.ErrInsufficientPayment
	}
	refund := new(big.Int).Sub(payment, price)

	if err := r.settle(ctx, caller, price, refund); err != nil {
		return nil, err
	}

	now := r.clock.Now()

	r.mu.Lock()
	record := r.domains[hash]
	record.Expires = record.Expires.Add(r.cfg.ExpirationPeriod)
	r.domains[hash] = record
	expires := record.Expires
	r.mu.Unlock()

	fullName := naming.FullName(canonical, r.cfg.Label)
	r.emitDomainEvent(ctx, domain.EventTypeDomainRenewed, fullName, hash, caller, tokenID, price, refund, expires, now)

	return &domain.RegistrationResult{
		TokenID:  tokenID,
		NameHash: hash,
		FullName: fullName,
		Owner:    caller,
		Price:    price,
		Refund:   refund,
		Expires:  expires,
	}, nil
}

// CreateSubDomain creates a sub-name under a name the caller owns. The new
// token is minted for the designated owner, which need not be the caller.
// No payment is collected and no ledger entry is appended.
func (r *Registry) CreateSubDomain(ctx context.Context, parentName, subName string, owner, caller common.Address) (*domain.RegistrationResult, error) {
	parentCanonical := naming.Canonicalize(parentName)
	parentHash := naming.Hash(parentCanonical, r.cfg.Label)

	if _, err := r.requireOwner(ctx, parentHash, caller); err != nil {
		return nil, err
	}

	subCanonical := naming.Canonicalize(subName)
	subHash := naming.SubHash(parentHash, subCanonical)

	r.mu.RLock()
	_, taken := r.tokenByHash[subHash]
	r.mu.RUnlock()
	if taken {
		return nil, domain.ErrAlreadyRegistered
	}

	tokenID, err := r.tokens.Mint(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to mint ownership token: %w", err)
	}

	if err := r.book.LinkName(ctx, subHash, owner); err != nil {
		if burnErr := r.tokens.Burn(ctx, tokenID); burnErr != nil {
			logger.ErrorCtx(ctx, burnErr, zap.Uint64("token_id", uint64(tokenID)))
		}
		return nil, fmt.Errorf("failed to link name to owner: %w", err)
	}

	now := r.clock.Now()
	expires := now.Add(r.cfg.ExpirationPeriod)
	recordName := subCanonical + "." + parentCanonical

	r.mu.Lock()
	r.domains[subHash] = domain.DomainRecord{
		Name:     recordName,
		Resolver: owner,
		Expires:  expires,
	}
	r.tokenByHash[subHash] = tokenID
	r.hashByToken[tokenID] = subHash
	r.mu.Unlock()

	fullName := recordName + "." + r.cfg.Label
	r.emitDomainEvent(ctx, domain.EventTypeSubdomainCreated, fullName, subHash, owner, tokenID, nil, nil, expires, now)

	return &domain.RegistrationResult{
		TokenID:  tokenID,
		NameHash: subHash,
		FullName: fullName,
		Owner:    owner,
		Expires:  expires,
	}, nil
}

// SetResolver repoints a name's resolver. Only the token holder may do so.
func (r *Registry) SetResolver(ctx context.Context, name string, resolver, caller common.Address) error {
	canonical := naming.Canonicalize(name)
	hash := naming.Hash(canonical, r.cfg.Label)

	tokenID, err := r.requireOwner(ctx, hash, caller)
	if err != nil {
		return err
	}

	r.mu.Lock()
	record := r.domains[hash]
	record.Resolver = resolver
	r.domains[hash] = record
	r.mu.Unlock()

	now := r.clock.Now()
	event := domain.NewEvent(domain.EventTypeResolverSet, r.cfg.Label, now)
	event.FullName = naming.FullName(canonical, r.cfg.Label)
	event.NameHash = hash.Hex()
	event.Resolver = resolver.Hex()
	event.Owner = caller.Hex()
	event.TokenID = uint64(tokenID)
	r.emit(ctx, event)

	return nil
}

// SetPrimaryDomain marks a registered name the caller owns as the caller's
// primary display name in the shared address book.
func (r *Registry) SetPrimaryDomain(ctx context.Context, name string, caller common.Address) error {
	hash := naming.Hash(naming.Canonicalize(name), r.cfg.Label)

	if _, err := r.requireOwner(ctx, hash, caller); err != nil {
		return err
	}
	return r.book.SetPrimaryName(ctx, caller, hash)
}

// GetDomainPrice returns the registration price for a name's length.
func (r *Registry) GetDomainPrice(name string) (*big.Int, error) {
	return r.prices.PriceFor(len(naming.Canonicalize(name)))
}

// GenerateHash returns the namespace-scoped identifier of a name.
func (r *Registry) GenerateHash(name string) common.Hash {
	return naming.Hash(name, r.cfg.Label)
}

// GetExpiration returns a name's expiry timestamp.
func (r *Registry) GetExpiration(name string) (time.Time, error) {
	record, err := r.record(name)
	if err != nil {
		return time.Time{}, err
	}
	return record.Expires, nil
}

// GetResolver returns a name's resolver regardless of expiry.
func (r *Registry) GetResolver(name string) (common.Address, error) {
	record, err := r.record(name)
	if err != nil {
		return common.Address{}, err
	}
	return record.Resolver, nil
}

// Resolve returns a name's resolver only while the registration is live;
// expired names resolve as absent even though their records persist.
func (r *Registry) Resolve(name string) (common.Address, error) {
	record, err := r.record(name)
	if err != nil {
		return common.Address{}, err
	}
	if !record.Active(r.clock.Now()) {
		return common.Address{}, domain.ErrNotFound
	}
	return record.Resolver, nil
}

// GetRecord returns a name's record and ownership token id.
func (r *Registry) GetRecord(name string) (domain.DomainRecord, domain.TokenID, error) {
	hash := naming.Hash(naming.Canonicalize(name), r.cfg.Label)

	r.mu.RLock()
	defer r.mu.RUnlock()

	tokenID, ok := r.tokenByHash[hash]
	if !ok {
		return domain.DomainRecord{}, domain.TokenIDNone, domain.ErrNotFound
	}
	return r.domains[hash], tokenID, nil
}

// DomainOwner returns the current holder of a name's ownership token.
func (r *Registry) DomainOwner(ctx context.Context, name string) (common.Address, error) {
	hash := naming.Hash(naming.Canonicalize(name), r.cfg.Label)

	r.mu.RLock()
	tokenID, ok := r.tokenByHash[hash]
	r.mu.RUnlock()
	if !ok || !tokenID.Valid() {
		return common.Address{}, domain.ErrNotFound
	}
	return r.tokens.OwnerOf(ctx, tokenID)
}

// CheckOwnership reports whether the caller holds the token bound to the
// name's hash.
func (r *Registry) CheckOwnership(ctx context.Context, name string, caller common.Address) (bool, error) {
	hash := naming.Hash(naming.Canonicalize(name), r.cfg.Label)

	r.mu.RLock()
	tokenID, ok := r.tokenByHash[hash]
	r.mu.RUnlock()
	if !ok || !tokenID.Valid() {
		return false, nil
	}

	owner, err := r.tokens.OwnerOf(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return owner == caller, nil
}

// BurnDomain destroys a name's token and record. Administrative only. The
// historical ledger entry survives.
func (r *Registry) BurnDomain(ctx context.Context, name string, caller common.Address) error {
	if caller != r.Admin() {
		return domain.ErrUnauthorized
	}

	canonical := naming.Canonicalize(name)
	hash := naming.Hash(canonical, r.cfg.Label)

	r.mu.Lock()
	tokenID, ok := r.tokenByHash[hash]
	if !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.tokenByHash, hash)
	delete(r.hashByToken, tokenID)
	delete(r.domains, hash)
	r.mu.Unlock()

	if err := r.tokens.Burn(ctx, tokenID); err != nil {
		logger.ErrorCtx(ctx, err, zap.Uint64("token_id", uint64(tokenID)))
	}

	now := r.clock.Now()
	event := domain.NewEvent(domain.EventTypeDomainBurned, r.cfg.Label, now)
	event.FullName = naming.FullName(canonical, r.cfg.Label)
	event.NameHash = hash.Hex()
	event.TokenID = uint64(tokenID)
	r.emit(ctx, event)

	return nil
}

// SetPriceConfig upserts a price tier. Administrative only. The price table
// is shared with every registry spawned from the same factory.
func (r *Registry) SetPriceConfig(length int, price *big.Int, caller common.Address) error {
	if caller != r.Admin() {
		return domain.ErrUnauthorized
	}
	r.prices.Upsert(length, price)
	return nil
}

// TransferAdmin hands administration to a new address.
func (r *Registry) TransferAdmin(newAdmin, caller common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.admin {
		return domain.ErrUnauthorized
	}
	r.admin = newAdmin
	return nil
}

// requireOwner resolves the live token for a hash and checks the caller
// holds it. Returns ErrNotFound for unregistered names.
func (r *Registry) requireOwner(ctx context.Context, hash common.Hash, caller common.Address) (domain.TokenID, error) {
	r.mu.RLock()
	tokenID, ok := r.tokenByHash[hash]
	r.mu.RUnlock()
	if !ok || !tokenID.Valid() {
		return domain.TokenIDNone, domain.ErrNotFound
	}

	owner, err := r.tokens.OwnerOf(ctx, tokenID)
	if err != nil {
		return domain.TokenIDNone, err
	}
	if owner != caller {
		return domain.TokenIDNone, domain.ErrNotOwner
	}
	return tokenID, nil
}

// settle pulls the full payment from the payer, forwards exactly the price
// to the fee receiver and refunds the remainder. Any failing leg unwinds the
// ones that already settled so a failed operation leaves balances untouched.
func (r *Registry) settle(ctx context.Context, payer common.Address, price, refund *big.Int) error {
	payment := new(big.Int).Add(price, refund)

	if err := r.bank.Transfer(ctx, payer, r.account, payment); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	if err := r.bank.Transfer(ctx, r.account, r.cfg.FeeReceiver, price); err != nil {
		r.compensate(ctx, r.account, payer, payment)
		return fmt.Errorf("%w: fee forward: %v", domain.ErrTransferFailed, err)
	}

	if refund.Sign() > 0 {
		if err := r.bank.Transfer(ctx, r.account, payer, refund); err != nil {
			r.compensate(ctx, r.cfg.FeeReceiver, payer, price)
			r.compensate(ctx, r.account, payer, refund)
			return fmt.Errorf("%w: refund: %v", domain.ErrTransferFailed, err)
		}
	}

	return nil
}

// unwindForward reverses a fully settled payment after a post-transfer step
// failed: the forwarded price comes back from the fee receiver and any
// refund already returned stays with the payer.
func (r *Registry) unwindForward(ctx context.Context, payer common.Address, price, refund *big.Int) {
	_ = refund
	r.compensate(ctx, r.cfg.FeeReceiver, payer, price)
}

func (r *Registry) compensate(ctx context.Context, from, to common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	if err := r.bank.Transfer(ctx, from, to, amount); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("from", from.Hex()),
			zap.String("to", to.Hex()),
			zap.String("amount", amount.String()),
		)
	}
}

func (r *Registry) emitDomainEvent(ctx context.Context, eventType domain.EventType, fullName string, hash common.Hash, owner common.Address, tokenID domain.TokenID, price, refund *big.Int, expires, now time.Time) {
	event := domain.NewEvent(eventType, r.cfg.Label, now)
	event.FullName = fullName
	event.NameHash = hash.Hex()
	event.Owner = owner.Hex()
	event.TokenID = uint64(tokenID)
	event.Expires = expires
	if price != nil {
		event.Price = price.String()
	}
	if refund != nil {
		event.Refund = refund.String()
	}
	r.emit(ctx, event)
}

func (r *Registry) emit(ctx context.Context, event domain.Event) {
	if r.events == nil {
		return
	}
	r.events.Emit(ctx, event)
}

// record returns the domain record for a name.
func (r *Registry) record(name string) (domain.DomainRecord, error) {
	hash := naming.Hash(naming.Canonicalize(name), r.cfg.Label)

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.domains[hash]
	if !ok {
		return domain.DomainRecord{}, domain.ErrNotFound
	}
	return record, nil
}
