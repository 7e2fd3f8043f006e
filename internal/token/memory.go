package token

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/namehaus/registrar/internal/domain"
)

// memoryLedger is an in-process token ledger. Ids are allocated from a
// monotonic counter starting at 1; id 0 stays reserved.
type memoryLedger struct {
	// Name and Symbol are the collection metadata assigned at deployment
	name   string
	symbol string

	mu     sync.RWMutex
	next   domain.TokenID
	owners map[domain.TokenID]common.Address
}

// NewMemoryLedger creates an empty in-memory token ledger.
func NewMemoryLedger(name, symbol string) Ledger {
	return &memoryLedger{
		name:   name,
		symbol: symbol,
		next:   1,
		owners: make(map[domain.TokenID]common.Address),
	}
}

// Mint allocates a new token owned by the given address
func (l *memoryLedger) Mint(_ context.Context, owner common.Address) (domain.TokenID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.next
	l.next++
	l.owners[id] = owner
	return id, nil
}

// OwnerOf returns the current owner of a token
func (l *memoryLedger) OwnerOf(_ context.Context, id domain.TokenID) (common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return common.Address{}, domain.ErrNotFound
	}
	return owner, nil
}

// Burn permanently destroys a token
func (l *memoryLedger) Burn(_ context.Context, id domain.TokenID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[id]; !ok {
		return domain.ErrNotFound
	}
	delete(l.owners, id)
	return nil
}
