package addressbook

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/namehaus/registrar/internal/domain"
)

// memoryBook is an in-process address book shared by all registries spawned
// from one factory.
type memoryBook struct {
	mu      sync.RWMutex
	owners  map[common.Hash]common.Address
	primary map[common.Address]common.Hash
}

// NewMemoryBook creates an empty in-memory address book.
func NewMemoryBook() Book {
	return &memoryBook{
		owners:  make(map[common.Hash]common.Address),
		primary: make(map[common.Address]common.Hash),
	}
}

// LinkName records that a name hash is owned by the given address
func (b *memoryBook) LinkName(_ context.Context, nameHash common.Hash, owner common.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.owners[nameHash] = owner
	return nil
}

// SetPrimaryName marks the name hash as the owner's primary display name
func (b *memoryBook) SetPrimaryName(_ context.Context, owner common.Address, nameHash common.Hash) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.primary[owner] = nameHash
	return nil
}

// PrimaryNameOf returns the owner's primary name hash
func (b *memoryBook) PrimaryNameOf(_ context.Context, owner common.Address) (common.Hash, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hash, ok := b.primary[owner]
	if !ok {
		return common.Hash{}, domain.ErrNotFound
	}
	return hash, nil
}
