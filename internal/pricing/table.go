package pricing

import (
	"math/big"
	"sync"

	"github.com/namehaus/registrar/internal/domain"
)

// Table maps exact name lengths to registration prices. The tier set is
// small and ordered; lookups are linear exact matches and lengths with no
// configured tier are an error, never a default price.
type Table struct {
	mu    sync.RWMutex
	tiers []domain.PriceTier
}

// NewTable creates a price table preloaded with the given tiers. Duplicate
// lengths collapse to the last one listed.
func NewTable(tiers ...domain.PriceTier) *Table {
	t := &Table{}
	for _, tier := range tiers {
		t.Upsert(tier.Length, tier.Price)
	}
	return t
}

// PriceFor returns the price configured for the exact length.
// Returns ErrInvalidLength when no tier matches.
func (t *Table) PriceFor(length int) (*big.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, tier := range t.tiers {
		if tier.Length == length {
			return new(big.Int).Set(tier.Price), nil
		}
	}
	return nil, domain.ErrInvalidLength
}

// Upsert replaces the price for an existing length or appends a new tier.
func (t *Table) Upsert(length int, price *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	price = new(big.Int).Set(price)
	for i, tier := range t.tiers {
		if tier.Length == length {
			t.tiers[i].Price = price
			return
		}
	}
	t.tiers = append(t.tiers, domain.PriceTier{Length: length, Price: price})
}

// Tiers returns a snapshot of the configured tiers in insertion order.
func (t *Table) Tiers() []domain.PriceTier {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.PriceTier, len(t.tiers))
	for i, tier := range t.tiers {
		out[i] = domain.PriceTier{Length: tier.Length, Price: new(big.Int).Set(tier.Price)}
	}
	return out
}
