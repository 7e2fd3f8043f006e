package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/namehaus/registrar/internal/domain"
)

// Log is the append-only historical record of completed top-level
// registrations. Entries are immutable once appended: later renewals, burns
// and resolver changes never touch them. Two secondary indices (by owner and
// by originating namespace) hold entry positions in insertion order.
type Log struct {
	mu       sync.RWMutex
	entries  []domain.LedgerEntry
	byOwner  map[common.Address][]int
	bySource map[string][]int
}

// NewLog creates an empty record ledger.
func NewLog() *Log {
	return &Log{
		byOwner:  make(map[common.Address][]int),
		bySource: make(map[string][]int),
	}
}

// Append adds an entry to the master log and both secondary indices.
// Returns the entry's position.
func (l *Log) Append(entry domain.LedgerEntry) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.RegistrationPrice = new(big.Int).Set(entry.RegistrationPrice)
	idx := len(l.entries)
	l.entries = append(l.entries, entry)
	l.byOwner[entry.Owner] = append(l.byOwner[entry.Owner], idx)
	l.bySource[entry.Source] = append(l.bySource[entry.Source], idx)
	return idx
}

// Len returns the number of entries in the master log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// All returns every entry in insertion order.
func (l *Log) All() []domain.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LedgerEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// At returns the entry at the given position.
// Returns domain.ErrNotFound when the index is out of bounds.
func (l *Log) At(index int) (domain.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.entries) {
		return domain.LedgerEntry{}, domain.ErrNotFound
	}
	return copyEntry(l.entries[index]), nil
}

// ByOwner returns the owner's entries in registration order.
func (l *Log) ByOwner(owner common.Address) []domain.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.project(l.byOwner[owner])
}

// BySource returns the entries produced by one namespace in registration order.
func (l *Log) BySource(source string) []domain.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.project(l.bySource[source])
}

// project must be called with the log lock held.
func (l *Log) project(indices []int) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(indices))
	for i, idx := range indices {
		out[i] = copyEntry(l.entries[idx])
	}
	return out
}

func copyEntry(e domain.LedgerEntry) domain.LedgerEntry {
	e.RegistrationPrice = new(big.Int).Set(e.RegistrationPrice)
	return e
}
