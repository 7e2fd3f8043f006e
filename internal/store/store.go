package store

import (
	"context"

	"github.com/namehaus/registrar/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store_mock.go -package=mocks

// LedgerEntryFilter narrows ledger entry queries. Zero values mean "no
// filter" for Owner and Source; Limit of 0 falls back to the store default.
type LedgerEntryFilter struct {
	Owner  string
	Source string
	Limit  int
	Offset uint64
}

// Store defines the interface for database operations
type Store interface {
	// CreateEvent archives a raw registrar event; duplicates are skipped
	CreateEvent(ctx context.Context, event schema.RegistrarEvent) error
	// CreateLedgerEntry appends a registration ledger entry; duplicates are skipped
	CreateLedgerEntry(ctx context.Context, entry schema.LedgerEntry) error
	// CreateNamespace records a deployed namespace
	CreateNamespace(ctx context.Context, namespace schema.Namespace) error
	// UpsertDomainRecord creates or refreshes the snapshot row for a name hash
	UpsertDomainRecord(ctx context.Context, record schema.DomainRecord) error
	// UpdateDomainExpiry moves the expiry of an archived record
	UpdateDomainExpiry(ctx context.Context, nameHash string, record schema.DomainRecord) error
	// UpdateDomainResolver repoints the resolver of an archived record
	UpdateDomainResolver(ctx context.Context, nameHash string, resolver string) error
	// MarkDomainBurned flags an archived record as destroyed
	MarkDomainBurned(ctx context.Context, nameHash string) error
	// GetLedgerEntries retrieves archived ledger entries with total count
	GetLedgerEntries(ctx context.Context, filter LedgerEntryFilter) ([]schema.LedgerEntry, uint64, error)
	// GetDomainRecordByHash retrieves the archived snapshot for a name hash
	GetDomainRecordByHash(ctx context.Context, nameHash string) (*schema.DomainRecord, error)
	// GetNamespaces retrieves all archived namespaces
	GetNamespaces(ctx context.Context) ([]schema.Namespace, error)
}
