package store

import (
	"context"
	"fmt"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/store/schema"
)

// Archiver mirrors registrar events into the PostgreSQL archive. It is wired
// as an emitter sink next to the NATS publisher, so every committed operation
// leaves both a queryable snapshot and a raw event row behind.
type Archiver struct {
	store Store
	json  adapter.JSON
}

// NewArchiver creates an archiver backed by the given store.
func NewArchiver(store Store, json adapter.JSON) *Archiver {
	return &Archiver{
		store: store,
		json:  json,
	}
}

// HandleEvent archives a single registrar event. The raw event is stored
// first; the per-type projection follows. Both paths are idempotent, so a
// redelivered event never duplicates rows.
func (a *Archiver) HandleEvent(ctx context.Context, event domain.Event) error {
	raw, err := a.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	if err := a.store.CreateEvent(ctx, schema.RegistrarEvent{
		EventID:   event.ID,
		Namespace: event.Namespace,
		Type:      string(event.Type),
		Raw:       raw,
		Timestamp: event.Timestamp,
	}); err != nil {
		return err
	}

	switch event.Type {
	case domain.EventTypeDomainRegistered, domain.EventTypeSubdomainCreated:
		return a.store.UpsertDomainRecord(ctx, schema.DomainRecord{
			Namespace: event.Namespace,
			NameHash:  event.NameHash,
			FullName:  event.FullName,
			Owner:     event.Owner,
			Resolver:  event.Resolver,
			TokenID:   event.TokenID,
			Expires:   event.Expires,
		})
	case domain.EventTypeDomainRenewed:
		return a.store.UpdateDomainExpiry(ctx, event.NameHash, schema.DomainRecord{
			Expires: event.Expires,
		})
	case domain.EventTypeResolverSet:
		return a.store.UpdateDomainResolver(ctx, event.NameHash, event.Resolver)
	case domain.EventTypeDomainBurned:
		return a.store.MarkDomainBurned(ctx, event.NameHash)
	case domain.EventTypeRecordAdded:
		return a.store.CreateLedgerEntry(ctx, schema.LedgerEntry{
			EventID:           event.ID,
			FullName:          event.FullName,
			Owner:             event.Owner,
			Source:            event.Namespace,
			RegistrationDate:  event.Timestamp,
			ExpirationDate:    event.Expires,
			RegistrationPrice: event.Price,
		})
	case domain.EventTypeNamespaceDeployed:
		return a.store.CreateNamespace(ctx, schema.Namespace{
			Label:      event.Namespace,
			DeployedBy: event.Owner,
			DeployFee:  event.Payment,
			DeployedAt: event.Timestamp,
		})
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
