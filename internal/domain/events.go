package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType identifies the kind of registrar event
type EventType string

const (
	// EventTypeDomainRegistered is emitted after a committed top-level registration
	EventTypeDomainRegistered EventType = "domain_registered"
	// EventTypeDomainRenewed is emitted after a committed renewal
	EventTypeDomainRenewed EventType = "domain_renewed"
	// EventTypeSubdomainCreated is emitted after a committed sub-name creation
	EventTypeSubdomainCreated EventType = "subdomain_created"
	// EventTypeResolverSet is emitted when a name's resolver is repointed
	EventTypeResolverSet EventType = "resolver_set"
	// EventTypeDomainBurned is emitted after an administrative burn
	EventTypeDomainBurned EventType = "domain_burned"
	// EventTypeRecordAdded is emitted when a ledger entry is appended
	EventTypeRecordAdded EventType = "record_added"
	// EventTypeNamespaceDeployed is emitted when the factory spawns a registry
	EventTypeNamespaceDeployed EventType = "namespace_deployed"
)

// Event is the normalized registrar event published to external indexers.
// Amounts are decimal strings in base units to survive JSON round-trips.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Namespace string    `json:"namespace"`
	FullName  string    `json:"full_name,omitempty"`
	NameHash  string    `json:"name_hash,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	Resolver  string    `json:"resolver,omitempty"`
	TokenID   uint64    `json:"token_id,omitempty"`
	Price     string    `json:"price,omitempty"`
	Refund    string    `json:"refund,omitempty"`
	Payment   string    `json:"payment,omitempty"`
	Expires   time.Time `json:"expires,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event stamped with a ULID derived from the given time,
// so event ids sort in emission order.
func NewEvent(eventType EventType, namespace string, at time.Time) Event {
	return Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		Namespace: namespace,
		Timestamp: at,
	}
}
