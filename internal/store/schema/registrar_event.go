package schema

import (
	"time"

	"gorm.io/datatypes"
)

// RegistrarEvent represents the registrar_events table - the raw archive of
// every event the registrar emitted, kept for external indexers and replay.
type RegistrarEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the event's ULID; ULIDs sort in emission order
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// Namespace is the label of the registry that emitted the event
	Namespace string `gorm:"column:namespace;not null;type:text;index:idx_registrar_events_namespace"`
	// Type is the event type (domain_registered, domain_renewed, ...)
	Type string `gorm:"column:type;not null;type:text"`
	// Raw contains the complete event payload as JSON
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// Timestamp is when the originating operation committed
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was archived
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RegistrarEvent model
func (RegistrarEvent) TableName() string {
	return "registrar_events"
}
