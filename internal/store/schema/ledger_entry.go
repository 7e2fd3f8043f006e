package schema

import (
	"time"
)

// LedgerEntry represents the ledger_entries table - the durable image of the
// append-only registration ledger. Rows are written once and never updated.
type LedgerEntry struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the ULID of the record_added event that produced this row
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// FullName is the registered name including the namespace suffix
	FullName string `gorm:"column:full_name;not null;type:text"`
	// Owner is the registrant's address at registration time
	Owner string `gorm:"column:owner;not null;type:text;index:idx_ledger_entries_owner"`
	// Source is the namespace label of the originating registry
	Source string `gorm:"column:source;not null;type:text;index:idx_ledger_entries_source"`
	// RegistrationDate is when the registration committed
	RegistrationDate time.Time `gorm:"column:registration_date;not null;type:timestamptz"`
	// ExpirationDate is the expiry assigned at registration time
	ExpirationDate time.Time `gorm:"column:expiration_date;not null;type:timestamptz"`
	// RegistrationPrice is the forwarded fee in base units (string to support up to 78 digits)
	RegistrationPrice string `gorm:"column:registration_price;not null;type:numeric(78,0)"`
	// CreatedAt is the timestamp when this row was archived
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
