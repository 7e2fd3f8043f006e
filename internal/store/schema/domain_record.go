package schema

import (
	"time"
)

// DomainRecord represents the domain_records table - the durable snapshot of
// live per-name registry state. Unlike ledger_entries it is mutated in
// place: renewals move the expiry, resolver changes repoint the resolver and
// burns flag the row.
type DomainRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Namespace is the owning registry's label
	Namespace string `gorm:"column:namespace;not null;type:text;index:idx_domain_records_namespace"`
	// NameHash is the 32-byte name identifier in hex
	NameHash string `gorm:"column:name_hash;not null;uniqueIndex;type:text"`
	// FullName is the complete name including the namespace suffix
	FullName string `gorm:"column:full_name;not null;type:text"`
	// Owner is the current token holder's address
	Owner string `gorm:"column:owner;not null;type:text;index:idx_domain_records_owner"`
	// Resolver is the address the name currently routes to
	Resolver string `gorm:"column:resolver;not null;type:text"`
	// TokenID is the bound ownership token (0 after a burn)
	TokenID uint64 `gorm:"column:token_id;not null"`
	// Expires is the current expiry timestamp
	Expires time.Time `gorm:"column:expires;not null;type:timestamptz"`
	// Burned indicates the record was administratively destroyed
	Burned bool `gorm:"column:burned;not null;default:false"`
	// CreatedAt is the timestamp when this row was first archived
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DomainRecord model
func (DomainRecord) TableName() string {
	return "domain_records"
}
