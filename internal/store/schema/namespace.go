package schema

import (
	"time"
)

// Namespace represents the namespaces table - one row per registry the
// factory has spawned. Labels are unique for the lifetime of the system.
type Namespace struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Label is the namespace label ("haus" in "alice.haus")
	Label string `gorm:"column:label;not null;uniqueIndex;type:text"`
	// DeployedBy is the caller that paid for the deployment and received
	// administration of the registry
	DeployedBy string `gorm:"column:deployed_by;not null;type:text"`
	// DeployFee is the fee paid, in base units
	DeployFee string `gorm:"column:deploy_fee;not null;type:numeric(78,0)"`
	// DeployedAt is when the namespace was deployed
	DeployedAt time.Time `gorm:"column:deployed_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was archived
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Namespace model
func (Namespace) TableName() string {
	return "namespaces"
}
