package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/namehaus/registrar/internal/store/schema"
)

const defaultQueryLimit = 50

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the archive tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.RegistrarEvent{},
		&schema.LedgerEntry{},
		&schema.Namespace{},
		&schema.DomainRecord{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateEvent archives a raw registrar event. Re-delivered events are skipped
// based on the event ULID.
func (s *pgStore) CreateEvent(ctx context.Context, event schema.RegistrarEvent) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&event).Error
	if err != nil {
		return fmt.Errorf("failed to create registrar event: %w", err)
	}
	return nil
}

// CreateLedgerEntry appends a registration ledger entry. Re-delivered entries
// are skipped based on the producing event's ULID.
func (s *pgStore) CreateLedgerEntry(ctx context.Context, entry schema.LedgerEntry) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// CreateNamespace records a deployed namespace
func (s *pgStore) CreateNamespace(ctx context.Context, namespace schema.Namespace) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "label"}},
		DoNothing: true,
	}).Create(&namespace).Error
	if err != nil {
		return fmt.Errorf("failed to create namespace: %w", err)
	}
	return nil
}

// UpsertDomainRecord creates or refreshes the snapshot row for a name hash
func (s *pgStore) UpsertDomainRecord(ctx context.Context, record schema.DomainRecord) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "resolver", "token_id", "expires", "burned", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert domain record: %w", err)
	}
	return nil
}

// UpdateDomainExpiry moves the expiry of an archived record
func (s *pgStore) UpdateDomainExpiry(ctx context.Context, nameHash string, record schema.DomainRecord) error {
	err := s.db.WithContext(ctx).Model(&schema.DomainRecord{}).
		Where("name_hash = ?", nameHash).
		Updates(map[string]interface{}{
			"expires":    record.Expires,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update domain expiry: %w", err)
	}
	return nil
}

// UpdateDomainResolver repoints the resolver of an archived record
func (s *pgStore) UpdateDomainResolver(ctx context.Context, nameHash string, resolver string) error {
	err := s.db.WithContext(ctx).Model(&schema.DomainRecord{}).
		Where("name_hash = ?", nameHash).
		Updates(map[string]interface{}{
			"resolver":   resolver,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update domain resolver: %w", err)
	}
	return nil
}

// MarkDomainBurned flags an archived record as destroyed and detaches its token
func (s *pgStore) MarkDomainBurned(ctx context.Context, nameHash string) error {
	err := s.db.WithContext(ctx).Model(&schema.DomainRecord{}).
		Where("name_hash = ?", nameHash).
		Updates(map[string]interface{}{
			"burned":     true,
			"token_id":   0,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark domain burned: %w", err)
	}
	return nil
}

// GetLedgerEntries retrieves archived ledger entries with total count
func (s *pgStore) GetLedgerEntries(ctx context.Context, filter LedgerEntryFilter) ([]schema.LedgerEntry, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.LedgerEntry{})

	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query = query.Order("id ASC").Limit(limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var entries []schema.LedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	return entries, uint64(total), nil //nolint:gosec,G115
}

// GetDomainRecordByHash retrieves the archived snapshot for a name hash
func (s *pgStore) GetDomainRecordByHash(ctx context.Context, nameHash string) (*schema.DomainRecord, error) {
	var record schema.DomainRecord
	err := s.db.WithContext(ctx).Where("name_hash = ?", nameHash).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get domain record: %w", err)
	}
	return &record, nil
}

// GetNamespaces retrieves all archived namespaces
func (s *pgStore) GetNamespaces(ctx context.Context) ([]schema.Namespace, error) {
	var namespaces []schema.Namespace
	err := s.db.WithContext(ctx).Order("id ASC").Find(&namespaces).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get namespaces: %w", err)
	}
	return namespaces, nil
}
