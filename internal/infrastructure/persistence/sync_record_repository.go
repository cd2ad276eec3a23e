package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// GormSyncRecordRepository implements SyncRecordRepository using GORM
type GormSyncRecordRepository struct {
	db *gorm.DB
}

// NewGormSyncRecordRepository creates a new GormSyncRecordRepository
func NewGormSyncRecordRepository(db *gorm.DB) *GormSyncRecordRepository {
	return &GormSyncRecordRepository{db: db}
}

// Save creates or updates a record keyed by marketplace order id. A rerun
// that sees the same marketplace order overwrites the earlier outcome.
func (r *GormSyncRecordRepository) Save(ctx context.Context, record *ordersync.SyncRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "marketplace_order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"run_id", "storefront_order_id", "outcome", "error_message", "synced_at",
		}),
	}).Create(record).Error
}

// Exists reports whether a marketplace order was already processed
func (r *GormSyncRecordRepository) Exists(ctx context.Context, marketplaceOrderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ordersync.SyncRecord{}).
		Where("marketplace_order_id = ?", marketplaceOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByMarketplaceOrder returns the record for a marketplace order
func (r *GormSyncRecordRepository) FindByMarketplaceOrder(ctx context.Context, marketplaceOrderID string) (*ordersync.SyncRecord, error) {
	var record ordersync.SyncRecord
	err := r.db.WithContext(ctx).
		Where("marketplace_order_id = ?", marketplaceOrderID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordersync.ErrSyncRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindRecent returns the most recent records, newest first
func (r *GormSyncRecordRepository) FindRecent(ctx context.Context, limit int) ([]ordersync.SyncRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []ordersync.SyncRecord
	err := r.db.WithContext(ctx).
		Order("synced_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Ensure GormSyncRecordRepository implements the repository port
var _ ordersync.SyncRecordRepository = (*GormSyncRecordRepository)(nil)
