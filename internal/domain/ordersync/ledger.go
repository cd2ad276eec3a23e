package ordersync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SyncOutcome is the terminal outcome recorded for a processed marketplace
// order.
type SyncOutcome string

const (
	// SyncOutcomeSubmitted indicates the order contributed to a created
	// storefront order
	SyncOutcomeSubmitted SyncOutcome = "SUBMITTED"
	// SyncOutcomeSkipped indicates no line item on the order resolved
	SyncOutcomeSkipped SyncOutcome = "SKIPPED"
	// SyncOutcomeFailed indicates submission failed for the batch the
	// order belonged to
	SyncOutcomeFailed SyncOutcome = "FAILED"
)

// IsValid returns true if the outcome is valid.
func (o SyncOutcome) IsValid() bool {
	switch o {
	case SyncOutcomeSubmitted, SyncOutcomeSkipped, SyncOutcomeFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncOutcome.
func (o SyncOutcome) String() string {
	return string(o)
}

// SyncRecord records that a marketplace order was seen by a sync run.
// The ledger is the dedup safeguard against overlapping runs double-
// submitting the same marketplace order; it is optional and disabled by
// default to preserve the historical one-shot behavior.
type SyncRecord struct {
	// ID is the unique identifier of this record
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// RunID identifies the sync run that processed the order
	RunID uuid.UUID `gorm:"type:uuid;not null;index"`
	// MarketplaceOrderID is the order id on the marketplace
	MarketplaceOrderID string `gorm:"type:varchar(64);not null;uniqueIndex"`
	// StorefrontOrderID is the created storefront order id, nil when the
	// order never reached submission
	StorefrontOrderID *int64
	// Outcome is the terminal outcome for this order
	Outcome SyncOutcome `gorm:"type:varchar(20);not null"`
	// ErrorMessage contains the failure detail when Outcome is FAILED
	ErrorMessage string `gorm:"type:text"`
	// SyncedAt is when the run processed the order
	SyncedAt time.Time `gorm:"not null"`
	// CreatedAt is when this record was persisted
	CreatedAt time.Time
}

// TableName returns the database table name for SyncRecord.
func (SyncRecord) TableName() string {
	return "sync_records"
}

// NewSyncRecord creates a sync record for a processed marketplace order.
func NewSyncRecord(runID uuid.UUID, marketplaceOrderID string, outcome SyncOutcome) *SyncRecord {
	return &SyncRecord{
		ID:                 uuid.New(),
		RunID:              runID,
		MarketplaceOrderID: marketplaceOrderID,
		Outcome:            outcome,
		SyncedAt:           time.Now(),
	}
}

// SyncRecordRepository persists the processed-order ledger.
type SyncRecordRepository interface {
	// Save creates or updates a record, keyed by marketplace order id
	Save(ctx context.Context, record *SyncRecord) error

	// Exists reports whether a marketplace order was already processed
	Exists(ctx context.Context, marketplaceOrderID string) (bool, error)

	// FindByMarketplaceOrder returns the record for a marketplace order
	FindByMarketplaceOrder(ctx context.Context, marketplaceOrderID string) (*SyncRecord, error)

	// FindRecent returns the most recent records, newest first
	FindRecent(ctx context.Context, limit int) ([]SyncRecord, error)
}
