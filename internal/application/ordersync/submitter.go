package ordersync

import (
	"context"

	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// SubmissionResult is the outcome of submitting one aggregated order.
type SubmissionResult struct {
	// StorefrontOrderID is the created order id
	StorefrontOrderID int64
	// HeldStatusApplied reports whether the on-hold transition succeeded.
	// The order exists either way; a failed transition leaves it in the
	// paid processing state.
	HeldStatusApplied bool
}

// Submitter pushes an aggregated order into the storefront. Creation and
// the status transition are two sequential writes with no transactional
// link; a create that succeeds is never rolled back.
type Submitter struct {
	storefront ordersync.Storefront
	logger     *zap.Logger
}

// NewSubmitter creates a new Submitter
func NewSubmitter(storefront ordersync.Storefront, logger *zap.Logger) *Submitter {
	return &Submitter{
		storefront: storefront,
		logger:     logger,
	}
}

// Submit creates the storefront order as paid, then transitions it to
// on-hold. A failed transition is logged and the submission still counts
// as successful because the order record exists.
func (s *Submitter) Submit(ctx context.Context, aggregation *AggregationResult) (*SubmissionResult, error) {
	if aggregation.Empty() {
		return nil, ordersync.ErrInvalidStorefrontOrder
	}

	orderID, err := s.storefront.CreateOrder(ctx, aggregation.Billing, aggregation.Entries())
	if err != nil {
		return nil, err
	}

	s.logger.Info("storefront order created",
		zap.Int64("storefront_order_id", orderID),
		zap.Int("line_count", len(aggregation.Lines)),
		zap.Strings("marketplace_order_ids", aggregation.ContributingOrderIDs))

	result := &SubmissionResult{StorefrontOrderID: orderID, HeldStatusApplied: true}

	if err := s.storefront.UpdateOrderStatus(ctx, orderID, ordersync.OrderStatusOnHold); err != nil {
		result.HeldStatusApplied = false
		s.logger.Error("failed to place storefront order on hold",
			zap.Int64("storefront_order_id", orderID),
			zap.Error(err))
	}

	return result, nil
}
