package ordersync

import (
	"context"

	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// ResolvedLine is a storefront line entry plus the catalog product it
// resolved to and the marketplace order it came from.
type ResolvedLine struct {
	Entry              ordersync.LineEntry
	Product            ordersync.CatalogProduct
	MarketplaceOrderID string
}

// AggregationResult is the outcome of collapsing a window of marketplace
// orders into one storefront order payload.
type AggregationResult struct {
	// Billing is the billing profile attached to the storefront order.
	// It is derived from the first marketplace order that contributed a
	// resolved line.
	Billing ordersync.CustomerProfile
	// Lines are the resolved line entries, in marketplace order
	Lines []ResolvedLine
	// ContributingOrderIDs lists marketplace orders that contributed at
	// least one resolved line
	ContributingOrderIDs []string
	// SkippedOrderIDs lists marketplace orders where no line resolved
	SkippedOrderIDs []string
}

// Empty reports whether nothing resolved and there is no order to submit.
func (r *AggregationResult) Empty() bool {
	return len(r.Lines) == 0
}

// Entries returns the plain line entries for the storefront payload.
func (r *AggregationResult) Entries() []ordersync.LineEntry {
	entries := make([]ordersync.LineEntry, 0, len(r.Lines))
	for _, line := range r.Lines {
		entries = append(entries, line.Entry)
	}
	return entries
}

// Aggregator resolves marketplace line items against the storefront catalog
// and collapses a window's orders into a single storefront order payload.
type Aggregator struct {
	storefront ordersync.Storefront
	logger     *zap.Logger
}

// NewAggregator creates a new Aggregator
func NewAggregator(storefront ordersync.Storefront, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		storefront: storefront,
		logger:     logger,
	}
}

// Aggregate processes every line item of every order in the batch. A line
// item resolves when its seller SKU decodes and its code matches a catalog
// product by exact SKU. Failures are per-line: a line that does not resolve,
// including one whose catalog lookup fails outright, is logged and skipped
// and the rest of the batch continues.
func (a *Aggregator) Aggregate(ctx context.Context, orders []ordersync.MarketplaceOrder) (*AggregationResult, error) {
	result := &AggregationResult{
		Lines:                make([]ResolvedLine, 0),
		ContributingOrderIDs: make([]string, 0),
		SkippedOrderIDs:      make([]string, 0),
	}

	billingSet := false
	for _, order := range orders {
		contributed := false
		for _, item := range order.Items {
			line, err := a.resolveLine(ctx, order.ID, item)
			if err != nil {
				a.logger.Warn("skipping unresolvable line item",
					zap.String("marketplace_order_id", order.ID),
					zap.String("seller_sku", item.SellerSKU),
					zap.String("title", item.Title),
					zap.Error(err))
				continue
			}

			result.Lines = append(result.Lines, *line)
			contributed = true
		}

		if contributed {
			result.ContributingOrderIDs = append(result.ContributingOrderIDs, order.ID)
			if !billingSet {
				result.Billing = ordersync.NewMarketplaceCustomerProfile(order.BuyerNickname)
				billingSet = true
			}
		} else {
			result.SkippedOrderIDs = append(result.SkippedOrderIDs, order.ID)
		}
	}

	return result, nil
}

// resolveLine decodes one line item's seller SKU and looks the code up in
// the storefront catalog. The decoded override, when present, replaces the
// item quantity.
func (a *Aggregator) resolveLine(ctx context.Context, orderID string, item ordersync.LineItem) (*ResolvedLine, error) {
	sku, err := ordersync.DecodeSellerSKU(item.SellerSKU)
	if err != nil {
		return nil, err
	}

	product, err := a.storefront.FindProductBySKU(ctx, sku.Code)
	if err != nil {
		return nil, err
	}

	return &ResolvedLine{
		Entry: ordersync.LineEntry{
			ProductID: product.ID,
			Quantity:  sku.Quantity(item.Quantity),
		},
		Product:            *product,
		MarketplaceOrderID: orderID,
	}, nil
}
