package ordersync

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WindowTimestampLayout is the timestamp format the marketplace search API
// expects for the creation-time range: ISO-8601 with millisecond precision
// and an explicit UTC marker.
const WindowTimestampLayout = "2006-01-02T15:04:05.000Z"

// Window is the creation-time range polled from the marketplace.
type Window struct {
	From time.Time
	To   time.Time
}

// NewLookbackWindow returns the window [now-lookback, now].
func NewLookbackWindow(now time.Time, lookback time.Duration) Window {
	return Window{From: now.Add(-lookback), To: now}
}

// FromParam returns the window start formatted for the search API.
func (w Window) FromParam() string {
	return w.From.UTC().Format(WindowTimestampLayout)
}

// ToParam returns the window end formatted for the search API.
func (w Window) ToParam() string {
	return w.To.UTC().Format(WindowTimestampLayout)
}

// MarketplaceOrder represents an order fetched from the marketplace search
// API. It is immutable once fetched; its lifecycle ends when the aggregator
// consumes it.
type MarketplaceOrder struct {
	// ID is the order identifier on the marketplace
	ID string
	// BuyerNickname is the buyer's display name on the marketplace
	BuyerNickname string
	// CreatedAt is when the order was placed on the marketplace
	CreatedAt time.Time
	// Items contains the ordered line items
	Items []LineItem
	// Payments contains the marketplace payment records. They are fetched
	// but never reconciled against the storefront order.
	Payments []Payment
}

// LineItem is a single ordered item on a marketplace order.
type LineItem struct {
	// Title is the listing title
	Title string
	// UnitPrice is the per-unit price paid on the marketplace
	UnitPrice decimal.Decimal
	// Quantity is the ordered quantity; the decoded seller SKU may
	// override it
	Quantity int
	// SellerSKU is the raw composite SKU field ("<code>*<qty>", qty optional)
	SellerSKU string
}

// Payment is a marketplace payment record attached to an order.
type Payment struct {
	// TotalPaidAmount is the amount the buyer paid
	TotalPaidAmount decimal.Decimal
	// DateApproved is when the payment was approved, nil if pending
	DateApproved *time.Time
}

// Marketplace is the port interface for the external marketplace order
// search API. Implementations live in the infrastructure layer.
type Marketplace interface {
	// SearchOrders returns the seller's orders created within the window.
	// An empty result is a clean outcome, not an error.
	SearchOrders(ctx context.Context, window Window) ([]MarketplaceOrder, error)
}
