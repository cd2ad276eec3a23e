package mercadolibre

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// Order Search Response Types
// ---------------------------------------------------------------------------

// OrderSearchResponse is the response for GET /orders/search
type OrderSearchResponse struct {
	Results []Order `json:"results"`
	Paging  *Paging `json:"paging,omitempty"`
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Paging contains result pagination info
type Paging struct {
	Total  int64 `json:"total"`
	Offset int64 `json:"offset"`
	Limit  int64 `json:"limit"`
}

// Order represents an order from the MercadoLibre search API
type Order struct {
	ID          int64       `json:"id"`
	DateCreated string      `json:"date_created,omitempty"` // RFC3339 with milliseconds
	Status      string      `json:"status,omitempty"`
	Buyer       Buyer       `json:"buyer"`
	OrderItems  []OrderItem `json:"order_items"`
	Payments    []Payment   `json:"payments"`
}

// Buyer represents the buyer block on an order
type Buyer struct {
	ID       int64  `json:"id,omitempty"`
	Nickname string `json:"nickname"`
}

// OrderItem represents a line item on an order
type OrderItem struct {
	Item      Item            `json:"item"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Item represents the listing reference on a line item
type Item struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	SellerSKU string `json:"seller_sku"`
}

// Payment represents a payment record on an order
type Payment struct {
	ID              int64           `json:"id,omitempty"`
	TotalPaidAmount decimal.Decimal `json:"total_paid_amount"`
	DateApproved    string          `json:"date_approved,omitempty"` // RFC3339 with milliseconds
	Status          string          `json:"status,omitempty"`
}
