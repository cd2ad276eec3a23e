package ordersync

import "context"

// OrderStatus is a storefront order status string.
type OrderStatus string

const (
	// OrderStatusProcessing is the status a paid order is created in
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusOnHold is the held status applied after creation
	OrderStatusOnHold OrderStatus = "on-hold"
)

// String returns the string representation of OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// CatalogProduct is a storefront catalog product matched by exact SKU.
type CatalogProduct struct {
	// ID is the storefront product identifier
	ID int64
	// Name is the product name
	Name string
	// SKU is the storefront SKU code
	SKU string
}

// LineEntry is one resolved (product, quantity) pair destined for the
// storefront order payload.
type LineEntry struct {
	// ProductID is the storefront product identifier
	ProductID int64
	// Quantity is the quantity to order, after any SKU override
	Quantity int
}

// CustomerProfile is the fixed billing block attached to a storefront
// order. One profile is derived per marketplace order.
type CustomerProfile struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

// NewMarketplaceCustomerProfile returns the static placeholder profile used
// for all marketplace buyers, with the buyer's display name as first name.
func NewMarketplaceCustomerProfile(buyerNickname string) CustomerProfile {
	return CustomerProfile{
		FirstName: buyerNickname,
		LastName:  "",
		Address:   "Agencia mercadolibre",
		City:      "Bogota",
		State:     "BO",
		Postcode:  "110111",
		Country:   "CO",
		Email:     "mercadolibre@gmail.com.co",
		Phone:     "1234567890",
	}
}

// Storefront is the port interface for the storefront commerce backend.
// The storefront owns the order record after creation; this system only
// issues two sequential writes against it (create, then update status),
// with no transactional link between them.
type Storefront interface {
	// FindProductBySKU looks up a catalog product by exact SKU match.
	// Returns ErrProductNotFound when the catalog has no match; when the
	// catalog returns several, the first match wins.
	FindProductBySKU(ctx context.Context, sku string) (*CatalogProduct, error)

	// CreateOrder creates a paid storefront order from the billing profile
	// and line entries, returning the new order id.
	CreateOrder(ctx context.Context, billing CustomerProfile, items []LineEntry) (int64, error)

	// UpdateOrderStatus transitions an existing order to the given status.
	UpdateOrderStatus(ctx context.Context, orderID int64, status OrderStatus) error
}
