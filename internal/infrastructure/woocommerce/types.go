package woocommerce

// ---------------------------------------------------------------------------
// Product Types
// ---------------------------------------------------------------------------

// Product represents a product entry from GET /products
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// ---------------------------------------------------------------------------
// Order Types
// ---------------------------------------------------------------------------

// Billing is the billing block of an order payload
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrderLineItem is one (product, quantity) pair in an order payload
type OrderLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ShippingLine is one shipping charge in an order payload
type ShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// orderCreateRequest is the body for POST /orders
type orderCreateRequest struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	SetPaid            bool            `json:"set_paid"`
	Billing            Billing         `json:"billing"`
	LineItems          []OrderLineItem `json:"line_items"`
	ShippingLines      []ShippingLine  `json:"shipping_lines"`
}

// orderStatusUpdateRequest is the body for PUT /orders/{id}
type orderStatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the order record returned by the orders endpoints
type OrderResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// errorResponse is the error envelope returned by the REST API
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
