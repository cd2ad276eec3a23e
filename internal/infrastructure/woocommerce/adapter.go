package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// maxResponseSize is the maximum allowed response size from the WooCommerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Payment settings applied to every marketplace-sourced order. Orders are
// created already paid and carry a zero-cost flat rate shipping line.
const (
	paymentMethod      = "bacs"
	paymentMethodTitle = "Direct Bank Transfer"
	shippingMethodID   = "flat_rate"
	shippingTitle      = "Flat Rate"
	shippingTotal      = "0.00"
)

// Adapter implements the Storefront port against the WooCommerce REST API
type Adapter struct {
	config     *Config
	httpClient *http.Client
}

// NewAdapter creates a new WooCommerce adapter with the given configuration
func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FindProductBySKU looks up a catalog product by exact SKU match.
// The API returns a list; the first entry wins when several match.
func (a *Adapter) FindProductBySKU(ctx context.Context, sku string) (*ordersync.CatalogProduct, error) {
	query := url.Values{}
	query.Set("sku", sku)

	respBody, err := a.doRequest(ctx, http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(respBody, &products); err != nil {
		return nil, fmt.Errorf("%w: failed to parse product list: %v", ordersync.ErrStorefrontUnavailable, err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: sku %q", ordersync.ErrProductNotFound, sku)
	}

	return &ordersync.CatalogProduct{
		ID:   products[0].ID,
		Name: products[0].Name,
		SKU:  products[0].SKU,
	}, nil
}

// CreateOrder creates a paid order with the fixed payment settings and
// returns the new order id.
func (a *Adapter) CreateOrder(ctx context.Context, billing ordersync.CustomerProfile, items []ordersync.LineEntry) (int64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: no line items", ordersync.ErrInvalidStorefrontOrder)
	}

	payload := orderCreateRequest{
		PaymentMethod:      paymentMethod,
		PaymentMethodTitle: paymentMethodTitle,
		SetPaid:            true,
		Billing: Billing{
			FirstName: billing.FirstName,
			LastName:  billing.LastName,
			Address1:  billing.Address,
			City:      billing.City,
			State:     billing.State,
			Postcode:  billing.Postcode,
			Country:   billing.Country,
			Email:     billing.Email,
			Phone:     billing.Phone,
		},
		LineItems: make([]OrderLineItem, 0, len(items)),
		ShippingLines: []ShippingLine{
			{MethodID: shippingMethodID, MethodTitle: shippingTitle, Total: shippingTotal},
		},
	}
	for _, item := range items {
		payload.LineItems = append(payload.LineItems, OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, "/orders", nil, payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ordersync.ErrOrderCreationFailed, err)
	}

	var order OrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return 0, fmt.Errorf("%w: failed to parse order response: %v", ordersync.ErrOrderCreationFailed, err)
	}
	if order.ID == 0 {
		return 0, fmt.Errorf("%w: response carried no order id", ordersync.ErrOrderCreationFailed)
	}

	return order.ID, nil
}

// UpdateOrderStatus transitions an existing order to the given status
func (a *Adapter) UpdateOrderStatus(ctx context.Context, orderID int64, status ordersync.OrderStatus) error {
	path := fmt.Sprintf("/orders/%d", orderID)
	payload := orderStatusUpdateRequest{Status: status.String()}

	respBody, err := a.doRequest(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ordersync.ErrStatusUpdateFailed, err)
	}

	var order OrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return fmt.Errorf("%w: failed to parse order response: %v", ordersync.ErrStatusUpdateFailed, err)
	}
	if order.Status != status.String() {
		return fmt.Errorf("%w: order %d reported status %q", ordersync.ErrStatusUpdateFailed, orderID, order.Status)
	}

	return nil
}

// doRequest performs an authenticated request against the WooCommerce API
func (a *Adapter) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	endpoint := a.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("woocommerce: failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}

	req.SetBasicAuth(a.config.ConsumerKey, a.config.ConsumerSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ordersync.ErrStorefrontUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: HTTP %d: %s", ordersync.ErrStorefrontUnavailable, resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ordersync.ErrStorefrontUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

// Ensure Adapter implements the Storefront port
var _ ordersync.Storefront = (*Adapter)(nil)
