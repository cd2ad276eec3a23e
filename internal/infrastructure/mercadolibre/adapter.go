package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// maxResponseSize is the maximum allowed response size from the MercadoLibre API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Adapter implements the Marketplace port against the MercadoLibre REST API
type Adapter struct {
	config     *Config
	httpClient *http.Client
}

// NewAdapter creates a new MercadoLibre adapter with the given configuration
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

// SearchOrders returns all orders created by the seller inside the given window
func (a *Adapter) SearchOrders(ctx context.Context, window ordersync.Window) ([]ordersync.MarketplaceOrder, error) {
	query := url.Values{}
	query.Set("seller", a.config.SellerID)
	query.Set("order.date_created.from", window.FromParam())
	query.Set("order.date_created.to", window.ToParam())

	respBody, err := a.doRequest(ctx, "/orders/search", query)
	if err != nil {
		return nil, err
	}

	var resp OrderSearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ordersync.ErrMarketplaceInvalidResponse, err)
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s - %s", ordersync.ErrMarketplaceInvalidResponse, resp.Error, resp.Message)
	}

	orders := make([]ordersync.MarketplaceOrder, 0, len(resp.Results))
	for i := range resp.Results {
		orders = append(orders, convertOrder(&resp.Results[i]))
	}

	return orders, nil
}

// doRequest performs an authenticated GET request against the MercadoLibre API
func (a *Adapter) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := a.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("mercadolibre: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ordersync.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("mercadolibre: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ordersync.ErrMarketplaceUnavailable, resp.StatusCode)
	}

	return body, nil
}

// convertOrder converts an API order to the domain representation
func convertOrder(order *Order) ordersync.MarketplaceOrder {
	result := ordersync.MarketplaceOrder{
		ID:            strconv.FormatInt(order.ID, 10),
		BuyerNickname: order.Buyer.Nickname,
		Items:         make([]ordersync.LineItem, 0, len(order.OrderItems)),
		Payments:      make([]ordersync.Payment, 0, len(order.Payments)),
	}

	if order.DateCreated != "" {
		if t, err := time.Parse(time.RFC3339, order.DateCreated); err == nil {
			result.CreatedAt = t
		}
	}

	for _, item := range order.OrderItems {
		result.Items = append(result.Items, ordersync.LineItem{
			Title:     item.Item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			SellerSKU: item.Item.SellerSKU,
		})
	}

	for _, payment := range order.Payments {
		p := ordersync.Payment{
			TotalPaidAmount: payment.TotalPaidAmount,
		}
		if payment.DateApproved != "" {
			if t, err := time.Parse(time.RFC3339, payment.DateApproved); err == nil {
				p.DateApproved = &t
			}
		}
		result.Payments = append(result.Payments, p)
	}

	return result
}

// Ensure Adapter implements the Marketplace port
var _ ordersync.Marketplace = (*Adapter)(nil)
