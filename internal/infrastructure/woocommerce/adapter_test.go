package woocommerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:    "valid config",
			config:  NewConfig("ck_test", "cs_test", "https://store.example.com/wp-json/wc/v3"),
			wantErr: nil,
		},
		{
			name:    "missing consumer key",
			config:  &Config{ConsumerSecret: "cs_test", APIBaseURL: "https://store.example.com"},
			wantErr: ErrConfigMissingConsumerKey,
		},
		{
			name:    "missing consumer secret",
			config:  &Config{ConsumerKey: "ck_test", APIBaseURL: "https://store.example.com"},
			wantErr: ErrConfigMissingConsumerSecret,
		},
		{
			name:    "missing api base url",
			config:  &Config{ConsumerKey: "ck_test", ConsumerSecret: "cs_test"},
			wantErr: ErrConfigMissingAPIBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.config.TimeoutSeconds > 0)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Adapter Tests
// ---------------------------------------------------------------------------

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewAdapter(NewConfig("ck_test", "cs_test", server.URL))
	require.NoError(t, err)
	return adapter
}

func TestAdapter_FindProductBySKU(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotSKU string
		var gotUser, gotPass string
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/products", r.URL.Path)
			gotSKU = r.URL.Query().Get("sku")
			gotUser, gotPass, _ = r.BasicAuth()
			w.Write([]byte(`[{"id": 4411, "name": "Audifonos Bluetooth", "sku": "AUD-01"}]`))
		})

		product, err := adapter.FindProductBySKU(context.Background(), "AUD-01")
		require.NoError(t, err)

		assert.Equal(t, "AUD-01", gotSKU)
		assert.Equal(t, "ck_test", gotUser)
		assert.Equal(t, "cs_test", gotPass)
		assert.Equal(t, int64(4411), product.ID)
		assert.Equal(t, "Audifonos Bluetooth", product.Name)
		assert.Equal(t, "AUD-01", product.SKU)
	})

	t.Run("first match wins", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 1, "name": "First", "sku": "DUP"}, {"id": 2, "name": "Second", "sku": "DUP"}]`))
		})

		product, err := adapter.FindProductBySKU(context.Background(), "DUP")
		require.NoError(t, err)
		assert.Equal(t, int64(1), product.ID)
	})

	t.Run("not found", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

		product, err := adapter.FindProductBySKU(context.Background(), "MISSING")
		assert.ErrorIs(t, err, ordersync.ErrProductNotFound)
		assert.Nil(t, product)
	})

	t.Run("server error", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code": "internal_error", "message": "boom"}`))
		})

		product, err := adapter.FindProductBySKU(context.Background(), "AUD-01")
		assert.ErrorIs(t, err, ordersync.ErrStorefrontUnavailable)
		assert.Nil(t, product)
	})
}

func TestAdapter_CreateOrder(t *testing.T) {
	billing := ordersync.NewMarketplaceCustomerProfile("COMPRADOR_UNO")
	items := []ordersync.LineEntry{
		{ProductID: 4411, Quantity: 2},
		{ProductID: 8822, Quantity: 1},
	}

	t.Run("success", func(t *testing.T) {
		var gotPayload orderCreateRequest
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 9001, "status": "processing"}`))
		})

		orderID, err := adapter.CreateOrder(context.Background(), billing, items)
		require.NoError(t, err)
		assert.Equal(t, int64(9001), orderID)

		assert.Equal(t, "bacs", gotPayload.PaymentMethod)
		assert.Equal(t, "Direct Bank Transfer", gotPayload.PaymentMethodTitle)
		assert.True(t, gotPayload.SetPaid)
		assert.Equal(t, "COMPRADOR_UNO", gotPayload.Billing.FirstName)
		assert.Equal(t, "Agencia mercadolibre", gotPayload.Billing.Address1)
		assert.Equal(t, "Bogota", gotPayload.Billing.City)
		assert.Equal(t, "CO", gotPayload.Billing.Country)
		require.Len(t, gotPayload.LineItems, 2)
		assert.Equal(t, OrderLineItem{ProductID: 4411, Quantity: 2}, gotPayload.LineItems[0])
		require.Len(t, gotPayload.ShippingLines, 1)
		assert.Equal(t, "flat_rate", gotPayload.ShippingLines[0].MethodID)
		assert.Equal(t, "0.00", gotPayload.ShippingLines[0].Total)
	})

	t.Run("no line items", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent")
		})

		orderID, err := adapter.CreateOrder(context.Background(), billing, nil)
		assert.ErrorIs(t, err, ordersync.ErrInvalidStorefrontOrder)
		assert.Zero(t, orderID)
	})

	t.Run("server error", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code": "woocommerce_rest_invalid_product_id", "message": "Invalid product ID."}`))
		})

		orderID, err := adapter.CreateOrder(context.Background(), billing, items)
		assert.ErrorIs(t, err, ordersync.ErrOrderCreationFailed)
		assert.Zero(t, orderID)
	})

	t.Run("missing order id", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "processing"}`))
		})

		orderID, err := adapter.CreateOrder(context.Background(), billing, items)
		assert.ErrorIs(t, err, ordersync.ErrOrderCreationFailed)
		assert.Zero(t, orderID)
	})
}

func TestAdapter_UpdateOrderStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPayload orderStatusUpdateRequest
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/orders/9001", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			w.Write([]byte(`{"id": 9001, "status": "on-hold"}`))
		})

		err := adapter.UpdateOrderStatus(context.Background(), 9001, ordersync.OrderStatusOnHold)
		require.NoError(t, err)
		assert.Equal(t, "on-hold", gotPayload.Status)
	})

	t.Run("status not applied", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": 9001, "status": "processing"}`))
		})

		err := adapter.UpdateOrderStatus(context.Background(), 9001, ordersync.OrderStatusOnHold)
		assert.ErrorIs(t, err, ordersync.ErrStatusUpdateFailed)
	})

	t.Run("server error", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code": "woocommerce_rest_shop_order_invalid_id", "message": "Invalid ID."}`))
		})

		err := adapter.UpdateOrderStatus(context.Background(), 404, ordersync.OrderStatusOnHold)
		assert.ErrorIs(t, err, ordersync.ErrStatusUpdateFailed)
	})
}
