package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncapp "github.com/sominastock/ordersync/internal/application/ordersync"
	"github.com/sominastock/ordersync/internal/domain/ordersync"
	"github.com/sominastock/ordersync/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubMarketplace returns a canned batch of orders
type stubMarketplace struct {
	orders []ordersync.MarketplaceOrder
	err    error
}

func (s *stubMarketplace) SearchOrders(ctx context.Context, window ordersync.Window) ([]ordersync.MarketplaceOrder, error) {
	return s.orders, s.err
}

// stubStorefront resolves every SKU to a fixed product
type stubStorefront struct {
	product   ordersync.CatalogProduct
	createErr error
}

func (s *stubStorefront) FindProductBySKU(ctx context.Context, sku string) (*ordersync.CatalogProduct, error) {
	product := s.product
	return &product, nil
}

func (s *stubStorefront) CreateOrder(ctx context.Context, billing ordersync.CustomerProfile, items []ordersync.LineEntry) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	return 9001, nil
}

func (s *stubStorefront) UpdateOrderStatus(ctx context.Context, orderID int64, status ordersync.OrderStatus) error {
	return nil
}

// stubLedger serves canned records
type stubLedger struct {
	records []ordersync.SyncRecord
	err     error
}

func (s *stubLedger) Save(ctx context.Context, record *ordersync.SyncRecord) error { return nil }

func (s *stubLedger) Exists(ctx context.Context, marketplaceOrderID string) (bool, error) {
	return false, nil
}

func (s *stubLedger) FindByMarketplaceOrder(ctx context.Context, marketplaceOrderID string) (*ordersync.SyncRecord, error) {
	return nil, ordersync.ErrSyncRecordNotFound
}

func (s *stubLedger) FindRecent(ctx context.Context, limit int) ([]ordersync.SyncRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.records) {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func newTestHandler(marketplace ordersync.Marketplace, storefront ordersync.Storefront, ledger ordersync.SyncRecordRepository) *SyncHandler {
	log := zap.NewNop()
	orchestrator := syncapp.NewOrchestrator(
		marketplace,
		syncapp.NewAggregator(storefront, log),
		syncapp.NewSubmitter(storefront, log),
		5*time.Minute,
		log,
	)
	return NewSyncHandler(orchestrator, ledger)
}

func performRequest(handler *SyncHandler, method, path string) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.GET("/healthz", handler.Health)
	engine.POST("/api/v1/sync/runs", handler.TriggerRun)
	engine.GET("/api/v1/sync/records", handler.ListRecords)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestSyncHandler_Health(t *testing.T) {
	handler := newTestHandler(&stubMarketplace{}, &stubStorefront{}, nil)

	w := performRequest(handler, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestSyncHandler_TriggerRun(t *testing.T) {
	t.Run("successful run returns order id", func(t *testing.T) {
		marketplace := &stubMarketplace{orders: []ordersync.MarketplaceOrder{
			{
				ID:            "order-1",
				BuyerNickname: "BUYER_A",
				Items: []ordersync.LineItem{
					{Title: "Audifonos", UnitPrice: decimal.NewFromInt(100), Quantity: 1, SellerSKU: "AUD-01"},
				},
			},
		}}
		storefront := &stubStorefront{product: ordersync.CatalogProduct{ID: 11, Name: "Audifonos", SKU: "AUD-01"}}
		handler := newTestHandler(marketplace, storefront, nil)

		w := performRequest(handler, http.MethodPost, "/api/v1/sync/runs")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool        `json:"success"`
			Data    RunResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.Data.FetchedCount)
		require.NotNil(t, resp.Data.StorefrontOrderID)
		assert.Equal(t, int64(9001), *resp.Data.StorefrontOrderID)
	})

	t.Run("empty window returns clean result", func(t *testing.T) {
		handler := newTestHandler(&stubMarketplace{}, &stubStorefront{}, nil)

		w := performRequest(handler, http.MethodPost, "/api/v1/sync/runs")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data RunResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.Data.FetchedCount)
		assert.Nil(t, resp.Data.StorefrontOrderID)
	})

	t.Run("marketplace outage maps to bad gateway", func(t *testing.T) {
		handler := newTestHandler(&stubMarketplace{err: ordersync.ErrMarketplaceUnavailable}, &stubStorefront{}, nil)

		w := performRequest(handler, http.MethodPost, "/api/v1/sync/runs")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", resp.Error.Code)
	})
}

func TestSyncHandler_ListRecords(t *testing.T) {
	t.Run("returns recent records", func(t *testing.T) {
		orderID := int64(9001)
		ledger := &stubLedger{records: []ordersync.SyncRecord{
			{
				ID:                 uuid.New(),
				RunID:              uuid.New(),
				MarketplaceOrderID: "order-1",
				StorefrontOrderID:  &orderID,
				Outcome:            ordersync.SyncOutcomeSubmitted,
				SyncedAt:           time.Date(2024, 3, 15, 10, 5, 0, 0, time.UTC),
			},
		}}
		handler := newTestHandler(&stubMarketplace{}, &stubStorefront{}, ledger)

		w := performRequest(handler, http.MethodGet, "/api/v1/sync/records")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []SyncRecordResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "order-1", resp.Data[0].MarketplaceOrderID)
		assert.Equal(t, "SUBMITTED", resp.Data[0].Outcome)
	})

	t.Run("ledger disabled", func(t *testing.T) {
		handler := newTestHandler(&stubMarketplace{}, &stubStorefront{}, nil)

		w := performRequest(handler, http.MethodGet, "/api/v1/sync/records")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := newTestHandler(&stubMarketplace{}, &stubStorefront{}, &stubLedger{})

		w := performRequest(handler, http.MethodGet, "/api/v1/sync/records?limit=0")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
