package ordersync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// fakeStorefront is an in-memory Storefront with scriptable failures
type fakeStorefront struct {
	mu sync.Mutex

	catalog map[string]ordersync.CatalogProduct

	findErr      error
	findErrBySKU map[string]error
	createErr    error
	updateErr    error

	nextOrderID int64

	createdBilling []ordersync.CustomerProfile
	createdItems   [][]ordersync.LineEntry
	statusUpdates  map[int64]ordersync.OrderStatus
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{
		catalog:       make(map[string]ordersync.CatalogProduct),
		findErrBySKU:  make(map[string]error),
		nextOrderID:   9000,
		statusUpdates: make(map[int64]ordersync.OrderStatus),
	}
}

func (f *fakeStorefront) addProduct(id int64, name, sku string) {
	f.catalog[sku] = ordersync.CatalogProduct{ID: id, Name: name, SKU: sku}
}

func (f *fakeStorefront) FindProductBySKU(ctx context.Context, sku string) (*ordersync.CatalogProduct, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if err, ok := f.findErrBySKU[sku]; ok {
		return nil, err
	}
	product, ok := f.catalog[sku]
	if !ok {
		return nil, ordersync.ErrProductNotFound
	}
	return &product, nil
}

func (f *fakeStorefront) CreateOrder(ctx context.Context, billing ordersync.CustomerProfile, items []ordersync.LineEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextOrderID++
	f.createdBilling = append(f.createdBilling, billing)
	f.createdItems = append(f.createdItems, items)
	return f.nextOrderID, nil
}

func (f *fakeStorefront) UpdateOrderStatus(ctx context.Context, orderID int64, status ordersync.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates[orderID] = status
	return nil
}

// fakeMarketplace returns a fixed batch of orders
type fakeMarketplace struct {
	orders    []ordersync.MarketplaceOrder
	err       error
	gotWindow ordersync.Window
}

func (f *fakeMarketplace) SearchOrders(ctx context.Context, window ordersync.Window) ([]ordersync.MarketplaceOrder, error) {
	f.gotWindow = window
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

// fakeLedger is an in-memory SyncRecordRepository
type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*ordersync.SyncRecord
	saveErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*ordersync.SyncRecord)}
}

func (f *fakeLedger) Save(ctx context.Context, record *ordersync.SyncRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[record.MarketplaceOrderID] = record
	return nil
}

func (f *fakeLedger) Exists(ctx context.Context, marketplaceOrderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[marketplaceOrderID]
	return ok, nil
}

func (f *fakeLedger) FindByMarketplaceOrder(ctx context.Context, marketplaceOrderID string) (*ordersync.SyncRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[marketplaceOrderID]
	if !ok {
		return nil, ordersync.ErrSyncRecordNotFound
	}
	return record, nil
}

func (f *fakeLedger) FindRecent(ctx context.Context, limit int) ([]ordersync.SyncRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]ordersync.SyncRecord, 0, len(f.records))
	for _, record := range f.records {
		records = append(records, *record)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// fakeRunLock is a scriptable RunLock
type fakeRunLock struct {
	acquired   bool
	acquireErr error
	released   bool
}

func (f *fakeRunLock) Acquire(ctx context.Context) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	return f.acquired, nil
}

func (f *fakeRunLock) Release(ctx context.Context) error {
	f.released = true
	return nil
}

// fakeRunLog captures recorded run start times
type fakeRunLog struct {
	recorded []time.Time
	err      error
}

func (f *fakeRunLog) Record(t time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, t)
	return nil
}

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
