package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seedLocation(t *testing.T, repos inventory.TxRepos, code, status string) *entity.StockLocation {
	t.Helper()
	now := time.Now()
	loc := &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      "Bodega " + code,
		Type:      entity.LocationTypeWarehouse,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.Locations.Create(context.Background(), loc))
	return loc
}

func line(sku, qty, price string) entity.PurchaseOrderItem {
	return entity.PurchaseOrderItem{SKU: sku, Name: "Item " + sku, Quantity: dec(qty), UnitPrice: dec(price)}
}

func seedOrder(t *testing.T, repos inventory.TxRepos, number, status string, items ...entity.PurchaseOrderItem) *entity.PurchaseOrder {
	t.Helper()
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		OrderNumber: number,
		Supplier:    "Ferretería Central",
		Status:      status,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repos.Orders.Create(context.Background(), po))
	return po
}

func allMovements(t *testing.T, repos inventory.TxRepos) []*entity.StockMovement {
	t.Helper()
	list, err := repos.Movements.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

func requireConsistent(t *testing.T, store *memory.Store) {
	t.Helper()
	report, err := inventory.NewIntegrityVerifier(store, nil, zerolog.Nop()).Verify(context.Background())
	require.NoError(t, err, "divergencias: %+v", report)
}

// recordingCache caché versionada en memoria que registra los SKUs invalidados.
// beforeSet, si está, se ejecuta una vez antes del primer Set.
type recordingCache struct {
	mu          sync.Mutex
	items       map[string]*entity.InventoryItem
	versions    map[string]int64
	invalidated []string
	beforeSet   func()
}

func newRecordingCache() *recordingCache {
	return &recordingCache{items: make(map[string]*entity.InventoryItem), versions: make(map[string]int64)}
}

func (c *recordingCache) Get(_ context.Context, sku string) (*entity.InventoryItem, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[sku], c.versions[sku], nil
}

func (c *recordingCache) Set(_ context.Context, item *entity.InventoryItem, version int64) (bool, error) {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[item.SKU] != version {
		return false, nil
	}
	c.items[item.SKU] = item
	return true, nil
}

func (c *recordingCache) Invalidate(_ context.Context, skus ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range skus {
		delete(c.items, s)
		c.versions[s]++
	}
	c.invalidated = append(c.invalidated, skus...)
	return nil
}

func (c *recordingCache) Invalidated() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}

// countingMetrics cuenta resultados por outcome.
type countingMetrics struct {
	mu          sync.Mutex
	receipts    map[string]int
	movements   map[string]int
	divergences int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{receipts: map[string]int{}, movements: map[string]int{}}
}

func (m *countingMetrics) ObserveReceipt(outcome string, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[outcome]++
}

func (m *countingMetrics) ObserveMovement(_ string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[outcome]++
}

func (m *countingMetrics) SetDivergences(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.divergences = n
}
