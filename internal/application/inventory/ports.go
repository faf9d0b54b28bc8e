package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción (o al pool, para lecturas).
type TxRepos struct {
	Locations repository.StockLocationRepository
	Movements repository.StockMovementRepository
	Levels    repository.LocationInventoryRepository
	Items     repository.InventoryItemRepository
	Orders    repository.PurchaseOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback; nada de lo escrito es visible fuera de la transacción.
// Los errores de bloqueo/serialización se devuelven como domain.ErrConcurrencyConflict y
// los de cancelación o timeout como domain.ErrTransactionAborted.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
	// RunSnapshot ejecuta fn en una transacción de solo lectura con una vista consistente.
	RunSnapshot(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// ItemCache caché de lectura de agregados por SKU. Se invalida después del commit.
// Cada SKU tiene una versión que Invalidate incrementa; Set solo escribe si la versión
// no cambió desde el Get que precedió a la lectura de la base.
type ItemCache interface {
	// Get devuelve el agregado (nil en fallo de caché) y la versión vigente del SKU.
	Get(ctx context.Context, sku string) (*entity.InventoryItem, int64, error)
	// Set guarda item si la versión sigue siendo version; false si se descartó por obsoleto.
	Set(ctx context.Context, item *entity.InventoryItem, version int64) (bool, error)
	Invalidate(ctx context.Context, skus ...string) error
}

// Metrics observador de resultados del motor de inventario.
type Metrics interface {
	ObserveReceipt(outcome string, movements int, elapsed time.Duration)
	ObserveMovement(movementType, outcome string)
	SetDivergences(n int)
}

// Resultados para Metrics.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeAborted   = "aborted"
	OutcomeConflict  = "conflict"
	OutcomeFailed    = "failed"
)

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*entity.InventoryItem, int64, error) { return nil, 0, nil }
func (nopCache) Set(context.Context, *entity.InventoryItem, int64) (bool, error)   { return true, nil }
func (nopCache) Invalidate(context.Context, ...string) error                       { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveReceipt(string, int, time.Duration) {}
func (nopMetrics) ObserveMovement(string, string)            {}
func (nopMetrics) SetDivergences(int)                        {}
