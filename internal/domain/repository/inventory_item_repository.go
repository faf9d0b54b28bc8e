package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// InventoryItemRepository define el puerto del agregado por SKU.
type InventoryItemRepository interface {
	// LockOrSeed crea el agregado con seed si no existe y lo devuelve bloqueado.
	LockOrSeed(ctx context.Context, seed *entity.InventoryItem) (item *entity.InventoryItem, created bool, err error)
	// GetForUpdate bloquea la fila del SKU; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error)
	Save(ctx context.Context, item *entity.InventoryItem) error
	Get(ctx context.Context, sku string) (*entity.InventoryItem, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryItem, error)
	ListAll(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListBelowReorderPoint devuelve agregados con cantidad <= punto de reorden, mayor déficit primero.
	ListBelowReorderPoint(ctx context.Context) ([]*entity.InventoryItem, error)
}
