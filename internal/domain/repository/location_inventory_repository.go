package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LocationInventoryRepository define el puerto para stock por ubicación + SKU.
type LocationInventoryRepository interface {
	// LockOrSeed crea la fila con seed si no existe y la devuelve bloqueada (SELECT FOR UPDATE).
	// created indica si se insertó.
	LockOrSeed(ctx context.Context, seed *entity.LocationInventory) (row *entity.LocationInventory, created bool, err error)
	Save(ctx context.Context, row *entity.LocationInventory) error
	Get(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.LocationInventory, error)
	ListBySKU(ctx context.Context, sku string) ([]*entity.LocationInventory, error)
	ListAll(ctx context.Context) ([]*entity.LocationInventory, error)
	// SumQuantityBySKU suma la cantidad del SKU en todas las ubicaciones.
	SumQuantityBySKU(ctx context.Context, sku string) (decimal.Decimal, error)
}
