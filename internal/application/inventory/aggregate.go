package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// AggregateSeed valores iniciales para un SKU que aún no tiene agregado.
type AggregateSeed struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// LockAggregate bloquea el agregado del SKU; si no existe lo crea con la cantidad de la
// primera variación, el costo dado y su valor total.
func LockAggregate(ctx context.Context, repos TxRepos, seed AggregateSeed, now time.Time) (*entity.InventoryItem, error) {
	name := seed.Name
	if name == "" {
		name = seed.SKU
	}
	item, _, err := repos.Items.LockOrSeed(ctx, &entity.InventoryItem{
		SKU:        seed.SKU,
		Name:       name,
		Quantity:   seed.Quantity,
		UnitCost:   seed.UnitCost,
		TotalValue: seed.Quantity.Mul(seed.UnitCost),
		Status:     inventory.DeriveStatus(seed.Quantity, decimal.Zero),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("lock inventory item %s: %w", seed.SKU, err)
	}
	return item, nil
}

// RecomputeFromLocations sobrescribe la cantidad del agregado con la suma de todas sus
// ubicaciones, refresca el costo si unitCost es positivo, el punto de reorden si no es nil,
// y recalcula valor y estado. Es la única ruta que escribe InventoryItem.Quantity.
func RecomputeFromLocations(ctx context.Context, repos TxRepos, sku string, unitCost, reorderPoint *decimal.Decimal, restockedAt *time.Time, now time.Time) (*entity.InventoryItem, error) {
	item, err := repos.Items.GetForUpdate(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", sku, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: agregado %s", domain.ErrNotFound, sku)
	}

	sum, err := repos.Levels.SumQuantityBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("sum location quantities %s: %w", sku, err)
	}

	item.Quantity = sum
	if unitCost != nil && unitCost.IsPositive() {
		item.UnitCost = *unitCost
	}
	if reorderPoint != nil {
		item.ReorderPoint = *reorderPoint
	}
	item.TotalValue = item.Quantity.Mul(item.UnitCost)
	item.Status = inventory.DeriveStatus(item.Quantity, item.ReorderPoint)
	if restockedAt != nil {
		t := *restockedAt
		item.LastRestocked = &t
	}
	item.UpdatedAt = now

	if err := repos.Items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save inventory item %s: %w", sku, err)
	}
	return item, nil
}
