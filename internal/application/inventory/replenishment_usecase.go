package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// idealStockFactor stock objetivo = punto de reorden * 1.5.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición a partir de los agregados bajo punto de reorden.
type ReplenishmentUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.InventoryItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

// GenerateReplenishmentList devuelve los SKUs en o bajo su punto de reorden con la cantidad
// sugerida de pedido, el costo estimado y un ranking de prioridad.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Agregados por debajo del punto de reorden
	items, err := uc.itemRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Construir sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		if item.ReorderPoint.IsZero() {
			continue
		}
		idealStock := item.ReorderPoint.Mul(idealStockFactor)
		suggestedQty := idealStock.Sub(item.Quantity)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			SKU:                item.SKU,
			Name:               item.Name,
			Status:             item.Status,
			CurrentStock:       item.Quantity,
			ReorderPoint:       item.ReorderPoint,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.UnitCost,
			EstimatedOrderCost: suggestedQty.Mul(item.UnitCost),
		})
	}

	// 3. Ordenar: agotados primero, luego mayor déficit relativo, luego mayor déficit absoluto.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		aOut, bOut := a.Status == entity.StockStatusOutOfStock, b.Status == entity.StockStatusOutOfStock
		if aOut != bOut {
			return aOut
		}
		relA := a.ReorderPoint.Sub(a.CurrentStock).Div(a.ReorderPoint)
		relB := b.ReorderPoint.Sub(b.CurrentStock).Div(b.ReorderPoint)
		if !relA.Equal(relB) {
			return relA.GreaterThan(relB)
		}
		return a.ReorderPoint.Sub(a.CurrentStock).GreaterThan(b.ReorderPoint.Sub(b.CurrentStock))
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
