package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DeriveStatus calcula el estado de stock (servicio de dominio).
// qty <= 0 → out_of_stock; 0 < qty <= reorderPoint → low_stock; resto → in_stock.
func DeriveStatus(quantity, reorderPoint decimal.Decimal) string {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return entity.StockStatusOutOfStock
	}
	if quantity.LessThanOrEqual(reorderPoint) {
		return entity.StockStatusLowStock
	}
	return entity.StockStatusInStock
}
