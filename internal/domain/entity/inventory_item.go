package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de cantidad y punto de reorden.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// InventoryItem es el agregado por SKU. Quantity es siempre la suma de LocationInventory.Quantity
// del mismo SKU; TotalValue = Quantity * UnitCost.
type InventoryItem struct {
	SKU           string
	Name          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalValue    decimal.Decimal
	ReorderPoint  decimal.Decimal
	Status        string
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
