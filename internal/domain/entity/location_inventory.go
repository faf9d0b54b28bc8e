package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationInventory representa el stock de un SKU en una ubicación (clave: LocationID + SKU).
type LocationInventory struct {
	LocationID    string
	SKU           string
	ItemName      string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	ReorderPoint  decimal.Decimal
	Status        string
	LastRestocked *time.Time
	UpdatedAt     time.Time
}
