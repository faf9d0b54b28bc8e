package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LocationDelta variación a aplicar sobre (LocationID, SKU).
// UnitCost, ReorderPoint e ItemName en nil conservan el valor almacenado.
type LocationDelta struct {
	LocationID   string
	SKU          string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	ReorderPoint *decimal.Decimal
	ItemName     *string
}

// ApplyDelta bloquea (o crea con cantidad 0) la fila de ubicación+SKU, suma la variación,
// recalcula el estado y persiste. lastRestocked solo avanza con variaciones positivas.
// Un resultado negativo devuelve domain.ErrInsufficientStock.
func ApplyDelta(ctx context.Context, levels repository.LocationInventoryRepository, d LocationDelta, now time.Time) (*entity.LocationInventory, error) {
	if d.LocationID == "" || strings.TrimSpace(d.SKU) == "" {
		return nil, fmt.Errorf("%w: ubicación y sku requeridos", domain.ErrInvalidInput)
	}

	seed := &entity.LocationInventory{
		LocationID: d.LocationID,
		SKU:        d.SKU,
		ItemName:   d.SKU,
		Quantity:   decimal.Zero,
		Status:     entity.StockStatusOutOfStock,
		UpdatedAt:  now,
	}
	if d.ItemName != nil && *d.ItemName != "" {
		seed.ItemName = *d.ItemName
	}
	if d.UnitCost != nil {
		seed.UnitCost = *d.UnitCost
	}
	if d.ReorderPoint != nil {
		seed.ReorderPoint = *d.ReorderPoint
	}

	row, _, err := levels.LockOrSeed(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("lock location inventory %s/%s: %w", d.LocationID, d.SKU, err)
	}

	newQty := row.Quantity.Add(d.Quantity)
	if newQty.IsNegative() {
		return nil, fmt.Errorf("%w: %s en %s tiene %s, se solicitan %s",
			domain.ErrInsufficientStock, d.SKU, d.LocationID, row.Quantity.String(), d.Quantity.Neg().String())
	}

	row.Quantity = newQty
	if d.UnitCost != nil {
		row.UnitCost = *d.UnitCost
	}
	if d.ReorderPoint != nil {
		row.ReorderPoint = *d.ReorderPoint
	}
	if d.ItemName != nil && *d.ItemName != "" {
		row.ItemName = *d.ItemName
	}
	row.Status = inventory.DeriveStatus(row.Quantity, row.ReorderPoint)
	if d.Quantity.IsPositive() {
		t := now
		row.LastRestocked = &t
	}
	row.UpdatedAt = now

	if err := levels.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save location inventory %s/%s: %w", d.LocationID, d.SKU, err)
	}
	return row, nil
}
