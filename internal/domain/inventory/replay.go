package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LocationSKU clave (código de ubicación, SKU) para reconstruir saldos desde el libro.
type LocationSKU struct {
	Location string
	SKU      string
}

// Effect variación de stock que un movimiento produce en una ubicación.
type Effect struct {
	Location string
	Delta    decimal.Decimal
}

// Effects devuelve las variaciones por ubicación de un movimiento.
// Los ajustes se aplican en ToLocation con su signo.
func Effects(m *entity.StockMovement) []Effect {
	switch m.Type {
	case entity.MovementTypeReceipt, entity.MovementTypeAdjustment:
		return []Effect{{Location: m.ToLocation, Delta: m.Quantity}}
	case entity.MovementTypeConsumption:
		return []Effect{{Location: m.FromLocation, Delta: m.Quantity}}
	case entity.MovementTypeTransfer:
		return []Effect{
			{Location: m.FromLocation, Delta: m.Quantity.Neg()},
			{Location: m.ToLocation, Delta: m.Quantity},
		}
	}
	return nil
}

// Replay reconstruye el saldo por ubicación y SKU sumando los efectos de todos los movimientos.
func Replay(movements []*entity.StockMovement) map[LocationSKU]decimal.Decimal {
	out := make(map[LocationSKU]decimal.Decimal)
	for _, m := range movements {
		for _, e := range Effects(m) {
			k := LocationSKU{Location: e.Location, SKU: m.SKU}
			out[k] = out[k].Add(e.Delta)
		}
	}
	return out
}

// NetBySKU suma el efecto neto de los movimientos por SKU (los traslados netean cero).
func NetBySKU(movements []*entity.StockMovement) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for k, v := range Replay(movements) {
		out[k.SKU] = out[k.SKU].Add(v)
	}
	return out
}
