package inventory

import (
	"errors"
	"testing"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validReceipt() *entity.StockMovement {
	return &entity.StockMovement{
		Type:        entity.MovementTypeReceipt,
		SKU:         "SKU-A",
		Quantity:    decimal.NewFromInt(5),
		ToLocation:  "LOC001",
		Reference:   "PO-1",
		PerformedBy: "System",
	}
}

func TestValidateMovement(t *testing.T) {
	assert.NoError(t, ValidateMovement(validReceipt()))

	cases := []struct {
		name   string
		mutate func(m *entity.StockMovement)
	}{
		{"tipo desconocido", func(m *entity.StockMovement) { m.Type = "gift" }},
		{"sin sku", func(m *entity.StockMovement) { m.SKU = "  " }},
		{"cantidad cero", func(m *entity.StockMovement) { m.Quantity = decimal.Zero }},
		{"sin referencia", func(m *entity.StockMovement) { m.Reference = "" }},
		{"sin performedBy", func(m *entity.StockMovement) { m.PerformedBy = "" }},
		{"recepción negativa", func(m *entity.StockMovement) { m.Quantity = decimal.NewFromInt(-1) }},
		{"recepción sin destino", func(m *entity.StockMovement) { m.ToLocation = "" }},
		{"consumo positivo", func(m *entity.StockMovement) {
			m.Type = entity.MovementTypeConsumption
			m.FromLocation = "LOC001"
		}},
		{"traslado a la misma ubicación", func(m *entity.StockMovement) {
			m.Type = entity.MovementTypeTransfer
			m.FromLocation = "LOC001"
		}},
		{"traslado sin origen", func(m *entity.StockMovement) { m.Type = entity.MovementTypeTransfer }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validReceipt()
			tc.mutate(m)
			err := ValidateMovement(m)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidMovement))
		})
	}

	adj := validReceipt()
	adj.Type = entity.MovementTypeAdjustment
	adj.Quantity = decimal.NewFromInt(-2)
	assert.NoError(t, ValidateMovement(adj))

	cons := validReceipt()
	cons.Type = entity.MovementTypeConsumption
	cons.Quantity = decimal.NewFromInt(-2)
	cons.ToLocation = ""
	cons.FromLocation = "LOC001"
	assert.NoError(t, ValidateMovement(cons))
}

func TestValidateReceiptLine(t *testing.T) {
	assert.NoError(t, ValidateReceiptLine(entity.PurchaseOrderItem{SKU: "A", Quantity: decimal.NewFromInt(1)}))
	assert.Error(t, ValidateReceiptLine(entity.PurchaseOrderItem{SKU: "", Quantity: decimal.NewFromInt(1)}))
	assert.Error(t, ValidateReceiptLine(entity.PurchaseOrderItem{SKU: "A", Quantity: decimal.Zero}))
	assert.Error(t, ValidateReceiptLine(entity.PurchaseOrderItem{SKU: "A", Quantity: decimal.NewFromInt(-4)}))
}
