package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestGenerateReceivingNote(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	po := &entity.PurchaseOrder{
		OrderNumber:  "PO-TEST-1",
		Supplier:     "Proveedor Uno",
		Status:       entity.PurchaseOrderStatusReceived,
		ReceivedDate: &at,
		Items: []entity.PurchaseOrderItem{
			{SKU: "A", Name: "Tornillo", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("1500.5")},
		},
	}
	note := reports.ReceivingNote{
		Order:    po,
		Location: &entity.StockLocation{Code: "WH-MAIN", Name: "Bodega principal"},
		Movements: []*entity.StockMovement{
			{MovementID: "MOV0001", SKU: "A", ItemName: "Tornillo", Quantity: decimal.NewFromInt(10)},
		},
	}

	out, err := NewReceivingNoteGenerator().GenerateReceivingNote(context.Background(), note)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceivingNote_RequiresOrder(t *testing.T) {
	_, err := NewReceivingNoteGenerator().GenerateReceivingNote(context.Background(), reports.ReceivingNote{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	g := NewReceivingNoteGenerator()
	assert.Equal(t, "1.234.567,50", g.formatMoney(decimal.RequireFromString("1234567.5")))
}

func TestUnitCosts_FirstPositive(t *testing.T) {
	po := &entity.PurchaseOrder{Items: []entity.PurchaseOrderItem{
		{SKU: "A", UnitPrice: decimal.Zero},
		{SKU: "A", UnitPrice: decimal.NewFromInt(3)},
		{SKU: "A", UnitPrice: decimal.NewFromInt(4)},
	}}
	assert.True(t, unitCosts(po)["A"].Equal(decimal.NewFromInt(3)))
}
