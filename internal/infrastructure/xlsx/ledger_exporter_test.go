package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestExportMovements(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movs := []*entity.StockMovement{
		{MovementID: "MOV0001", Timestamp: ts, Type: entity.MovementTypeReceipt, SKU: "A", ItemName: "Tornillo",
			Quantity: decimal.NewFromInt(10), ToLocation: "WH-MAIN", Reference: "PO-TEST-1", PerformedBy: "System"},
		{MovementID: "MOV0002", Timestamp: ts, Type: entity.MovementTypeConsumption, SKU: "A", ItemName: "Tornillo",
			Quantity: decimal.RequireFromString("-2.5"), FromLocation: "WH-MAIN", Reference: "OT-7", PerformedBy: "Ana"},
	}

	out, err := NewLedgerExporter().ExportMovements(context.Background(), movs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Movimiento", rows[0][0])
	assert.Equal(t, "MOV0001", rows[1][0])
	assert.Equal(t, "2026-03-01 10:00:00", rows[1][1])
	assert.Equal(t, "-2.5", rows[2][5])
	assert.Equal(t, "WH-MAIN", rows[2][6])
}

func TestExportMovements_Empty(t *testing.T) {
	out, err := NewLedgerExporter().ExportMovements(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportMovements_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLedgerExporter().ExportMovements(ctx, []*entity.StockMovement{{MovementID: "MOV0001"}})
	assert.ErrorIs(t, err, context.Canceled)
}
