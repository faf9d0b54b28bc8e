// Package xlsx exporta el libro de movimientos a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SheetName hoja con los movimientos.
const SheetName = "Movimientos"

var ledgerColumns = []struct {
	title string
	width float64
}{
	{"Movimiento", 12},
	{"Fecha", 20},
	{"Tipo", 14},
	{"SKU", 16},
	{"Artículo", 28},
	{"Cantidad", 12},
	{"Origen", 16},
	{"Destino", 16},
	{"Referencia", 18},
	{"Realizado por", 18},
	{"Notas", 40},
}

var _ reports.LedgerExporter = (*LedgerExporter)(nil)

// LedgerExporter implementa reports.LedgerExporter con excelize.
type LedgerExporter struct{}

// NewLedgerExporter construye el exportador.
func NewLedgerExporter() *LedgerExporter { return &LedgerExporter{} }

// ExportMovements escribe un libro con una fila por movimiento, en el orden recibido.
func (e *LedgerExporter) ExportMovements(ctx context.Context, movements []*entity.StockMovement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, c := range ledgerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, c.title); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, colName, colName, c.width)
	}

	for i, m := range movements {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		qty, _ := m.Quantity.Float64()
		values := []any{
			m.MovementID,
			m.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			m.Type,
			m.SKU,
			m.ItemName,
			qty,
			m.FromLocation,
			m.ToLocation,
			m.Reference,
			m.PerformedBy,
			m.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.AutoFilter(SheetName, fmt.Sprintf("A1:K%d", len(movements)+1), nil); err != nil {
		return nil, fmt.Errorf("xlsx: filtro: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
