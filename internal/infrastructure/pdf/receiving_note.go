// Package pdf genera la nota de recepción de una orden de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor          │  N° Orden + Fecha recepción    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Código + nombre de la ubicación                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Movimiento | SKU | Artículo | Cantidad | Costo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor recibido                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.ReceivingNoteGenerator = (*ReceivingNoteGenerator)(nil)

// ReceivingNoteGenerator implementa reports.ReceivingNoteGenerator usando Maroto v2.
type ReceivingNoteGenerator struct {
	printer *message.Printer
}

// NewReceivingNoteGenerator construye el generador con formato numérico en español.
func NewReceivingNoteGenerator() *ReceivingNoteGenerator {
	return &ReceivingNoteGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateReceivingNote genera el PDF y devuelve sus bytes.
func (g *ReceivingNoteGenerator) GenerateReceivingNote(_ context.Context, note reports.ReceivingNote) ([]byte, error) {
	if note.Order == nil {
		return nil, fmt.Errorf("pdf: orden requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de recepción "+note.Order.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(note.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow(note.Location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	costs := unitCosts(note.Order)
	total := decimal.Zero
	for _, mv := range note.Movements {
		cost := costs[mv.SKU]
		total = total.Add(mv.Quantity.Mul(cost))
		m.AddRows(g.movementRow(mv, cost))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(total, len(note.Movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceivingNoteGenerator) headerRow(po *entity.PurchaseOrder) core.Row {
	received := "—"
	if po.ReceivedDate != nil {
		received = po.ReceivedDate.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(po.Supplier, "N/A"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Proveedor", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("NOTA DE RECEPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(po.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Recibida: "+received, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func locationRow(loc *entity.StockLocation) core.Row {
	desc := "—"
	if loc != nil {
		desc = fmt.Sprintf("%s  |  %s", loc.Code, loc.Name)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("UBICACIÓN DE DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(desc, props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Movimiento", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("Costo unit.", 2, align.Right),
	)
}

func (g *ReceivingNoteGenerator) movementRow(mv *entity.StockMovement, cost decimal.Decimal) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(mv.MovementID, 2, align.Left),
		cell(mv.SKU, 2, align.Left),
		cell(mv.ItemName, 4, align.Left),
		cell(g.formatQty(mv.Quantity), 2, align.Right),
		cell("$"+g.formatMoney(cost), 2, align.Right),
	)
}

func (g *ReceivingNoteGenerator) totalRow(total decimal.Decimal, lines int) core.Row {
	return row.New(14).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d líneas recibidas", lines), props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})),
		col.New(3).Add(text.New("VALOR RECIBIDO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("$"+g.formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// unitCosts primer precio positivo por SKU en las líneas de la orden.
func unitCosts(po *entity.PurchaseOrder) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(po.Items))
	for _, it := range po.Items {
		if _, ok := out[it.SKU]; !ok && it.UnitPrice.IsPositive() {
			out[it.SKU] = it.UnitPrice
		}
	}
	return out
}

func (g *ReceivingNoteGenerator) formatMoney(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func (g *ReceivingNoteGenerator) formatQty(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(4)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
