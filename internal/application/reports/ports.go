package reports

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ReceivingNote datos de la nota de recepción de una orden de compra.
type ReceivingNote struct {
	Order     *entity.PurchaseOrder
	Location  *entity.StockLocation
	Movements []*entity.StockMovement
}

// ReceivingNoteGenerator genera el PDF de una nota de recepción.
type ReceivingNoteGenerator interface {
	GenerateReceivingNote(ctx context.Context, note ReceivingNote) ([]byte, error)
}

// LedgerExporter exporta movimientos a una hoja de cálculo.
type LedgerExporter interface {
	ExportMovements(ctx context.Context, movements []*entity.StockMovement) ([]byte, error)
}
