package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// MaxExportRows límite de filas de una exportación del libro.
const MaxExportRows = 10000

// ReportUseCase documentos derivados del libro: nota de recepción (PDF) y exportación (XLSX).
type ReportUseCase struct {
	orders    repository.PurchaseOrderRepository
	locations repository.StockLocationRepository
	movements repository.StockMovementRepository
	notes     ReceivingNoteGenerator
	exporter  LedgerExporter
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	orders repository.PurchaseOrderRepository,
	locations repository.StockLocationRepository,
	movements repository.StockMovementRepository,
	notes ReceivingNoteGenerator,
	exporter LedgerExporter,
) *ReportUseCase {
	return &ReportUseCase{
		orders:    orders,
		locations: locations,
		movements: movements,
		notes:     notes,
		exporter:  exporter,
	}
}

// ReceivingNotePDF genera la nota de recepción de una orden ya recibida.
func (uc *ReportUseCase) ReceivingNotePDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, orderID)
	}
	if order.Status != entity.PurchaseOrderStatusReceived {
		return nil, "", fmt.Errorf("%w: la orden %s no ha sido recibida", domain.ErrInvalidTransition, order.OrderNumber)
	}

	var location *entity.StockLocation
	if order.ReceivedLocationID != "" {
		if location, err = uc.locations.GetByID(ctx, order.ReceivedLocationID); err != nil {
			return nil, "", err
		}
	}
	movements, err := uc.movements.List(ctx, repository.MovementFilter{
		Reference: order.OrderNumber,
		Type:      entity.MovementTypeReceipt,
	})
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.notes.GenerateReceivingNote(ctx, ReceivingNote{Order: order, Location: location, Movements: movements})
	if err != nil {
		return nil, "", fmt.Errorf("generate receiving note: %w", err)
	}
	return pdf, fmt.Sprintf("recepcion-%s.pdf", order.OrderNumber), nil
}

// ExportLedger exporta a XLSX los movimientos que cumplen el filtro (máximo MaxExportRows).
func (uc *ReportUseCase) ExportLedger(ctx context.Context, filter repository.MovementFilter) ([]byte, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, filter.Type)
	}
	if filter.Limit <= 0 || filter.Limit > MaxExportRows {
		filter.Limit = MaxExportRows
	}
	movements, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportMovements(ctx, movements)
}
