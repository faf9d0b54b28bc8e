package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// ShipmentHandler despacho de pedidos de venta.
type ShipmentHandler struct {
	shipments *inventory.ShipmentOrchestrator
}

func NewShipmentHandler(shipments *inventory.ShipmentOrchestrator) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

// Ship godoc
// @Summary      Despachar pedido de venta
// @Description  Descuenta cada línea de su ubicación de origen en una sola transacción. Un pedido se despacha una única vez.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShipmentRequest  true  "Pedido"
// @Success      201   {object}  dto.ShipmentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ALREADY_SHIPPED"
// @Failure      422   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/shipments [post]
func (h *ShipmentHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	lines := make([]inventory.ShipmentLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.ShipmentLine{SKU: l.SKU, Name: l.Name, Quantity: l.Quantity, Location: l.Location})
	}
	res, err := h.shipments.Ship(c.UserContext(), inventory.ShipmentInput{
		Reference:   in.Reference,
		Location:    in.Location,
		Lines:       lines,
		PerformedBy: performerFor(c, in.PerformedBy),
	})
	if err != nil {
		return writeError(c, err)
	}
	skipped := make([]dto.SkippedLineResponse, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, dto.SkippedLineResponse{Index: s.Index, SKU: s.SKU, Reason: s.Reason})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ShipmentResultResponse{
		Reference:         res.Reference,
		LedgerEntries:     dto.FromStockMovements(res.LedgerEntries),
		UpdatedAggregates: dto.FromInventoryItems(res.UpdatedAggregates),
		Skipped:           skipped,
	})
}
