package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// PurchaseOrderHandler maneja órdenes de compra y su recepción.
type PurchaseOrderHandler struct {
	uc        *usecase.PurchaseOrderUseCase
	receiving *inventory.ReceivingOrchestrator
	reports   *reports.ReportUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *usecase.PurchaseOrderUseCase, receiving *inventory.ReceivingOrchestrator, reports *reports.ReportUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, receiving: receiving, reports: reports}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden de compra
// @Description  Registra un movimiento receipt por línea válida, actualiza el stock de la ubicación
// @Description  y el agregado, y marca la orden como recibida. Todo o nada.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "location_id o location_code"
// @Success      201   {object}  dto.ReceiveResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION, ALREADY_RECEIVED, CONCURRENCY_CONFLICT"
// @Failure      503   {object}  dto.ErrorResponse  "TRANSACTION_ABORTED"
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.receiving.ReceivePurchaseOrder(c.UserContext(), inventory.ReceiveInput{
		OrderID:      c.Params("id"),
		LocationID:   in.LocationID,
		LocationCode: in.LocationCode,
		PerformedBy:  performerFor(c, in.PerformedBy),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceiveResultResponse(res))
}

// ReceivingNote godoc
// @Summary      Nota de recepción en PDF
// @Tags         purchase-orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receiving-note.pdf [get]
func (h *PurchaseOrderHandler) ReceivingNote(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.ReceivingNotePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

func toReceiveResultResponse(res *inventory.ReceiveResult) dto.ReceiveResultResponse {
	skipped := make([]dto.SkippedLineResponse, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, dto.SkippedLineResponse{Index: s.Index, SKU: s.SKU, Reason: s.Reason})
	}
	return dto.ReceiveResultResponse{
		Order:             dto.FromPurchaseOrder(res.Order),
		Location:          dto.FromStockLocation(res.Location),
		LedgerEntries:     dto.FromStockMovements(res.LedgerEntries),
		UpdatedAggregates: dto.FromInventoryItems(res.UpdatedAggregates),
		Skipped:           skipped,
	}
}
