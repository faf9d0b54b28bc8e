package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// IntegrityEnqueuer encola una verificación en segundo plano (implementado por jobs.Client).
type IntegrityEnqueuer interface {
	EnqueueIntegrityCheck(ctx context.Context, trigger string) (taskID string, err error)
}

// InventoryHandler maneja movimientos, consultas de stock, reposición e integridad.
type InventoryHandler struct {
	movements     *inventory.RegisterMovementUseCase
	queries       *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
	verifier      *inventory.IntegrityVerifier
	reports       *reports.ReportUseCase
	enqueuer      IntegrityEnqueuer
}

// NewInventoryHandler construye el handler. enqueuer puede ser nil.
func NewInventoryHandler(
	movements *inventory.RegisterMovementUseCase,
	queries *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	verifier *inventory.IntegrityVerifier,
	reports *reports.ReportUseCase,
	enqueuer IntegrityEnqueuer,
) *InventoryHandler {
	return &InventoryHandler{
		movements:     movements,
		queries:       queries,
		replenishment: replenishment,
		verifier:      verifier,
		reports:       reports,
		enqueuer:      enqueuer,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  receipt, consumption y adjustment usan location; transfer usa from_location y to_location.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.movements.RegisterMovement(c.UserContext(), inventory.MovementInput{
		Type:         in.Type,
		SKU:          in.SKU,
		ItemName:     in.ItemName,
		Location:     in.Location,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		ReorderPoint: in.ReorderPoint,
		Reference:    in.Reference,
		PerformedBy:  performerFor(c, in.PerformedBy),
		Notes:        in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Movement: dto.FromStockMovement(res.Movement),
		Levels:   dto.FromLocationInventories(res.Levels),
		Item:     dto.FromInventoryItem(res.Item),
	})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Produce      json
// @Param        sku        query  string  false  "SKU"
// @Param        location   query  string  false  "Código de ubicación (origen o destino)"
// @Param        type       query  string  false  "receipt | transfer | consumption | adjustment"
// @Param        reference  query  string  false  "Referencia (ej. número de orden)"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.queries.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := inventory.ClampPage(filter.Limit, filter.Offset)
	return c.JSON(dto.StockMovementListResponse{
		Items: dto.FromStockMovements(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// GetMovement godoc
// @Summary      Obtener movimiento por identificador
// @Tags         inventory
// @Produce      json
// @Param        movementId  path  string  true  "Identificador (MOV0001)"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{movementId} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.queries.GetMovement(c.UserContext(), c.Params("movementId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromStockMovement(mov))
}

// ExportMovements godoc
// @Summary      Exportar el libro a Excel
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        sku        query  string  false  "SKU"
// @Param        location   query  string  false  "Código de ubicación"
// @Param        type       query  string  false  "Tipo de movimiento"
// @Param        reference  query  string  false  "Referencia"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/export.xlsx [get]
func (h *InventoryHandler) ExportMovements(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	filter.Limit, filter.Offset = 0, 0
	out, err := h.reports.ExportLedger(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimientos-%s.xlsx"`, time.Now().UTC().Format("20060102")))
	return c.Send(out)
}

// ListItems godoc
// @Summary      Listar inventario agregado por SKU
// @Tags         inventory
// @Produce      json
// @Param        status  query  string  false  "in_stock | low_stock | out_of_stock"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	limit, offset := inventory.ClampPage(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	list, err := h.queries.ListItems(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryItemListResponse{
		Items: dto.FromInventoryItems(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// GetItem godoc
// @Summary      Obtener inventario agregado de un SKU
// @Tags         inventory
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{sku} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.queries.GetItem(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromInventoryItem(item))
}

// GetItemLocations godoc
// @Summary      Stock de un SKU por ubicación
// @Tags         inventory
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ItemBreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{sku}/locations [get]
func (h *InventoryHandler) GetItemLocations(c *fiber.Ctx) error {
	b, err := h.queries.GetItemBreakdown(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ItemBreakdownResponse{
		Item:      dto.FromInventoryItem(b.Item),
		Locations: dto.FromLocationInventories(b.Levels),
	})
}

// LocationStock godoc
// @Summary      Stock de una ubicación
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID o código de la ubicación"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LocationStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{id}/stock [get]
func (h *InventoryHandler) LocationStock(c *fiber.Ctx) error {
	limit, offset := inventory.ClampPage(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	loc, levels, err := h.queries.LocationStock(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LocationStockResponse{
		Location: dto.FromStockLocation(loc),
		Items:    dto.FromLocationInventories(levels),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  SKUs en o bajo su punto de reorden con la cantidad sugerida hasta 1.5x el punto.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Integrity godoc
// @Summary      Verificar consistencia del inventario
// @Description  Compara agregados contra la suma por ubicación y el stock por ubicación contra el libro.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.IntegrityReportResponse
// @Failure      409  {object}  dto.IntegrityReportResponse  "hay divergencias"
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/integrity [get]
func (h *InventoryHandler) Integrity(c *fiber.Ctx) error {
	report, err := h.verifier.Verify(c.UserContext())
	if err != nil && !errors.Is(err, domain.ErrInvariantViolation) {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if err != nil {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(toIntegrityReportResponse(report))
}

// EnqueueIntegrity godoc
// @Summary      Encolar verificación de consistencia
// @Tags         inventory
// @Produce      json
// @Success      202  {object}  map[string]string
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/inventory/integrity/check [post]
func (h *InventoryHandler) EnqueueIntegrity(c *fiber.Ctx) error {
	if h.enqueuer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "cola de tareas no configurada"})
	}
	id, err := h.enqueuer.EnqueueIntegrityCheck(c.UserContext(), "api")
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"task_id": id})
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		SKU:       strings.TrimSpace(c.Query("sku")),
		Location:  strings.TrimSpace(c.Query("location")),
		Type:      strings.TrimSpace(c.Query("type")),
		Reference: strings.TrimSpace(c.Query("reference")),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, fmt.Errorf("%w: %s debe ser RFC3339", domain.ErrInvalidInput, p.key)
		}
		*p.dst = &t
	}
	return f, nil
}

func toIntegrityReportResponse(r *inventory.IntegrityReport) dto.IntegrityReportResponse {
	divs := make([]dto.DivergenceResponse, 0, len(r.Divergences))
	for _, d := range r.Divergences {
		divs = append(divs, dto.DivergenceResponse{Kind: d.Kind, SKU: d.SKU, Location: d.Location, Expected: d.Expected, Actual: d.Actual})
	}
	return dto.IntegrityReportResponse{
		OK:          r.OK(),
		CheckedAt:   r.CheckedAt,
		Items:       r.Items,
		Levels:      r.Levels,
		Movements:   r.Movements,
		Divergences: divs,
	}
}
