package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC       *usecase.StockLocationUseCase
	PurchaseOrderUC  *usecase.PurchaseOrderUseCase
	Receiving        *inventory.ReceivingOrchestrator
	Shipments        *inventory.ShipmentOrchestrator
	RegisterMovement *inventory.RegisterMovementUseCase
	Queries          *inventory.QueryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Integrity        *inventory.IntegrityVerifier
	Reports          *reports.ReportUseCase
	Enqueuer         IntegrityEnqueuer
	JWTSecret        string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	locations := api.Group("/locations")
	locationHandler := NewStockLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Patch("/:id", locationHandler.Update)

	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.Receiving, deps.Reports)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Get("/:id/receiving-note.pdf", orderHandler.ReceivingNote)

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Queries, deps.Replenishment, deps.Integrity, deps.Reports, deps.Enqueuer)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/export.xlsx", inventoryHandler.ExportMovements)
	inv.Get("/movements/:movementId", inventoryHandler.GetMovement)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Get("/items/:sku", inventoryHandler.GetItem)
	inv.Get("/items/:sku/locations", inventoryHandler.GetItemLocations)
	inv.Get("/locations/:id/stock", inventoryHandler.LocationStock)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	inv.Get("/integrity", inventoryHandler.Integrity)
	inv.Post("/integrity/check", inventoryHandler.EnqueueIntegrity)

	shipmentHandler := NewShipmentHandler(deps.Shipments)
	inv.Post("/shipments", shipmentHandler.Ship)
}
