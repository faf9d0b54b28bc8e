package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
)

// buildApp levanta la API completa sobre el almacenamiento en memoria.
func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		LocationUC:       usecase.NewStockLocationUseCase(repos.Locations),
		PurchaseOrderUC:  usecase.NewPurchaseOrderUseCase(repos.Orders),
		Receiving:        inventory.NewReceivingOrchestrator(store, nil, nil, log, 0),
		Shipments:        inventory.NewShipmentOrchestrator(store, nil, nil, log, 0),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, nil, nil, log, 0),
		Queries:          inventory.NewQueryUseCase(store, repos, nil, log),
		Replenishment:    inventory.NewReplenishmentUseCase(repos.Items),
		Integrity:        inventory.NewIntegrityVerifier(store, nil, log),
		Reports: reports.NewReportUseCase(repos.Orders, repos.Locations, repos.Movements,
			pdf.NewReceivingNoteGenerator(), xlsx.NewLedgerExporter()),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createLocation(t *testing.T, app *fiber.App, code string) dto.StockLocationResponse {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/locations", map[string]any{"code": code, "name": "Bodega " + code})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[dto.StockLocationResponse](t, raw)
}

func createOrder(t *testing.T, app *fiber.App, number string) dto.PurchaseOrderResponse {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/purchase-orders", map[string]any{
		"order_number": number,
		"supplier":     "Proveedor Uno",
		"status":       "ordered",
		"items": []map[string]any{
			{"sku": "A", "name": "Tornillo", "quantity": "10", "unit_price": "2.5"},
			{"sku": "B", "name": "Tuerca", "quantity": 4, "unit_price": 1},
			{"sku": "", "name": "Sin SKU", "quantity": 3, "unit_price": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[dto.PurchaseOrderResponse](t, raw)
}

func TestReceivePurchaseOrder_Flujo(t *testing.T) {
	app := buildApp(t)
	loc := createLocation(t, app, "wh-main")
	assert.Equal(t, "WH-MAIN", loc.Code)
	po := createOrder(t, app, "PO-TEST-1")

	resp, raw := call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive",
		map[string]any{"location_code": "WH-MAIN"}, "Authorization", bearer(t, "Ana Bodega"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	res := decode[dto.ReceiveResultResponse](t, raw)
	assert.Equal(t, "received", res.Order.Status)
	require.Len(t, res.LedgerEntries, 2)
	assert.Equal(t, "MOV0001", res.LedgerEntries[0].MovementID)
	assert.Equal(t, "Ana Bodega", res.LedgerEntries[0].PerformedBy)
	assert.Equal(t, "PO-TEST-1", res.LedgerEntries[0].Reference)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Index)

	// Segunda recepción: rechazada sin tocar el stock.
	resp, raw = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive",
		map[string]any{"location_code": "WH-MAIN"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_RECEIVED", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/items/A", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[dto.InventoryItemResponse](t, raw)
	assert.Equal(t, "10", item.Quantity.String())
	assert.Equal(t, "25", item.TotalValue.String())

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/movements?reference=PO-TEST-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.StockMovementListResponse](t, raw).Items, 2)

	resp, raw = call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/receiving-note.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/movements/export.xlsx", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/integrity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decode[dto.IntegrityReportResponse](t, raw).OK)
}

func TestReceivePurchaseOrder_Errores(t *testing.T) {
	app := buildApp(t)
	createLocation(t, app, "WH-MAIN")
	po := createOrder(t, app, "PO-TEST-2")

	resp, raw := call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", map[string]any{"location_code": "NOPE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/purchase-orders/00000000-0000-0000-0000-00000000dead/receive", map[string]any{"location_code": "WH-MAIN"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", map[string]any{"location_id": "no-es-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	// Nota de recepción de una orden no recibida.
	resp, raw = call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/receiving-note.pdf", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, raw).Code)
}

func TestRegisterMovement_HTTP(t *testing.T) {
	app := buildApp(t)
	createLocation(t, app, "WH-A")
	createLocation(t, app, "WH-B")

	resp, raw := call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "adjustment", "sku": "X", "item_name": "Cable", "location": "WH-A",
		"quantity": 5, "unit_cost": "3", "reorder_point": 2, "reference": "INV-1", "performed_by": "Luis",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.RegisterMovementResponse](t, raw)
	assert.Equal(t, "MOV0001", created.Movement.MovementID)
	assert.Equal(t, "Luis", created.Movement.PerformedBy)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "transfer", "sku": "X", "from_location": "WH-A", "to_location": "WH-B", "quantity": 2, "reference": "TR-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "consumption", "sku": "X", "location": "WH-B", "quantity": 9, "reference": "OT-1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "teleport", "sku": "X", "location": "WH-B", "quantity": 1, "reference": "?",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/items/X/locations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	b := decode[dto.ItemBreakdownResponse](t, raw)
	assert.Equal(t, "5", b.Item.Quantity.String())
	assert.Len(t, b.Locations, 2)

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/locations/WH-B/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	stock := decode[dto.LocationStockResponse](t, raw)
	require.Len(t, stock.Items, 1)
	assert.Equal(t, "2", stock.Items[0].Quantity.String())

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/movements/MOV0002", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "transfer", decode[dto.StockMovementResponse](t, raw).Type)

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/movements/MOV9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/movements?from=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLocations_HTTP(t *testing.T) {
	app := buildApp(t)
	loc := createLocation(t, app, "SITE-1")

	resp, raw := call(t, app, http.MethodPost, "/api/locations", map[string]any{"code": "site-1", "name": "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodPatch, "/api/locations/"+loc.ID, map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "inactive", decode[dto.StockLocationResponse](t, raw).Status)

	resp, raw = call(t, app, http.MethodGet, "/api/locations?status=inactive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.StockLocationListResponse](t, raw).Items, 1)

	resp, _ = call(t, app, http.MethodGet, "/api/locations/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "adjustment", "sku": "X", "location": "SITE-1", "quantity": 1, "reference": "INV-2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCATION_INACTIVE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestEnqueueIntegrity_SinCola(t *testing.T) {
	app := buildApp(t)
	resp, raw := call(t, app, http.MethodPost, "/api/inventory/integrity/check", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, "NOT_CONFIGURED", decode[dto.ErrorResponse](t, raw).Code)
}

func TestShip_HTTP(t *testing.T) {
	app := buildApp(t)
	createLocation(t, app, "WH-A")
	resp, raw := call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"type": "receipt", "sku": "X", "item_name": "Cable", "location": "WH-A",
		"quantity": 5, "unit_cost": "3", "reference": "PO-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	order := map[string]any{
		"reference": "SO-1",
		"location":  "WH-A",
		"lines": []map[string]any{
			{"sku": "X", "name": "Cable", "quantity": 2},
			{"sku": "", "quantity": 1},
		},
	}
	resp, raw = call(t, app, http.MethodPost, "/api/inventory/shipments", order, "Authorization", bearer(t, "Sofía Ventas"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	res := decode[dto.ShipmentResultResponse](t, raw)
	assert.Equal(t, "SO-1", res.Reference)
	require.Len(t, res.LedgerEntries, 1)
	assert.Equal(t, "consumption", res.LedgerEntries[0].Type)
	assert.Equal(t, "-2", res.LedgerEntries[0].Quantity.String())
	assert.Equal(t, "Sofía Ventas", res.LedgerEntries[0].PerformedBy)
	require.Len(t, res.UpdatedAggregates, 1)
	assert.Equal(t, "3", res.UpdatedAggregates[0].Quantity.String())
	require.Len(t, res.Skipped, 1)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/shipments", order)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_SHIPPED", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/shipments", map[string]any{
		"reference": "SO-2", "location": "WH-A",
		"lines": []map[string]any{{"sku": "X", "quantity": 4}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodPost, "/api/inventory/shipments", map[string]any{"reference": "SO-3", "lines": []map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, app, http.MethodGet, "/api/inventory/items/X", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", decode[dto.InventoryItemResponse](t, raw).Quantity.String())
}

func TestIDNoUUID_EsNoEncontrado(t *testing.T) {
	app := buildApp(t)
	for _, path := range []string{"/api/locations/foo", "/api/purchase-orders/foo"} {
		resp, raw := call(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code, path)
	}
}
