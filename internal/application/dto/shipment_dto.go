package dto

import "github.com/shopspring/decimal"

// ShipmentLineRequest línea de un pedido de venta. location vacío usa la del despacho.
type ShipmentLineRequest struct {
	SKU      string          `json:"sku" validate:"max=100"`
	Name     string          `json:"name" validate:"max=200"`
	Quantity decimal.Decimal `json:"quantity"`
	Location string          `json:"location" validate:"max=100"`
}

// ShipmentRequest body para POST /api/inventory/shipments.
type ShipmentRequest struct {
	Reference   string                `json:"reference" validate:"required,max=100"`
	Location    string                `json:"location" validate:"max=100"`
	PerformedBy string                `json:"performed_by" validate:"max=200"`
	Lines       []ShipmentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ShipmentResultResponse resultado de POST /api/inventory/shipments.
type ShipmentResultResponse struct {
	Reference         string                  `json:"reference"`
	LedgerEntries     []StockMovementResponse `json:"ledger_entries"`
	UpdatedAggregates []InventoryItemResponse `json:"updated_aggregates"`
	Skipped           []SkippedLineResponse   `json:"skipped"`
}
