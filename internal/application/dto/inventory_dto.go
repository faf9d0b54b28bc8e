package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// receipt/consumption/adjustment usan location; transfer usa from_location y to_location (id o código).
type RegisterMovementRequest struct {
	Type         string           `json:"type" validate:"required,oneof=receipt consumption adjustment transfer"`
	SKU          string           `json:"sku" validate:"required,max=100"`
	ItemName     string           `json:"item_name" validate:"max=200"`
	Location     string           `json:"location" validate:"max=100"`
	FromLocation string           `json:"from_location" validate:"max=100"`
	ToLocation   string           `json:"to_location" validate:"max=100"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	ReorderPoint *decimal.Decimal `json:"reorder_point,omitempty"`
	Reference    string           `json:"reference" validate:"required,max=100"`
	PerformedBy  string           `json:"performed_by" validate:"max=200"`
	Notes        string           `json:"notes" validate:"max=1000"`
}

// StockMovementResponse entrada del libro de movimientos.
type StockMovementResponse struct {
	MovementID   string          `json:"movement_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Type         string          `json:"type"`
	SKU          string          `json:"sku"`
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	FromLocation string          `json:"from_location,omitempty"`
	ToLocation   string          `json:"to_location,omitempty"`
	Reference    string          `json:"reference"`
	PerformedBy  string          `json:"performed_by"`
	Notes        string          `json:"notes,omitempty"`
}

// StockMovementListResponse lista paginada del libro.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LocationInventoryResponse stock de un SKU en una ubicación.
type LocationInventoryResponse struct {
	LocationID    string          `json:"location_id"`
	SKU           string          `json:"sku"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	Status        string          `json:"status"`
	LastRestocked *time.Time      `json:"last_restocked,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryItemResponse agregado por SKU.
type InventoryItemResponse struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	Status        string          `json:"status"`
	LastRestocked *time.Time      `json:"last_restocked,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryItemListResponse lista paginada de agregados.
type InventoryItemListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ItemBreakdownResponse agregado con detalle por ubicación.
type ItemBreakdownResponse struct {
	Item      InventoryItemResponse       `json:"item"`
	Locations []LocationInventoryResponse `json:"locations"`
}

// LocationStockResponse stock de una ubicación.
type LocationStockResponse struct {
	Location StockLocationResponse       `json:"location"`
	Items    []LocationInventoryResponse `json:"items"`
	Page     PageResponse                `json:"page"`
}

// RegisterMovementResponse resultado de POST /api/inventory/movements.
type RegisterMovementResponse struct {
	Movement StockMovementResponse       `json:"movement"`
	Levels   []LocationInventoryResponse `json:"levels"`
	Item     InventoryItemResponse       `json:"item"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU en o bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Status             string          `json:"status"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // ReorderPoint * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// DivergenceResponse divergencia detectada por el verificador.
type DivergenceResponse struct {
	Kind     string `json:"kind"`
	SKU      string `json:"sku"`
	Location string `json:"location,omitempty"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// IntegrityReportResponse resultado de GET /api/inventory/integrity.
type IntegrityReportResponse struct {
	OK          bool                 `json:"ok"`
	CheckedAt   time.Time            `json:"checked_at"`
	Items       int                  `json:"items"`
	Levels      int                  `json:"levels"`
	Movements   int                  `json:"movements"`
	Divergences []DivergenceResponse `json:"divergences"`
}
