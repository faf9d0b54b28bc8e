package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de orden de compra.
// Cantidad y SKU se validan al recibir: líneas sin SKU o con cantidad <= 0 se omiten.
type PurchaseOrderItemRequest struct {
	SKU       string          `json:"sku" validate:"max=100"`
	Name      string          `json:"name" validate:"max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	OrderNumber string                     `json:"order_number" validate:"max=50"`
	Supplier    string                     `json:"supplier" validate:"max=200"`
	Status      string                     `json:"status" validate:"omitempty,oneof=draft submitted approved ordered"`
	Items       []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	LocationID   string `json:"location_id" validate:"omitempty,uuid"`
	LocationCode string `json:"location_code" validate:"max=50"`
	PerformedBy  string `json:"performed_by" validate:"max=200"`
}

// PurchaseOrderItemResponse línea de orden en respuestas.
type PurchaseOrderItemResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                 string                      `json:"id"`
	OrderNumber        string                      `json:"order_number"`
	Supplier           string                      `json:"supplier"`
	Status             string                      `json:"status"`
	Items              []PurchaseOrderItemResponse `json:"items"`
	Total              decimal.Decimal             `json:"total"`
	ReceivedDate       *time.Time                  `json:"received_date,omitempty"`
	ReceivedLocationID string                      `json:"received_location_id,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// SkippedLineResponse línea omitida en la recepción.
type SkippedLineResponse struct {
	Index  int    `json:"index"`
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// ReceiveResultResponse resultado de POST /api/purchase-orders/:id/receive.
type ReceiveResultResponse struct {
	Order             PurchaseOrderResponse   `json:"order"`
	Location          StockLocationResponse   `json:"location"`
	LedgerEntries     []StockMovementResponse `json:"ledger_entries"`
	UpdatedAggregates []InventoryItemResponse `json:"updated_aggregates"`
	Skipped           []SkippedLineResponse   `json:"skipped"`
}
