package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	PurchaseOrderStatusDraft     = "draft"
	PurchaseOrderStatusSubmitted = "submitted"
	PurchaseOrderStatusApproved  = "approved"
	PurchaseOrderStatusOrdered   = "ordered"
	PurchaseOrderStatusReceived  = "received"
	PurchaseOrderStatusCancelled = "cancelled"
)

// PurchaseOrderItem línea de la orden de compra.
type PurchaseOrderItem struct {
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// PurchaseOrder orden de compra a proveedor. ReceivedLocationID solo se asigna al recibir.
type PurchaseOrder struct {
	ID                 string
	OrderNumber        string
	Supplier           string
	Status             string
	Items              []PurchaseOrderItem
	ReceivedDate       *time.Time
	ReceivedLocationID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanReceive indica si la orden está en un estado previo a la recepción.
func (po *PurchaseOrder) CanReceive() bool {
	switch po.Status {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered:
		return true
	}
	return false
}

// Total suma cantidad * precio unitario de todas las líneas.
func (po *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}

// ValidPurchaseOrderStatus indica si s es un estado de orden soportado.
func ValidPurchaseOrderStatus(s string) bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved,
		PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}
