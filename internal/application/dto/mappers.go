package dto

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// FromStockLocation convierte la entidad en respuesta.
func FromStockLocation(l *entity.StockLocation) StockLocationResponse {
	return StockLocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Type:      l.Type,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// FromStockMovement convierte la entidad en respuesta.
func FromStockMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:   m.MovementID,
		Timestamp:    m.Timestamp,
		Type:         m.Type,
		SKU:          m.SKU,
		ItemName:     m.ItemName,
		Quantity:     m.Quantity,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Reference:    m.Reference,
		PerformedBy:  m.PerformedBy,
		Notes:        m.Notes,
	}
}

// FromStockMovements convierte una lista; nunca devuelve nil.
func FromStockMovements(list []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromStockMovement(m))
	}
	return out
}

// FromLocationInventory convierte la entidad en respuesta.
func FromLocationInventory(l *entity.LocationInventory) LocationInventoryResponse {
	return LocationInventoryResponse{
		LocationID:    l.LocationID,
		SKU:           l.SKU,
		ItemName:      l.ItemName,
		Quantity:      l.Quantity,
		UnitCost:      l.UnitCost,
		ReorderPoint:  l.ReorderPoint,
		Status:        l.Status,
		LastRestocked: l.LastRestocked,
		UpdatedAt:     l.UpdatedAt,
	}
}

// FromLocationInventories convierte una lista; nunca devuelve nil.
func FromLocationInventories(list []*entity.LocationInventory) []LocationInventoryResponse {
	out := make([]LocationInventoryResponse, 0, len(list))
	for _, l := range list {
		out = append(out, FromLocationInventory(l))
	}
	return out
}

// FromInventoryItem convierte la entidad en respuesta.
func FromInventoryItem(it *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		SKU:           it.SKU,
		Name:          it.Name,
		Quantity:      it.Quantity,
		UnitCost:      it.UnitCost,
		TotalValue:    it.TotalValue,
		ReorderPoint:  it.ReorderPoint,
		Status:        it.Status,
		LastRestocked: it.LastRestocked,
		UpdatedAt:     it.UpdatedAt,
	}
}

// FromInventoryItems convierte una lista; nunca devuelve nil.
func FromInventoryItems(list []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromInventoryItem(it))
	}
	return out
}

// FromPurchaseOrder convierte la entidad en respuesta.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, PurchaseOrderItemResponse{
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Quantity.Mul(it.UnitPrice),
		})
	}
	return PurchaseOrderResponse{
		ID:                 po.ID,
		OrderNumber:        po.OrderNumber,
		Supplier:           po.Supplier,
		Status:             po.Status,
		Items:              items,
		Total:              po.Total(),
		ReceivedDate:       po.ReceivedDate,
		ReceivedLocationID: po.ReceivedLocationID,
		CreatedAt:          po.CreatedAt,
		UpdatedAt:          po.UpdatedAt,
	}
}
