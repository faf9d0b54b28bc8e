package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ValidateMovement verifica que un movimiento sea aceptable para el libro antes de asignarle secuencia.
func ValidateMovement(m *entity.StockMovement) error {
	if m == nil {
		return fmt.Errorf("%w: movimiento nulo", domain.ErrInvalidMovement)
	}
	if !entity.ValidMovementType(m.Type) {
		return fmt.Errorf("%w: tipo %q no soportado", domain.ErrInvalidMovement, m.Type)
	}
	if strings.TrimSpace(m.SKU) == "" {
		return fmt.Errorf("%w: sku requerido", domain.ErrInvalidMovement)
	}
	if m.Quantity.IsZero() {
		return fmt.Errorf("%w: cantidad no puede ser cero", domain.ErrInvalidMovement)
	}
	if strings.TrimSpace(m.Reference) == "" {
		return fmt.Errorf("%w: referencia requerida", domain.ErrInvalidMovement)
	}
	if strings.TrimSpace(m.PerformedBy) == "" {
		return fmt.Errorf("%w: performedBy requerido", domain.ErrInvalidMovement)
	}

	switch m.Type {
	case entity.MovementTypeReceipt:
		if !m.Quantity.IsPositive() {
			return fmt.Errorf("%w: una recepción requiere cantidad positiva", domain.ErrInvalidMovement)
		}
		if m.ToLocation == "" {
			return fmt.Errorf("%w: una recepción requiere ubicación destino", domain.ErrInvalidMovement)
		}
	case entity.MovementTypeConsumption:
		if !m.Quantity.IsNegative() {
			return fmt.Errorf("%w: un consumo requiere cantidad negativa", domain.ErrInvalidMovement)
		}
		if m.FromLocation == "" {
			return fmt.Errorf("%w: un consumo requiere ubicación origen", domain.ErrInvalidMovement)
		}
	case entity.MovementTypeTransfer:
		if !m.Quantity.IsPositive() {
			return fmt.Errorf("%w: un traslado requiere cantidad positiva", domain.ErrInvalidMovement)
		}
		if m.FromLocation == "" || m.ToLocation == "" {
			return fmt.Errorf("%w: un traslado requiere origen y destino", domain.ErrInvalidMovement)
		}
		if m.FromLocation == m.ToLocation {
			return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidMovement)
		}
	case entity.MovementTypeAdjustment:
		if m.ToLocation == "" {
			return fmt.Errorf("%w: un ajuste requiere ubicación", domain.ErrInvalidMovement)
		}
	}
	return nil
}

// ValidateReceiptLine indica si una línea de orden de compra produce movimiento.
// Líneas sin SKU o con cantidad <= 0 se omiten sin error.
func ValidateReceiptLine(item entity.PurchaseOrderItem) error {
	if strings.TrimSpace(item.SKU) == "" {
		return fmt.Errorf("%w: línea sin sku", domain.ErrInvalidMovement)
	}
	if !item.Quantity.IsPositive() {
		return fmt.Errorf("%w: cantidad %s no positiva", domain.ErrInvalidMovement, item.Quantity.String())
	}
	return nil
}
