package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la orden hasta el fin de la transacción; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// MarkReceived pasa la orden a received solo si aún no lo está; domain.ErrConflict si no aplica.
	MarkReceived(ctx context.Context, id, locationID string, at time.Time) error
	// ClaimReceipt registra la clave única de recepción; domain.ErrDuplicate si ya existe.
	ClaimReceipt(ctx context.Context, key, orderID string, at time.Time) error
}
