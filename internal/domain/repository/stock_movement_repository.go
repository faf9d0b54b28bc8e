package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar el libro de movimientos.
// Location coincide con origen o destino.
type MovementFilter struct {
	SKU       string
	Location  string
	Type      string
	Reference string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto del libro de movimientos (solo inserción).
type StockMovementRepository interface {
	// NextSequence reserva el siguiente número de secuencia. Dentro de una transacción
	// bloquea el contador hasta el commit, por lo que las secuencias siguen el orden de confirmación.
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByMovementID(ctx context.Context, movementID string) (*entity.StockMovement, error)
	// List devuelve movimientos en orden de secuencia ascendente. Limit 0 = sin límite.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// ClaimShipment registra la clave de un despacho; domain.ErrDuplicate si ya existe.
	ClaimShipment(ctx context.Context, key string, at time.Time) error
}
