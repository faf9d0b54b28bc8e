package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockLocationRepository define el puerto de persistencia para ubicaciones de stock (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type StockLocationRepository interface {
	Create(ctx context.Context, location *entity.StockLocation) error
	GetByID(ctx context.Context, id string) (*entity.StockLocation, error)
	GetByCode(ctx context.Context, code string) (*entity.StockLocation, error)
	Update(ctx context.Context, location *entity.StockLocation) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.StockLocation, error)
}
