package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Paginación por defecto de los listados.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampPage normaliza limit/offset.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ItemBreakdown agregado de un SKU con su detalle por ubicación.
type ItemBreakdown struct {
	Item   *entity.InventoryItem
	Levels []*entity.LocationInventory
}

// QueryUseCase lecturas de inventario y libro. Las lecturas que combinan agregado y
// ubicaciones usan una instantánea.
type QueryUseCase struct {
	txRunner TxRunner
	repos    TxRepos
	cache    ItemCache
	log      zerolog.Logger
}

// NewQueryUseCase construye el caso de uso de consultas. cache puede ser nil.
func NewQueryUseCase(txRunner TxRunner, repos TxRepos, cache ItemCache, log zerolog.Logger) *QueryUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	return &QueryUseCase{txRunner: txRunner, repos: repos, cache: cache, log: log}
}

// GetItem devuelve el agregado del SKU, leyendo primero de caché.
func (uc *QueryUseCase) GetItem(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku requerido", domain.ErrInvalidInput)
	}
	// La versión se lee antes que la base: si un commit invalida en medio, Set se descarta.
	cached, version, cacheErr := uc.cache.Get(ctx, sku)
	if cacheErr != nil {
		uc.log.Warn().Err(cacheErr).Str("sku", sku).Msg("lectura de caché fallida")
	} else if cached != nil {
		return cached, nil
	}

	item, err := uc.repos.Items.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrNotFound, sku)
	}
	if cacheErr == nil {
		if stored, err := uc.cache.Set(ctx, item, version); err != nil {
			uc.log.Warn().Err(err).Str("sku", sku).Msg("escritura de caché fallida")
		} else if !stored {
			uc.log.Debug().Str("sku", sku).Msg("agregado obsoleto, no se guarda en caché")
		}
	}
	return item, nil
}

// ListItems lista agregados, opcionalmente filtrados por estado.
func (uc *QueryUseCase) ListItems(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryItem, error) {
	if status != "" && status != entity.StockStatusInStock && status != entity.StockStatusLowStock && status != entity.StockStatusOutOfStock {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	limit, offset = ClampPage(limit, offset)
	return uc.repos.Items.List(ctx, status, limit, offset)
}

// GetItemBreakdown lee el agregado y su stock por ubicación en una misma instantánea, sin
// caché, de modo que la cantidad del agregado siempre coincide con la suma de las filas.
func (uc *QueryUseCase) GetItemBreakdown(ctx context.Context, sku string) (*ItemBreakdown, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku requerido", domain.ErrInvalidInput)
	}
	var out ItemBreakdown
	err := uc.txRunner.RunSnapshot(ctx, func(ctx context.Context, repos TxRepos) error {
		item, err := repos.Items.Get(ctx, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: sku %s", domain.ErrNotFound, sku)
		}
		levels, err := repos.Levels.ListBySKU(ctx, sku)
		if err != nil {
			return err
		}
		out.Item, out.Levels = item, levels
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LocationStock devuelve el stock de una ubicación (id o código).
func (uc *QueryUseCase) LocationStock(ctx context.Context, locationRef string, limit, offset int) (*entity.StockLocation, []*entity.LocationInventory, error) {
	loc, err := ResolveLocationRef(ctx, uc.repos.Locations, locationRef)
	if err != nil {
		return nil, nil, err
	}
	limit, offset = ClampPage(limit, offset)
	levels, err := uc.repos.Levels.ListByLocation(ctx, loc.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return loc, levels, nil
}

// ListMovements lista el libro con filtros y paginación.
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, filter.Type)
	}
	filter.Limit, filter.Offset = ClampPage(filter.Limit, filter.Offset)
	return uc.repos.Movements.List(ctx, filter)
}

// GetMovement busca por identificador legible (MOV0001).
func (uc *QueryUseCase) GetMovement(ctx context.Context, movementID string) (*entity.StockMovement, error) {
	if _, ok := entity.ParseMovementSequence(movementID); !ok {
		return nil, fmt.Errorf("%w: movementId %q", domain.ErrInvalidInput, movementID)
	}
	mov, err := uc.repos.Movements.GetByMovementID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
	}
	return mov, nil
}
