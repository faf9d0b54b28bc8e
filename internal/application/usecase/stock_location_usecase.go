package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockLocationUseCase casos de uso para ubicaciones de stock. No hay borrado: una ubicación
// referenciada por el libro solo puede inactivarse.
type StockLocationUseCase struct {
	repo repository.StockLocationRepository
}

// NewStockLocationUseCase construye el caso de uso.
func NewStockLocationUseCase(repo repository.StockLocationRepository) *StockLocationUseCase {
	return &StockLocationUseCase{repo: repo}
}

// Create crea una nueva ubicación. El código es único.
func (uc *StockLocationUseCase) Create(ctx context.Context, in dto.CreateStockLocationRequest) (*dto.StockLocationResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: código y nombre requeridos", domain.ErrInvalidInput)
	}
	typ := in.Type
	if typ == "" {
		typ = entity.LocationTypeWarehouse
	}
	status := in.Status
	if status == "" {
		status = entity.LocationStatusActive
	}
	if !entity.ValidLocationType(typ) || !entity.ValidLocationStatus(status) {
		return nil, fmt.Errorf("%w: tipo o estado de ubicación", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrDuplicate, code)
	}

	now := time.Now()
	location := &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Type:      typ,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	out := dto.FromStockLocation(location)
	return &out, nil
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (uc *StockLocationUseCase) GetByID(ctx context.Context, id string) (*dto.StockLocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	out := dto.FromStockLocation(location)
	return &out, nil
}

// Update actualiza nombre y/o estado; (nil, nil) si no existe.
func (uc *StockLocationUseCase) Update(ctx context.Context, id string, in dto.UpdateStockLocationRequest) (*dto.StockLocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		location.Name = name
	}
	if in.Status != nil {
		if !entity.ValidLocationStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		location.Status = *in.Status
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	out := dto.FromStockLocation(location)
	return &out, nil
}

// List lista ubicaciones con paginación, opcionalmente por estado.
func (uc *StockLocationUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.StockLocationListResponse, error) {
	if status != "" && !entity.ValidLocationStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.FromStockLocation(l))
	}
	return &dto.StockLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
