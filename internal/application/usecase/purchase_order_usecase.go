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

// PurchaseOrderUseCase alta y consulta de órdenes de compra. La recepción la hace
// inventory.ReceivingOrchestrator.
type PurchaseOrderUseCase struct {
	repo repository.PurchaseOrderRepository
	now  func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repo repository.PurchaseOrderRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, now: time.Now}
}

// GenerateOrderNumber genera PO-<yyyymmdd>-<8 hex>.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("PO-%s-%s", at.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

// Create crea una orden de compra; el estado por defecto es draft.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.PurchaseOrderStatusDraft
	}
	po := &entity.PurchaseOrder{Status: status}
	if !po.CanReceive() {
		return nil, fmt.Errorf("%w: estado inicial %q", domain.ErrInvalidInput, status)
	}

	now := uc.now()
	po.ID = uuid.New().String()
	po.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if po.OrderNumber == "" {
		po.OrderNumber = GenerateOrderNumber(now)
	}
	po.Supplier = strings.TrimSpace(in.Supplier)
	po.CreatedAt = now
	po.UpdatedAt = now
	for _, it := range in.Items {
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo en %s", domain.ErrInvalidInput, it.SKU)
		}
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			SKU:       strings.TrimSpace(it.SKU),
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	if err := uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	out := dto.FromPurchaseOrder(po)
	return &out, nil
}

// GetByID obtiene una orden por ID; (nil, nil) si no existe.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, nil
	}
	out := dto.FromPurchaseOrder(po)
	return &out, nil
}

// List lista órdenes con paginación, opcionalmente por estado.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	if status != "" && !entity.ValidPurchaseOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, dto.FromPurchaseOrder(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
