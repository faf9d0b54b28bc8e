package usecase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestStockLocationUseCase_CreateNormalizaCodigo(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStockLocationUseCase(memory.NewStore().Repos().Locations)

	out, err := uc.Create(ctx, dto.CreateStockLocationRequest{Code: " loc001 ", Name: "Principal"})
	require.NoError(t, err)
	assert.Equal(t, "LOC001", out.Code)
	assert.Equal(t, entity.LocationTypeWarehouse, out.Type)
	assert.Equal(t, entity.LocationStatusActive, out.Status)
	assert.NotEmpty(t, out.ID)

	_, err = uc.Create(ctx, dto.CreateStockLocationRequest{Code: "LOC001", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateStockLocationRequest{Code: "", Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateStockLocationRequest{Code: "X", Name: "X", Type: "garage"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockLocationUseCase_UpdateYList(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStockLocationUseCase(memory.NewStore().Repos().Locations)
	a, err := uc.Create(ctx, dto.CreateStockLocationRequest{Code: "A", Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateStockLocationRequest{Code: "B", Name: "B", Type: entity.LocationTypeSite})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, a.ID, dto.UpdateStockLocationRequest{Name: strPtr("Bodega A"), Status: strPtr(entity.LocationStatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, "Bodega A", updated.Name)
	assert.Equal(t, entity.LocationStatusInactive, updated.Status)
	assert.Equal(t, "A", updated.Code, "el código no cambia")

	_, err = uc.Update(ctx, a.ID, dto.UpdateStockLocationRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.Update(ctx, "no-existe", dto.UpdateStockLocationRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	active, err := uc.List(ctx, entity.LocationStatusActive, 0, 0)
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, "B", active.Items[0].Code)
	assert.Equal(t, 20, active.Page.Limit)

	_, err = uc.List(ctx, "borrada", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPurchaseOrderUseCase(memory.NewStore().Repos().Orders)

	out, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		Supplier: " Acme ",
		Items: []dto.PurchaseOrderItemRequest{
			{SKU: " A ", Name: "Tornillo", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("2.5")},
			{SKU: "B", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusDraft, out.Status)
	assert.Equal(t, "Acme", out.Supplier)
	assert.Regexp(t, regexp.MustCompile(`^PO-\d{8}-[0-9A-F]{8}$`), out.OrderNumber)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "A", out.Items[0].SKU)
	assert.True(t, out.Items[0].Total.Equal(decimal.NewFromInt(25)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(33)))

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.OrderNumber, got.OrderNumber)
}

func TestPurchaseOrderUseCase_CreateRechaza(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPurchaseOrderUseCase(memory.NewStore().Repos().Orders)
	item := dto.PurchaseOrderItemRequest{SKU: "A", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}

	_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{Status: entity.PurchaseOrderStatusReceived, Items: []dto.PurchaseOrderItemRequest{item}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se puede crear una orden ya recibida")

	neg := item
	neg.UnitPrice = decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{Items: []dto.PurchaseOrderItemRequest{neg}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{OrderNumber: "PO-1", Items: []dto.PurchaseOrderItemRequest{item}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{OrderNumber: "PO-1", Items: []dto.PurchaseOrderItemRequest{item}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	a, b := usecase.GenerateOrderNumber(at), usecase.GenerateOrderNumber(at)
	assert.Contains(t, a, "PO-20260309-")
	assert.NotEqual(t, a, b)
}
