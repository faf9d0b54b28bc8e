package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// shipmentFixture: X con 10 en WH-A y Y con 6 en WH-B (MOV0001 y MOV0002).
func newShipmentFixture(t *testing.T) *movementFixture {
	t.Helper()
	f := newMovementFixture(t)
	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Type: entity.MovementTypeReceipt, SKU: "Y", ItemName: "Tubo", Location: "WH-B",
		Quantity: dec("6"), UnitCost: decPtr("2"), Reference: "INI-2",
	})
	require.NoError(t, err)
	return f
}

func levelQty(t *testing.T, repos inventory.TxRepos, locationID, sku string) string {
	t.Helper()
	row, err := repos.Levels.Get(context.Background(), locationID, sku)
	require.NoError(t, err)
	if row == nil {
		return "none"
	}
	return row.Quantity.String()
}

func TestShip_DescuentaTodasLasLineas(t *testing.T) {
	ctx := context.Background()
	f := newShipmentFixture(t)
	cache := newRecordingCache()
	metrics := newCountingMetrics()
	uc := inventory.NewShipmentOrchestrator(f.store, cache, metrics, zerolog.Nop(), 0)

	res, err := uc.Ship(ctx, inventory.ShipmentInput{
		Reference: "SO-100",
		Location:  "WH-A",
		Lines: []inventory.ShipmentLine{
			{SKU: "X", Quantity: dec("4")},
			{SKU: "", Quantity: dec("1")},
			{SKU: "Y", Name: "Tubo PVC", Quantity: dec("2"), Location: "WH-B"},
			{SKU: "X", Quantity: dec("1")},
		},
		PerformedBy: "Marta",
	})
	require.NoError(t, err)

	require.Len(t, res.LedgerEntries, 3)
	first := res.LedgerEntries[0]
	assert.Equal(t, "MOV0003", first.MovementID)
	assert.Equal(t, entity.MovementTypeConsumption, first.Type)
	assert.True(t, first.Quantity.Equal(dec("-4")))
	assert.Equal(t, "WH-A", first.FromLocation)
	assert.Empty(t, first.ToLocation)
	assert.Equal(t, "SO-100", first.Reference)
	assert.Equal(t, "Marta", first.PerformedBy)
	assert.Equal(t, "Sales order SO-100 - Cable", first.Notes)
	assert.Equal(t, "WH-B", res.LedgerEntries[1].FromLocation)
	assert.Equal(t, "Sales order SO-100 - Tubo PVC", res.LedgerEntries[1].Notes)
	assert.Equal(t, "MOV0005", res.LedgerEntries[2].MovementID)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.Skipped[0].Index)

	require.Len(t, res.UpdatedAggregates, 2)
	assert.Equal(t, "X", res.UpdatedAggregates[0].SKU)
	assert.True(t, res.UpdatedAggregates[0].Quantity.Equal(dec("5")))
	assert.True(t, res.UpdatedAggregates[0].TotalValue.Equal(dec("20")))
	assert.Equal(t, entity.StockStatusInStock, res.UpdatedAggregates[0].Status)
	assert.True(t, res.UpdatedAggregates[1].Quantity.Equal(dec("4")))

	assert.Equal(t, "5", levelQty(t, f.repos, f.a.ID, "X"))
	assert.Equal(t, "4", levelQty(t, f.repos, f.b.ID, "Y"))
	assert.ElementsMatch(t, []string{"X", "Y"}, cache.Invalidated())
	assert.Equal(t, 1, metrics.movements[inventory.OutcomeCommitted])
	requireConsistent(t, f.store)
}

func TestShip_StockInsuficienteRevierteTodo(t *testing.T) {
	ctx := context.Background()
	f := newShipmentFixture(t)
	uc := inventory.NewShipmentOrchestrator(f.store, nil, nil, zerolog.Nop(), 0)

	_, err := uc.Ship(ctx, inventory.ShipmentInput{
		Reference: "SO-200",
		Location:  "WH-A",
		Lines: []inventory.ShipmentLine{
			{SKU: "X", Quantity: dec("3")},
			{SKU: "Y", Quantity: dec("1")}, // Y no tiene stock en WH-A
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, "10", levelQty(t, f.repos, f.a.ID, "X"), "la primera línea se revierte")
	assert.Equal(t, "none", levelQty(t, f.repos, f.a.ID, "Y"))
	assert.Len(t, allMovements(t, f.repos), 2)
	item, err := f.repos.Items.Get(ctx, "X")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("10")))
	requireConsistent(t, f.store)

	// La clave de despacho también se revierte: el pedido corregido puede despacharse.
	res, err := uc.Ship(ctx, inventory.ShipmentInput{
		Reference: "SO-200",
		Location:  "WH-A",
		Lines:     []inventory.ShipmentLine{{SKU: "X", Quantity: dec("3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "MOV0003", res.LedgerEntries[0].MovementID, "la secuencia revertida se reutiliza")
	assert.Equal(t, inventory.DefaultPerformer, res.LedgerEntries[0].PerformedBy)
}

func TestShip_SKUDesconocidoRechaza(t *testing.T) {
	f := newShipmentFixture(t)
	uc := inventory.NewShipmentOrchestrator(f.store, nil, nil, zerolog.Nop(), 0)

	_, err := uc.Ship(context.Background(), inventory.ShipmentInput{
		Reference: "SO-300",
		Location:  "WH-A",
		Lines:     []inventory.ShipmentLine{{SKU: "NOPE", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, allMovements(t, f.repos), 2)
}

func TestShip_YaDespachado(t *testing.T) {
	ctx := context.Background()
	f := newShipmentFixture(t)
	uc := inventory.NewShipmentOrchestrator(f.store, nil, nil, zerolog.Nop(), 0)
	in := inventory.ShipmentInput{
		Reference: "SO-400",
		Location:  "WH-A",
		Lines:     []inventory.ShipmentLine{{SKU: "X", Quantity: dec("2")}},
	}

	_, err := uc.Ship(ctx, in)
	require.NoError(t, err)

	_, err = uc.Ship(ctx, in)
	require.ErrorIs(t, err, domain.ErrAlreadyShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "8", levelQty(t, f.repos, f.a.ID, "X"), "un segundo despacho no descuenta")
}

func TestShip_Validaciones(t *testing.T) {
	f := newShipmentFixture(t)
	seedLocation(t, f.repos, "WH-OFF", entity.LocationStatusInactive)
	uc := inventory.NewShipmentOrchestrator(f.store, nil, nil, zerolog.Nop(), 0)
	x := []inventory.ShipmentLine{{SKU: "X", Quantity: dec("1")}}

	cases := []struct {
		name string
		in   inventory.ShipmentInput
		want error
	}{
		{"sin referencia", inventory.ShipmentInput{Location: "WH-A", Lines: x}, domain.ErrInvalidInput},
		{"sin líneas", inventory.ShipmentInput{Reference: "SO-1", Location: "WH-A"}, domain.ErrInvalidInput},
		{"sin ubicación", inventory.ShipmentInput{Reference: "SO-2", Lines: x}, domain.ErrInvalidInput},
		{"ubicación inexistente", inventory.ShipmentInput{Reference: "SO-3", Location: "WH-Z", Lines: x}, domain.ErrNotFound},
		{"ubicación inactiva", inventory.ShipmentInput{Reference: "SO-4", Location: "WH-OFF", Lines: x}, domain.ErrLocationInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Ship(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Len(t, allMovements(t, f.repos), 2)
}

func TestShip_FalloDeAlmacenamientoRevierte(t *testing.T) {
	ctx := context.Background()
	f := newShipmentFixture(t)
	uc := inventory.NewShipmentOrchestrator(f.store, nil, nil, zerolog.Nop(), 0)
	in := inventory.ShipmentInput{
		Reference: "SO-500",
		Location:  "WH-A",
		Lines: []inventory.ShipmentLine{
			{SKU: "X", Quantity: dec("1")},
			{SKU: "Y", Quantity: dec("1"), Location: "WH-B"},
		},
	}

	for _, op := range []string{memory.OpClaimShipment, memory.OpCreateMovement, memory.OpSaveLevel, memory.OpSaveItem} {
		t.Run(op, func(t *testing.T) {
			after := 1
			if op == memory.OpClaimShipment {
				after = 0
			}
			f.store.InjectFault(op, after, errors.New("disco lleno"))
			_, err := uc.Ship(ctx, in)
			require.Error(t, err)
			f.store.ClearFaults()

			assert.Equal(t, "10", levelQty(t, f.repos, f.a.ID, "X"))
			assert.Equal(t, "6", levelQty(t, f.repos, f.b.ID, "Y"))
			assert.Len(t, allMovements(t, f.repos), 2)
			requireConsistent(t, f.store)
		})
	}

	res, err := uc.Ship(ctx, in)
	require.NoError(t, err)
	assert.Len(t, res.LedgerEntries, 2)
}
