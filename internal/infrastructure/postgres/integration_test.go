package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
)

// newTestPool crea un esquema aislado en DATABASE_URL, aplica las migraciones y lo elimina al terminar.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	schema := "ledger_test_" + uuid.NewString()[:8]
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.MaxConns = 16
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	// Reaplicar no hace nada.
	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	return pool
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedLocation(t *testing.T, repos inventory.TxRepos, code string) *entity.StockLocation {
	t.Helper()
	now := time.Now().UTC()
	loc := &entity.StockLocation{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      "Bodega " + code,
		Type:      entity.LocationTypeWarehouse,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.Locations.Create(context.Background(), loc))
	return loc
}

func seedOrder(t *testing.T, repos inventory.TxRepos, number string, items ...entity.PurchaseOrderItem) *entity.PurchaseOrder {
	t.Helper()
	now := time.Now().UTC()
	po := &entity.PurchaseOrder{
		ID:          uuid.NewString(),
		OrderNumber: number,
		Supplier:    "Ferretería Central",
		Status:      entity.PurchaseOrderStatusOrdered,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repos.Orders.Create(context.Background(), po))
	return po
}

func line(sku, qty, price string) entity.PurchaseOrderItem {
	return entity.PurchaseOrderItem{SKU: sku, Name: "Item " + sku, Quantity: dec(qty), UnitPrice: dec(price)}
}

// withRetry reintenta mientras el error sea reintentable.
func withRetry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for range 5 {
		if err = fn(ctx); err == nil || !domain.IsRetryable(err) {
			return err
		}
	}
	return err
}

func requireConsistent(t *testing.T, runner *postgres.TxRunner) {
	t.Helper()
	report, err := inventory.NewIntegrityVerifier(runner, nil, zerolog.Nop()).Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK(), "divergencias: %+v", report.Divergences)
}

func TestPostgres_RecepcionesConcurrentes(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)
	runner := postgres.NewTxRunner(pool)
	seedLocation(t, repos, "LOC001")

	const n, m = 8, 3
	orders := make([]*entity.PurchaseOrder, n)
	for i := range orders {
		items := make([]entity.PurchaseOrderItem, 0, m)
		// Las órdenes comparten SKUs en orden inverso para forzar contención cruzada.
		for j := m - 1; j >= 0; j-- {
			items = append(items, line(fmt.Sprintf("SKU-%d", j), "2", "1.5"))
		}
		orders[i] = seedOrder(t, repos, fmt.Sprintf("PO-INT-%02d", i), items...)
	}
	uc := inventory.NewReceivingOrchestrator(runner, nil, nil, zerolog.Nop(), 10*time.Second)

	g, gctx := errgroup.WithContext(ctx)
	for _, po := range orders {
		g.Go(func() error {
			return withRetry(gctx, func(ctx context.Context) error {
				_, err := uc.ReceivePurchaseOrder(ctx, inventory.ReceiveInput{OrderID: po.ID, LocationCode: "LOC001"})
				return err
			})
		})
	}
	require.NoError(t, g.Wait())

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, n*m)
	for i, mov := range movs {
		assert.Equal(t, fmt.Sprintf("MOV%04d", i+1), mov.MovementID)
	}

	for j := range m {
		item, err := repos.Items.Get(ctx, fmt.Sprintf("SKU-%d", j))
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.True(t, item.Quantity.Equal(dec("16")), "SKU-%d: %s", j, item.Quantity)
	}
	for _, po := range orders {
		got, err := repos.Orders.GetByID(ctx, po.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PurchaseOrderStatusReceived, got.Status)
	}
	requireConsistent(t, runner)
}

func TestPostgres_MismaOrdenSoloSeRecibeUnaVez(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)
	runner := postgres.NewTxRunner(pool)
	seedLocation(t, repos, "LOC001")
	po := seedOrder(t, repos, "PO-RACE", line("A", "5", "1"))
	uc := inventory.NewReceivingOrchestrator(runner, nil, nil, zerolog.Nop(), 10*time.Second)

	var ok, already atomic.Int32
	var g errgroup.Group
	for range 5 {
		g.Go(func() error {
			err := withRetry(ctx, func(ctx context.Context) error {
				_, err := uc.ReceivePurchaseOrder(ctx, inventory.ReceiveInput{OrderID: po.ID, LocationCode: "LOC001"})
				return err
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrAlreadyReceived):
				already.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, 4, already.Load())

	item, err := repos.Items.Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("5")))
	movs, err := repos.Movements.List(ctx, repository.MovementFilter{Reference: "PO-RACE"})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	requireConsistent(t, runner)
}

func TestPostgres_DespachoRevierteYReutilizaSecuencia(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)
	runner := postgres.NewTxRunner(pool)
	loc := seedLocation(t, repos, "WH-A")
	po := seedOrder(t, repos, "PO-SHIP", line("X", "10", "2"))

	_, err := inventory.NewReceivingOrchestrator(runner, nil, nil, zerolog.Nop(), 0).
		ReceivePurchaseOrder(ctx, inventory.ReceiveInput{OrderID: po.ID, LocationCode: "WH-A"})
	require.NoError(t, err)

	ship := inventory.NewShipmentOrchestrator(runner, nil, nil, zerolog.Nop(), 0)
	_, err = ship.Ship(ctx, inventory.ShipmentInput{
		Reference: "SO-1",
		Location:  "WH-A",
		Lines: []inventory.ShipmentLine{
			{SKU: "X", Quantity: dec("4")},
			{SKU: "X", Quantity: dec("7")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	level, err := repos.Levels.Get(ctx, loc.ID, "X")
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec("10")))

	var ok, already atomic.Int32
	var g errgroup.Group
	for range 3 {
		g.Go(func() error {
			_, err := ship.Ship(ctx, inventory.ShipmentInput{
				Reference: "SO-1",
				Location:  "WH-A",
				Lines:     []inventory.ShipmentLine{{SKU: "X", Quantity: dec("4")}},
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrAlreadyShipped):
				already.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, 2, already.Load())

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{Reference: "SO-1"})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "MOV0002", movs[0].MovementID, "la secuencia revertida se reutiliza")
	level, err = repos.Levels.Get(ctx, loc.ID, "X")
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec("6")))
	requireConsistent(t, runner)
}

func TestPostgres_IDNoUUIDEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)

	po, err := repos.Orders.GetByID(ctx, "foo")
	require.NoError(t, err)
	assert.Nil(t, po)
	loc, err := repos.Locations.GetByID(ctx, "foo")
	require.NoError(t, err)
	assert.Nil(t, loc)

	_, err = inventory.NewReceivingOrchestrator(postgres.NewTxRunner(pool), nil, nil, zerolog.Nop(), 0).
		ReceivePurchaseOrder(ctx, inventory.ReceiveInput{OrderID: "foo", LocationCode: "WH-A"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
