package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func newLocation(id, code string) *entity.StockLocation {
	return &entity.StockLocation{ID: id, Code: code, Name: code, Type: entity.LocationTypeWarehouse, Status: entity.LocationStatusActive}
}

func TestStore_RunConfirmaORevierte(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		require.NoError(t, repos.Locations.Create(ctx, newLocation("1", "A")))
		seq, err := repos.Movements.NextSequence(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, seq)
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		require.NoError(t, repos.Locations.Create(ctx, newLocation("2", "B")))
		_, err := repos.Movements.NextSequence(ctx)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	repos := store.Repos()
	a, err := repos.Locations.GetByCode(ctx, "A")
	require.NoError(t, err)
	assert.NotNil(t, a)
	b, err := repos.Locations.GetByCode(ctx, "B")
	require.NoError(t, err)
	assert.Nil(t, b, "la escritura revertida no es visible")

	seq, err := repos.Movements.NextSequence(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq, "la secuencia revertida se reutiliza")
}

func TestStore_EscriturasNoVisiblesAntesDelCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- store.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
			if err := repos.Locations.Create(ctx, newLocation("1", "A")); err != nil {
				return err
			}
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	got, err := store.Repos().Locations.GetByCode(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, got)

	close(release)
	require.NoError(t, <-done)
	got, err = store.Repos().Locations.GetByCode(ctx, "A")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStore_RunSnapshotDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	err := store.RunSnapshot(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		return repos.Locations.Create(ctx, newLocation("1", "A"))
	})
	require.NoError(t, err)

	got, err := store.Repos().Locations.GetByCode(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ContextoCanceladoAborta(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Run(ctx, func(context.Context, inventory.TxRepos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.True(t, domain.IsRetryable(err))
}

func TestStore_EsperaDeEscrituraRespetaContexto(t *testing.T) {
	store := memory.NewStore()
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = store.Run(context.Background(), func(context.Context, inventory.TxRepos) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := store.Run(ctx, func(context.Context, inventory.TxRepos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
}

func TestStore_InjectFaultUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	boom := errors.New("boom")
	store.InjectFault(memory.OpNextSequence, 1, boom)

	_, err := repos.Movements.NextSequence(ctx)
	require.NoError(t, err)
	_, err = repos.Movements.NextSequence(ctx)
	require.ErrorIs(t, err, boom)
	seq, err := repos.Movements.NextSequence(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq)
}

func TestLocationInventoryRepo_LockOrSeedYSuma(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()

	row, created, err := repos.Levels.LockOrSeed(ctx, &entity.LocationInventory{LocationID: "l1", SKU: "X", Quantity: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, created)
	row.Quantity = decimal.NewFromInt(5)
	require.NoError(t, repos.Levels.Save(ctx, row))

	again, created, err := repos.Levels.LockOrSeed(ctx, &entity.LocationInventory{LocationID: "l1", SKU: "X"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, again.Quantity.Equal(decimal.NewFromInt(5)))

	_, _, err = repos.Levels.LockOrSeed(ctx, &entity.LocationInventory{LocationID: "l2", SKU: "X", Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)

	sum, err := repos.Levels.SumQuantityBySKU(ctx, "X")
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(8)))

	// Las lecturas devuelven copias.
	row.Quantity = decimal.NewFromInt(100)
	stored, err := repos.Levels.Get(ctx, "l1", "X")
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestPurchaseOrderRepo_ClaimYMarkReceived(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Orders.Create(ctx, &entity.PurchaseOrder{ID: "po1", OrderNumber: "PO-1", Status: entity.PurchaseOrderStatusOrdered}))

	require.NoError(t, repos.Orders.ClaimReceipt(ctx, "PO:PO-1", "po1", time.Now()))
	assert.ErrorIs(t, repos.Orders.ClaimReceipt(ctx, "PO:PO-1", "po1", time.Now()), domain.ErrDuplicate)

	require.NoError(t, repos.Orders.MarkReceived(ctx, "po1", "loc", time.Now()))
	assert.ErrorIs(t, repos.Orders.MarkReceived(ctx, "po1", "loc", time.Now()), domain.ErrConflict)
	assert.ErrorIs(t, repos.Orders.MarkReceived(ctx, "nope", "loc", time.Now()), domain.ErrNotFound)

	po, err := repos.Orders.GetByID(ctx, "po1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, po.Status)
	assert.Equal(t, "loc", po.ReceivedLocationID)
}
