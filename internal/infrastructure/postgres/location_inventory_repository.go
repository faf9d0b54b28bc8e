package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LocationInventoryRepository = (*LocationInventoryRepo)(nil)

// LocationInventoryRepo implementación del stock por ubicación sobre PostgreSQL.
type LocationInventoryRepo struct {
	q Querier
}

// NewLocationInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationInventoryRepository(q Querier) *LocationInventoryRepo {
	return &LocationInventoryRepo{q: q}
}

const locationInventoryColumns = `location_id, sku, item_name, quantity, unit_cost, reorder_point,
	status, last_restocked, updated_at`

// LockOrSeed inserta la fila si no existe y la relee con FOR UPDATE.
// Dos transacciones que siembran el mismo par se serializan en el índice primario.
func (r *LocationInventoryRepo) LockOrSeed(ctx context.Context, seed *entity.LocationInventory) (*entity.LocationInventory, bool, error) {
	insert := `
		INSERT INTO location_inventory (` + locationInventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (location_id, sku) DO NOTHING`
	tag, err := r.q.Exec(ctx, insert,
		seed.LocationID, seed.SKU, seed.ItemName, seed.Quantity, seed.UnitCost, seed.ReorderPoint,
		seed.Status, seed.LastRestocked, seed.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("seed location inventory: %w", err)
	}
	query := `SELECT ` + locationInventoryColumns + ` FROM location_inventory
		WHERE location_id = $1 AND sku = $2 FOR UPDATE`
	row, err := scanLocationInventory(r.q.QueryRow(ctx, query, seed.LocationID, seed.SKU))
	if err != nil {
		return nil, false, fmt.Errorf("lock location inventory: %w", err)
	}
	return row, tag.RowsAffected() == 1, nil
}

// Save actualiza la fila bloqueada.
func (r *LocationInventoryRepo) Save(ctx context.Context, l *entity.LocationInventory) error {
	query := `
		UPDATE location_inventory
		SET item_name = $3, quantity = $4, unit_cost = $5, reorder_point = $6,
			status = $7, last_restocked = $8, updated_at = $9
		WHERE location_id = $1 AND sku = $2`
	tag, err := r.q.Exec(ctx, query,
		l.LocationID, l.SKU, l.ItemName, l.Quantity, l.UnitCost, l.ReorderPoint,
		l.Status, l.LastRestocked, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save location inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save location inventory: fila %s/%s inexistente", l.LocationID, l.SKU)
	}
	return nil
}

// Get obtiene la fila; (nil, nil) si no existe.
func (r *LocationInventoryRepo) Get(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	query := `SELECT ` + locationInventoryColumns + ` FROM location_inventory WHERE location_id = $1 AND sku = $2`
	l, err := scanLocationInventory(r.q.QueryRow(ctx, query, locationID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location inventory: %w", err)
	}
	return l, nil
}

// ListByLocation lista el stock de una ubicación ordenado por SKU.
func (r *LocationInventoryRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.LocationInventory, error) {
	query := `SELECT ` + locationInventoryColumns + ` FROM location_inventory WHERE location_id = $1 ORDER BY sku`
	query, args := appendPage(query, []any{locationID}, limit, offset)
	return r.list(ctx, query, args...)
}

// ListBySKU lista el stock del SKU en todas las ubicaciones.
func (r *LocationInventoryRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.LocationInventory, error) {
	query := `SELECT ` + locationInventoryColumns + ` FROM location_inventory WHERE sku = $1 ORDER BY location_id`
	return r.list(ctx, query, sku)
}

// ListAll lista todas las filas.
func (r *LocationInventoryRepo) ListAll(ctx context.Context) ([]*entity.LocationInventory, error) {
	query := `SELECT ` + locationInventoryColumns + ` FROM location_inventory ORDER BY sku, location_id`
	return r.list(ctx, query)
}

// SumQuantityBySKU suma el SKU en todas las ubicaciones.
func (r *LocationInventoryRepo) SumQuantityBySKU(ctx context.Context, sku string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity), 0) FROM location_inventory WHERE sku = $1`
	if err := r.q.QueryRow(ctx, query, sku).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum location inventory: %w", err)
	}
	return total, nil
}

func (r *LocationInventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.LocationInventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list location inventory: %w", err)
	}
	defer rows.Close()
	out := []*entity.LocationInventory{}
	for rows.Next() {
		l, err := scanLocationInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location inventory: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLocationInventory(row pgx.Row) (*entity.LocationInventory, error) {
	var l entity.LocationInventory
	err := row.Scan(
		&l.LocationID, &l.SKU, &l.ItemName, &l.Quantity, &l.UnitCost, &l.ReorderPoint,
		&l.Status, &l.LastRestocked, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
