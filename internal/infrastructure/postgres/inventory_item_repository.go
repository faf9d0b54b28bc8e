package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del agregado por SKU sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = `sku, name, quantity, unit_cost, total_value, reorder_point,
	status, last_restocked, created_at, updated_at`

// LockOrSeed inserta el agregado si no existe y lo relee con FOR UPDATE.
func (r *InventoryItemRepo) LockOrSeed(ctx context.Context, seed *entity.InventoryItem) (*entity.InventoryItem, bool, error) {
	insert := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sku) DO NOTHING`
	tag, err := r.q.Exec(ctx, insert,
		seed.SKU, seed.Name, seed.Quantity, seed.UnitCost, seed.TotalValue, seed.ReorderPoint,
		seed.Status, seed.LastRestocked, seed.CreatedAt, seed.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("seed inventory item: %w", err)
	}
	item, err := r.GetForUpdate(ctx, seed.SKU)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, fmt.Errorf("lock inventory item: %s no visible tras insertar", seed.SKU)
	}
	return item, tag.RowsAffected() == 1, nil
}

// GetForUpdate bloquea el agregado; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE sku = $1 FOR UPDATE`
	return r.getOne(ctx, query, sku)
}

// Save actualiza el agregado bloqueado.
func (r *InventoryItemRepo) Save(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, quantity = $3, unit_cost = $4, total_value = $5, reorder_point = $6,
			status = $7, last_restocked = $8, updated_at = $9
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query,
		it.SKU, it.Name, it.Quantity, it.UnitCost, it.TotalValue, it.ReorderPoint,
		it.Status, it.LastRestocked, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save inventory item: %s inexistente", it.SKU)
	}
	return nil
}

// Get obtiene el agregado; (nil, nil) si no existe.
func (r *InventoryItemRepo) Get(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE sku = $1`
	return r.getOne(ctx, query, sku)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query, sku string) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// List lista agregados por SKU con filtro de estado opcional.
func (r *InventoryItemRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += " ORDER BY sku"
	query, args = appendPage(query, args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListAll lista todos los agregados.
func (r *InventoryItemRepo) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items ORDER BY sku`)
}

// ListBelowReorderPoint agregados con punto de reorden positivo y cantidad <= punto, mayor déficit primero.
func (r *InventoryItemRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items
		WHERE reorder_point > 0 AND quantity <= reorder_point
		ORDER BY (reorder_point - quantity) DESC, sku`
	return r.list(ctx, query)
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	out := []*entity.InventoryItem{}
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.SKU, &it.Name, &it.Quantity, &it.UnitCost, &it.TotalValue, &it.ReorderPoint,
		&it.Status, &it.LastRestocked, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
