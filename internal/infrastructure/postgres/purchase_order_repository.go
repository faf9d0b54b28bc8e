package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, order_number, supplier, status, received_date,
	COALESCE(received_location_id::text, ''), created_at, updated_at`

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Create persiste la orden y sus líneas en una misma transacción (o savepoint si q ya es una tx).
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	write := func(q Querier) error {
		query := `
			INSERT INTO purchase_orders (id, order_number, supplier, status, received_date,
				received_location_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`
		_, err := q.Exec(ctx, query, po.ID, po.OrderNumber, po.Supplier, po.Status, po.ReceivedDate,
			po.ReceivedLocationID, po.CreatedAt, po.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, po.OrderNumber)
			}
			return fmt.Errorf("insert purchase order: %w", err)
		}
		for i, it := range po.Items {
			_, err := q.Exec(ctx, `
				INSERT INTO purchase_order_items (order_id, line_no, sku, name, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				po.ID, i+1, it.SKU, it.Name, it.Quantity, it.UnitPrice)
			if err != nil {
				return fmt.Errorf("insert purchase order item %d: %w", i+1, err)
			}
		}
		return nil
	}
	b, ok := r.q.(beginner)
	if !ok {
		return write(r.q)
	}
	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error { return write(tx) })
}

// GetByID obtiene la orden con sus líneas; (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.PurchaseOrder{po}); err != nil {
		return nil, err
	}
	return po, nil
}

// List lista órdenes por fecha de creación descendente.
func (r *PurchaseOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, order_number"
	query, args = appendPage(query, args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	out := []*entity.PurchaseOrder{}
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkReceived pasa la orden a received con la fecha y la ubicación de recepción.
func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, id, locationID string, at time.Time) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	query := `
		UPDATE purchase_orders
		SET status = $2, received_date = $3, received_location_id = $4, updated_at = $3
		WHERE id = $1 AND status <> $2`
	tag, err := r.q.Exec(ctx, query, id, entity.PurchaseOrderStatusReceived, at, locationID)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var status string
	err = r.q.QueryRow(ctx, `SELECT status FROM purchase_orders WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	return fmt.Errorf("%w: orden %s ya recibida", domain.ErrConflict, id)
}

// ClaimReceipt inserta la clave de recepción; la PK rechaza una segunda recepción.
func (r *PurchaseOrderRepo) ClaimReceipt(ctx context.Context, key, orderID string, at time.Time) error {
	_, err := r.q.Exec(ctx, `INSERT INTO receipt_keys (key, order_id, claimed_at) VALUES ($1, $2, $3)`, key, orderID, at)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: clave %s", domain.ErrDuplicate, key)
		}
		return fmt.Errorf("claim receipt: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	for _, po := range orders {
		po.Items = []entity.PurchaseOrderItem{}
		ids = append(ids, po.ID)
		byID[po.ID] = po
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id::text, sku, name, quantity, unit_price
		FROM purchase_order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			it      entity.PurchaseOrderItem
		)
		if err := rows.Scan(&orderID, &it.SKU, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		if po, ok := byID[orderID]; ok {
			po.Items = append(po.Items, it)
		}
	}
	return rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.OrderNumber, &po.Supplier, &po.Status, &po.ReceivedDate,
		&po.ReceivedLocationID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
