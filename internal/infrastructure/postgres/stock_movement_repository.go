package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// movementCounter nombre de la fila de stock_movement_counters.
const movementCounter = "MOV"

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, movement_id, seq, ts, type, sku, item_name, quantity,
	from_location, to_location, reference, performed_by, notes`

// NextSequence incrementa el contador; el UPDATE bloquea la fila hasta el fin de la transacción.
func (r *StockMovementRepo) NextSequence(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO stock_movement_counters (name, last_value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET last_value = stock_movement_counters.last_value + 1
		RETURNING last_value`
	var seq int64
	if err := r.q.QueryRow(ctx, query, movementCounter).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next movement sequence: %w", err)
	}
	return seq, nil
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MovementID, m.Sequence, m.Timestamp, m.Type, m.SKU, m.ItemName, m.Quantity,
		m.FromLocation, m.ToLocation, m.Reference, m.PerformedBy, m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, m.MovementID)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByMovementID obtiene un movimiento por su identificador legible.
func (r *StockMovementRepo) GetByMovementID(ctx context.Context, movementID string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE movement_id = $1`
	m, err := scanStockMovement(r.q.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List lista movimientos en orden de secuencia con filtros opcionales.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.SKU != "" {
		add("sku = $%d", f.SKU)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Reference != "" {
		add("reference = $%d", f.Reference)
	}
	if f.Location != "" {
		args = append(args, f.Location)
		where = append(where, fmt.Sprintf("(from_location = $%d OR to_location = $%d)", len(args), len(args)))
	}
	if f.From != nil {
		add("ts >= $%d", *f.From)
	}
	if f.To != nil {
		add("ts <= $%d", *f.To)
	}

	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"
	query, args = appendPage(query, args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ClaimShipment inserta la clave del despacho; la PK rechaza un segundo despacho.
func (r *StockMovementRepo) ClaimShipment(ctx context.Context, key string, at time.Time) error {
	_, err := r.q.Exec(ctx, `INSERT INTO shipment_keys (key, claimed_at) VALUES ($1, $2)`, key, at)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: clave %s", domain.ErrDuplicate, key)
		}
		return fmt.Errorf("claim shipment: %w", err)
	}
	return nil
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.MovementID, &m.Sequence, &m.Timestamp, &m.Type, &m.SKU, &m.ItemName, &m.Quantity,
		&m.FromLocation, &m.ToLocation, &m.Reference, &m.PerformedBy, &m.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
