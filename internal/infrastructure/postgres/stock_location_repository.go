package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockLocationRepository = (*StockLocationRepo)(nil)

// StockLocationRepo implementación del puerto StockLocationRepository sobre PostgreSQL.
type StockLocationRepo struct {
	q Querier
}

// NewStockLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLocationRepository(q Querier) *StockLocationRepo {
	return &StockLocationRepo{q: q}
}

const stockLocationColumns = `id, code, name, type, status, created_at, updated_at`

// Create persiste una nueva ubicación.
func (r *StockLocationRepo) Create(ctx context.Context, l *entity.StockLocation) error {
	query := `
		INSERT INTO stock_locations (` + stockLocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Code, l.Name, l.Type, l.Status, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
		}
		return fmt.Errorf("insert stock location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe o id no es un UUID.
func (r *StockLocationRepo) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+stockLocationColumns+` FROM stock_locations WHERE id = $1`, id)
}

// GetByCode obtiene una ubicación por código.
func (r *StockLocationRepo) GetByCode(ctx context.Context, code string) (*entity.StockLocation, error) {
	return r.getOne(ctx, `SELECT `+stockLocationColumns+` FROM stock_locations WHERE code = $1`, code)
}

func (r *StockLocationRepo) getOne(ctx context.Context, query string, arg string) (*entity.StockLocation, error) {
	l, err := scanStockLocation(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	return l, nil
}

// Update actualiza nombre y estado.
func (r *StockLocationRepo) Update(ctx context.Context, l *entity.StockLocation) error {
	if !isUUID(l.ID) {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, l.ID)
	}
	query := `UPDATE stock_locations SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Status, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, l.ID)
	}
	return nil
}

// List lista ubicaciones ordenadas por código. limit <= 0 devuelve todas.
func (r *StockLocationRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.StockLocation, error) {
	query := `SELECT ` + stockLocationColumns + ` FROM stock_locations`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += " ORDER BY code"
	query, args = appendPage(query, args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockLocation{}
	for rows.Next() {
		l, err := scanStockLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanStockLocation(row pgx.Row) (*entity.StockLocation, error) {
	var l entity.StockLocation
	if err := row.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// appendPage agrega LIMIT/OFFSET con placeholders numerados.
func appendPage(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
