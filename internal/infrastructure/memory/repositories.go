package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockLocationRepository     = (*StockLocationRepo)(nil)
	_ repository.StockMovementRepository     = (*StockMovementRepo)(nil)
	_ repository.LocationInventoryRepository = (*LocationInventoryRepo)(nil)
	_ repository.InventoryItemRepository     = (*InventoryItemRepo)(nil)
	_ repository.PurchaseOrderRepository     = (*PurchaseOrderRepo)(nil)
)

// paginate aplica limit/offset; limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

// StockLocationRepo implementa repository.StockLocationRepository en memoria.
type StockLocationRepo struct{ v view }

func (r *StockLocationRepo) Create(ctx context.Context, l *entity.StockLocation) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.locations[l.ID]; ok {
			return fmt.Errorf("%w: ubicación %s", domain.ErrDuplicate, l.ID)
		}
		for _, existing := range st.locations {
			if existing.Code == l.Code {
				return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
			}
		}
		st.locations[l.ID] = copyLocation(l)
		return nil
	})
}

func (r *StockLocationRepo) GetByID(_ context.Context, id string) (*entity.StockLocation, error) {
	var out *entity.StockLocation
	r.v.read(func(st *state) {
		if l, ok := st.locations[id]; ok {
			out = copyLocation(l)
		}
	})
	return out, nil
}

func (r *StockLocationRepo) GetByCode(_ context.Context, code string) (*entity.StockLocation, error) {
	var out *entity.StockLocation
	r.v.read(func(st *state) {
		for _, l := range st.locations {
			if l.Code == code {
				out = copyLocation(l)
				return
			}
		}
	})
	return out, nil
}

func (r *StockLocationRepo) Update(ctx context.Context, l *entity.StockLocation) error {
	return r.v.write(ctx, func(st *state) error {
		existing, ok := st.locations[l.ID]
		if !ok {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, l.ID)
		}
		existing.Name = l.Name
		existing.Status = l.Status
		existing.UpdatedAt = l.UpdatedAt
		return nil
	})
}

func (r *StockLocationRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.StockLocation, error) {
	var out []*entity.StockLocation
	r.v.read(func(st *state) {
		for _, l := range st.locations {
			if status == "" || l.Status == status {
				out = append(out, copyLocation(l))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), nil
}

// ── Libro de movimientos ─────────────────────────────────────────────────────

// StockMovementRepo implementa repository.StockMovementRepository en memoria.
type StockMovementRepo struct{ v view }

func (r *StockMovementRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpNextSequence); err != nil {
			return err
		}
		st.counter++
		seq = st.counter
		return nil
	})
	return seq, err
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpCreateMovement); err != nil {
			return err
		}
		for _, existing := range st.movements {
			if existing.MovementID == m.MovementID {
				return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, m.MovementID)
			}
		}
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *StockMovementRepo) ClaimShipment(ctx context.Context, key string, at time.Time) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpClaimShipment); err != nil {
			return err
		}
		if _, ok := st.shipments[key]; ok {
			return fmt.Errorf("%w: clave de despacho %s", domain.ErrDuplicate, key)
		}
		st.shipments[key] = at
		return nil
	})
}

func (r *StockMovementRepo) GetByMovementID(_ context.Context, movementID string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	r.v.read(func(st *state) {
		for _, m := range st.movements {
			if m.MovementID == movementID {
				c := *m
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *StockMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	r.v.read(func(st *state) {
		for _, m := range st.movements {
			if !matchMovement(m, f) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return paginate(out, f.Limit, f.Offset), nil
}

func matchMovement(m *entity.StockMovement, f repository.MovementFilter) bool {
	if f.SKU != "" && m.SKU != f.SKU {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Reference != "" && m.Reference != f.Reference {
		return false
	}
	if f.Location != "" && m.FromLocation != f.Location && m.ToLocation != f.Location {
		return false
	}
	if f.From != nil && m.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// ── Stock por ubicación ──────────────────────────────────────────────────────

// LocationInventoryRepo implementa repository.LocationInventoryRepository en memoria.
type LocationInventoryRepo struct{ v view }

func (r *LocationInventoryRepo) LockOrSeed(ctx context.Context, seed *entity.LocationInventory) (*entity.LocationInventory, bool, error) {
	var (
		out     *entity.LocationInventory
		created bool
	)
	err := r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpLockLevel); err != nil {
			return err
		}
		k := levelKey{seed.LocationID, seed.SKU}
		row, ok := st.levels[k]
		if !ok {
			row = copyLevel(seed)
			st.levels[k] = row
			created = true
		}
		out = copyLevel(row)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (r *LocationInventoryRepo) Save(ctx context.Context, row *entity.LocationInventory) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpSaveLevel); err != nil {
			return err
		}
		st.levels[levelKey{row.LocationID, row.SKU}] = copyLevel(row)
		return nil
	})
}

func (r *LocationInventoryRepo) Get(_ context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	var out *entity.LocationInventory
	r.v.read(func(st *state) {
		if row, ok := st.levels[levelKey{locationID, sku}]; ok {
			out = copyLevel(row)
		}
	})
	return out, nil
}

func (r *LocationInventoryRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.LocationInventory, error) {
	out := r.filter(func(row *entity.LocationInventory) bool { return row.LocationID == locationID })
	return paginate(out, limit, offset), nil
}

func (r *LocationInventoryRepo) ListBySKU(_ context.Context, sku string) ([]*entity.LocationInventory, error) {
	return r.filter(func(row *entity.LocationInventory) bool { return row.SKU == sku }), nil
}

func (r *LocationInventoryRepo) ListAll(_ context.Context) ([]*entity.LocationInventory, error) {
	return r.filter(func(*entity.LocationInventory) bool { return true }), nil
}

func (r *LocationInventoryRepo) SumQuantityBySKU(_ context.Context, sku string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.v.read(func(st *state) {
		for k, row := range st.levels {
			if k.sku == sku {
				sum = sum.Add(row.Quantity)
			}
		}
	})
	return sum, nil
}

// filter devuelve copias ordenadas por (location_id, sku).
func (r *LocationInventoryRepo) filter(keep func(*entity.LocationInventory) bool) []*entity.LocationInventory {
	out := []*entity.LocationInventory{}
	r.v.read(func(st *state) {
		for _, row := range st.levels {
			if keep(row) {
				out = append(out, copyLevel(row))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationID != out[j].LocationID {
			return out[i].LocationID < out[j].LocationID
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// ── Agregado por SKU ─────────────────────────────────────────────────────────

// InventoryItemRepo implementa repository.InventoryItemRepository en memoria.
type InventoryItemRepo struct{ v view }

func (r *InventoryItemRepo) LockOrSeed(ctx context.Context, seed *entity.InventoryItem) (*entity.InventoryItem, bool, error) {
	var (
		out     *entity.InventoryItem
		created bool
	)
	err := r.v.write(ctx, func(st *state) error {
		item, ok := st.items[seed.SKU]
		if !ok {
			item = copyItem(seed)
			st.items[seed.SKU] = item
			created = true
		}
		out = copyItem(item)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.Get(ctx, sku)
}

func (r *InventoryItemRepo) Save(ctx context.Context, item *entity.InventoryItem) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpSaveItem); err != nil {
			return err
		}
		st.items[item.SKU] = copyItem(item)
		return nil
	})
}

func (r *InventoryItemRepo) Get(_ context.Context, sku string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.v.read(func(st *state) {
		if it, ok := st.items[sku]; ok {
			out = copyItem(it)
		}
	})
	return out, nil
}

func (r *InventoryItemRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.InventoryItem, error) {
	out := r.filter(func(it *entity.InventoryItem) bool { return status == "" || it.Status == status })
	return paginate(out, limit, offset), nil
}

func (r *InventoryItemRepo) ListAll(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(*entity.InventoryItem) bool { return true }), nil
}

func (r *InventoryItemRepo) ListBelowReorderPoint(_ context.Context) ([]*entity.InventoryItem, error) {
	out := r.filter(func(it *entity.InventoryItem) bool {
		return it.ReorderPoint.IsPositive() && it.Quantity.LessThanOrEqual(it.ReorderPoint)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReorderPoint.Sub(out[i].Quantity).GreaterThan(out[j].ReorderPoint.Sub(out[j].Quantity))
	})
	return out, nil
}

func (r *InventoryItemRepo) filter(keep func(*entity.InventoryItem) bool) []*entity.InventoryItem {
	out := []*entity.InventoryItem{}
	r.v.read(func(st *state) {
		for _, it := range st.items {
			if keep(it) {
				out = append(out, copyItem(it))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// ── Órdenes de compra ────────────────────────────────────────────────────────

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository en memoria.
type PurchaseOrderRepo struct{ v view }

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.orders[po.ID]; ok {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, po.ID)
		}
		for _, existing := range st.orders {
			if existing.OrderNumber == po.OrderNumber {
				return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, po.OrderNumber)
			}
		}
		st.orders[po.ID] = copyOrder(po)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.v.read(func(st *state) {
		if po, ok := st.orders[id]; ok {
			out = copyOrder(po)
		}
	})
	return out, nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	out := []*entity.PurchaseOrder{}
	r.v.read(func(st *state) {
		for _, po := range st.orders {
			if status == "" || po.Status == status {
				out = append(out, copyOrder(po))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderNumber < out[j].OrderNumber
	})
	return paginate(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, id, locationID string, at time.Time) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpMarkReceived); err != nil {
			return err
		}
		po, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		if po.Status == entity.PurchaseOrderStatusReceived {
			return fmt.Errorf("%w: orden %s ya recibida", domain.ErrConflict, po.OrderNumber)
		}
		t := at
		po.Status = entity.PurchaseOrderStatusReceived
		po.ReceivedDate = &t
		po.ReceivedLocationID = locationID
		po.UpdatedAt = at
		return nil
	})
}

func (r *PurchaseOrderRepo) ClaimReceipt(ctx context.Context, key, orderID string, _ time.Time) error {
	return r.v.write(ctx, func(st *state) error {
		if err := r.v.store.hit(ctx, OpClaimReceipt); err != nil {
			return err
		}
		if _, ok := st.receiptKeys[key]; ok {
			return fmt.Errorf("%w: clave de recepción %s", domain.ErrDuplicate, key)
		}
		st.receiptKeys[key] = orderID
		return nil
	})
}

// ── Copias ───────────────────────────────────────────────────────────────────

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyLocation(l *entity.StockLocation) *entity.StockLocation {
	c := *l
	return &c
}

func copyLevel(l *entity.LocationInventory) *entity.LocationInventory {
	c := *l
	c.LastRestocked = copyTime(l.LastRestocked)
	return &c
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	c := *it
	c.LastRestocked = copyTime(it.LastRestocked)
	return &c
}

func copyOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.ReceivedDate = copyTime(po.ReceivedDate)
	c.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &c
}
