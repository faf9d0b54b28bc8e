// Package memory implementa los repositorios en proceso con la misma semántica transaccional
// que postgres: escrituras serializadas, copia sobre escritura y rollback ante error.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Operaciones donde se pueden inyectar fallos.
const (
	OpNextSequence   = "movements.next_sequence"
	OpCreateMovement = "movements.create"
	OpLockLevel      = "levels.lock"
	OpSaveLevel      = "levels.save"
	OpSaveItem       = "items.save"
	OpClaimReceipt   = "orders.claim_receipt"
	OpMarkReceived   = "orders.mark_received"
	OpClaimShipment  = "movements.claim_shipment"
)

type levelKey struct {
	locationID string
	sku        string
}

type state struct {
	locations   map[string]*entity.StockLocation
	movements   []*entity.StockMovement
	counter     int64
	levels      map[levelKey]*entity.LocationInventory
	items       map[string]*entity.InventoryItem
	orders      map[string]*entity.PurchaseOrder
	receiptKeys map[string]string
	shipments   map[string]time.Time
}

func newState() *state {
	return &state{
		locations:   make(map[string]*entity.StockLocation),
		levels:      make(map[levelKey]*entity.LocationInventory),
		items:       make(map[string]*entity.InventoryItem),
		orders:      make(map[string]*entity.PurchaseOrder),
		receiptKeys: make(map[string]string),
		shipments:   make(map[string]time.Time),
	}
}

// clone copia el estado; los movimientos son inmutables y se comparten.
func (s *state) clone() *state {
	c := &state{
		locations:   make(map[string]*entity.StockLocation, len(s.locations)),
		movements:   make([]*entity.StockMovement, len(s.movements)),
		counter:     s.counter,
		levels:      make(map[levelKey]*entity.LocationInventory, len(s.levels)),
		items:       make(map[string]*entity.InventoryItem, len(s.items)),
		orders:      make(map[string]*entity.PurchaseOrder, len(s.orders)),
		receiptKeys: make(map[string]string, len(s.receiptKeys)),
		shipments:   make(map[string]time.Time, len(s.shipments)),
	}
	copy(c.movements, s.movements)
	for k, v := range s.locations {
		c.locations[k] = copyLocation(v)
	}
	for k, v := range s.levels {
		c.levels[k] = copyLevel(v)
	}
	for k, v := range s.items {
		c.items[k] = copyItem(v)
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.receiptKeys {
		c.receiptKeys[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	return c
}

type fault struct {
	after int
	calls int
	err   error
	delay time.Duration
}

// Store almacenamiento en memoria. El valor cero no es usable; usar NewStore.
type Store struct {
	sem       chan struct{} // una transacción de escritura a la vez
	mu        sync.RWMutex
	committed *state

	faultsMu sync.Mutex
	faults   map[string]*fault
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		sem:       make(chan struct{}, 1),
		committed: newState(),
		faults:    make(map[string]*fault),
	}
}

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn en una transacción. Las escrituras solo se publican si fn termina sin error
// y el contexto sigue vigente.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	return s.update(ctx, func(st *state) error {
		return fn(ctx, s.reposFor(st))
	})
}

// RunSnapshot ejecuta fn sobre una copia del estado confirmado; las escrituras se descartan.
func (s *Store) RunSnapshot(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return aborted(err)
	}
	s.mu.RLock()
	snap := s.committed.clone()
	s.mu.RUnlock()
	return classify(fn(ctx, s.reposFor(snap)))
}

// Repos devuelve repositorios sobre el estado confirmado. Cada escritura es su propia transacción.
func (s *Store) Repos() inventory.TxRepos {
	return s.reposFor(nil)
}

func (s *Store) reposFor(tx *state) inventory.TxRepos {
	v := view{store: s, tx: tx}
	return inventory.TxRepos{
		Locations: &StockLocationRepo{v: v},
		Movements: &StockMovementRepo{v: v},
		Levels:    &LocationInventoryRepo{v: v},
		Items:     &InventoryItemRepo{v: v},
		Orders:    &PurchaseOrderRepo{v: v},
	}
}

func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return aborted(ctx.Err())
	}
	defer func() { <-s.sem }()

	if err := ctx.Err(); err != nil {
		return aborted(err)
	}
	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return classify(err)
	}
	if err := ctx.Err(); err != nil {
		return aborted(err)
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// InjectFault hace fallar la operación op con err después de after llamadas exitosas (una sola vez).
func (s *Store) InjectFault(op string, after int, err error) {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	s.faults[op] = &fault{after: after, err: err}
}

// InjectDelay demora cada llamada a op; la espera respeta el contexto.
func (s *Store) InjectDelay(op string, d time.Duration) {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	s.faults[op] = &fault{delay: d}
}

// ClearFaults elimina los fallos inyectados.
func (s *Store) ClearFaults() {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	s.faults = make(map[string]*fault)
}

func (s *Store) hit(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.faultsMu.Lock()
	f, ok := s.faults[op]
	var (
		delay time.Duration
		fail  error
	)
	if ok {
		delay = f.delay
		if f.err != nil {
			f.calls++
			if f.calls > f.after {
				fail = f.err
				delete(s.faults, op)
			}
		}
	}
	s.faultsMu.Unlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fail
}

func aborted(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
}

func classify(err error) error {
	if err == nil || domain.IsRetryable(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return aborted(err)
	}
	return err
}

// view lee/escribe sobre la transacción en curso o, si tx es nil, sobre el estado confirmado.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.committed)
}

func (v view) write(ctx context.Context, fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.store.update(ctx, fn)
}
