package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Tipos de divergencia detectados por el verificador.
const (
	DivergenceAggregateSum = "aggregate_sum" // agregado != suma de ubicaciones
	DivergenceLedgerReplay = "ledger_replay" // fila de ubicación != reconstrucción desde el libro
	DivergenceTotalValue   = "total_value"   // totalValue != quantity * unitCost
	DivergenceStatus       = "status"        // estado almacenado != estado derivado
)

// Divergence diferencia entre el valor esperado y el almacenado.
type Divergence struct {
	Kind     string
	SKU      string
	Location string
	Expected string
	Actual   string
}

// IntegrityReport resultado de una verificación completa.
type IntegrityReport struct {
	CheckedAt   time.Time
	Items       int
	Levels      int
	Movements   int
	Divergences []Divergence
}

// OK indica que no se detectaron divergencias.
func (r *IntegrityReport) OK() bool { return len(r.Divergences) == 0 }

// IntegrityVerifier comprueba sobre una vista consistente que el agregado, el stock por
// ubicación y el libro de movimientos cuadren.
type IntegrityVerifier struct {
	txRunner TxRunner
	metrics  Metrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewIntegrityVerifier construye el verificador. metrics puede ser nil.
func NewIntegrityVerifier(txRunner TxRunner, metrics Metrics, log zerolog.Logger) *IntegrityVerifier {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &IntegrityVerifier{txRunner: txRunner, metrics: metrics, log: log, now: time.Now}
}

type integritySnapshot struct {
	locations []*entity.StockLocation
	levels    []*entity.LocationInventory
	items     []*entity.InventoryItem
	movements []*entity.StockMovement
}

// Verify devuelve el reporte; si hay divergencias el error envuelve domain.ErrInvariantViolation.
func (v *IntegrityVerifier) Verify(ctx context.Context) (*IntegrityReport, error) {
	var snap integritySnapshot
	err := v.txRunner.RunSnapshot(ctx, func(ctx context.Context, repos TxRepos) error {
		var err error
		if snap.locations, err = repos.Locations.List(ctx, "", 0, 0); err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		if snap.levels, err = repos.Levels.ListAll(ctx); err != nil {
			return fmt.Errorf("list location inventory: %w", err)
		}
		if snap.items, err = repos.Items.ListAll(ctx); err != nil {
			return fmt.Errorf("list inventory items: %w", err)
		}
		if snap.movements, err = repos.Movements.List(ctx, repository.MovementFilter{}); err != nil {
			return fmt.Errorf("list movements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, abortedIfContextDone(err)
	}

	report := &IntegrityReport{
		CheckedAt: v.now(),
		Items:     len(snap.items),
		Levels:    len(snap.levels),
		Movements: len(snap.movements),
	}
	var aggregates, replay []Divergence
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		aggregates = checkAggregates(snap)
		return nil
	})
	g.Go(func() error {
		replay = checkLedgerReplay(snap)
		return nil
	})
	_ = g.Wait()
	report.Divergences = append(aggregates, replay...)
	sort.SliceStable(report.Divergences, func(i, j int) bool {
		a, b := report.Divergences[i], report.Divergences[j]
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.Kind < b.Kind
	})

	v.metrics.SetDivergences(len(report.Divergences))
	if !report.OK() {
		v.log.Error().Int("divergences", len(report.Divergences)).Msg("inventario inconsistente")
		return report, fmt.Errorf("%w: %d divergencias", domain.ErrInvariantViolation, len(report.Divergences))
	}
	v.log.Info().Int("items", report.Items).Int("movements", report.Movements).Msg("verificación de inventario correcta")
	return report, nil
}

func checkAggregates(snap integritySnapshot) []Divergence {
	var out []Divergence
	sums := make(map[string]decimal.Decimal)
	for _, l := range snap.levels {
		sums[l.SKU] = sums[l.SKU].Add(l.Quantity)
		if want := inventory.DeriveStatus(l.Quantity, l.ReorderPoint); want != l.Status {
			out = append(out, Divergence{Kind: DivergenceStatus, SKU: l.SKU, Location: l.LocationID, Expected: want, Actual: l.Status})
		}
	}
	seen := make(map[string]bool, len(snap.items))
	for _, it := range snap.items {
		seen[it.SKU] = true
		if want := sums[it.SKU]; !want.Equal(it.Quantity) {
			out = append(out, Divergence{Kind: DivergenceAggregateSum, SKU: it.SKU, Expected: want.String(), Actual: it.Quantity.String()})
		}
		if want := it.Quantity.Mul(it.UnitCost); !want.Equal(it.TotalValue) {
			out = append(out, Divergence{Kind: DivergenceTotalValue, SKU: it.SKU, Expected: want.String(), Actual: it.TotalValue.String()})
		}
		if want := inventory.DeriveStatus(it.Quantity, it.ReorderPoint); want != it.Status {
			out = append(out, Divergence{Kind: DivergenceStatus, SKU: it.SKU, Expected: want, Actual: it.Status})
		}
	}
	for sku, sum := range sums {
		if !seen[sku] && !sum.IsZero() {
			out = append(out, Divergence{Kind: DivergenceAggregateSum, SKU: sku, Expected: sum.String(), Actual: "missing"})
		}
	}
	return out
}

func checkLedgerReplay(snap integritySnapshot) []Divergence {
	var out []Divergence
	codeByID := make(map[string]string, len(snap.locations))
	for _, l := range snap.locations {
		codeByID[l.ID] = l.Code
	}
	replayed := inventory.Replay(snap.movements)
	matched := make(map[inventory.LocationSKU]bool, len(snap.levels))
	for _, l := range snap.levels {
		code, ok := codeByID[l.LocationID]
		if !ok {
			code = l.LocationID
		}
		key := inventory.LocationSKU{Location: code, SKU: l.SKU}
		matched[key] = true
		if want := replayed[key]; !want.Equal(l.Quantity) {
			out = append(out, Divergence{Kind: DivergenceLedgerReplay, SKU: l.SKU, Location: code, Expected: want.String(), Actual: l.Quantity.String()})
		}
	}
	for key, qty := range replayed {
		if !matched[key] && !qty.IsZero() {
			out = append(out, Divergence{Kind: DivergenceLedgerReplay, SKU: key.SKU, Location: key.Location, Expected: qty.String(), Actual: "missing"})
		}
	}
	return out
}
