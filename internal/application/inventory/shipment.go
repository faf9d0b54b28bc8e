package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ShipmentKey clave de idempotencia del despacho de un pedido de venta.
func ShipmentKey(reference string) string {
	return "SO:" + reference
}

// ShipmentLine línea despachada. Location vacío usa la ubicación del despacho.
type ShipmentLine struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	Location string
}

// ShipmentInput despacho de un pedido de venta. Reference es el número del pedido.
type ShipmentInput struct {
	Reference   string
	Location    string
	Lines       []ShipmentLine
	PerformedBy string
}

// ShipmentResult despacho confirmado.
type ShipmentResult struct {
	Reference         string
	LedgerEntries     []*entity.StockMovement
	UpdatedAggregates []*entity.InventoryItem
	Skipped           []SkippedLine
}

// ShipmentOrchestrator descuenta el stock de un pedido de venta: un movimiento consumption
// por línea con origen en la ubicación, la variación negativa en esa ubicación y el
// recálculo del agregado. Si una línea no tiene stock suficiente no se aplica ninguna.
type ShipmentOrchestrator struct {
	txRunner TxRunner
	cache    ItemCache
	metrics  Metrics
	log      zerolog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewShipmentOrchestrator construye el orquestador. cache y metrics pueden ser nil.
func NewShipmentOrchestrator(txRunner TxRunner, cache ItemCache, metrics Metrics, log zerolog.Logger, timeout time.Duration) *ShipmentOrchestrator {
	if cache == nil {
		cache = nopCache{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if timeout <= 0 {
		timeout = DefaultReceivingTimeout
	}
	return &ShipmentOrchestrator{
		txRunner: txRunner,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Ship registra el despacho. Errores: domain.ErrInvalidInput, domain.ErrNotFound (ubicación),
// domain.ErrLocationInactive, domain.ErrInsufficientStock (se revierte todo el despacho),
// domain.ErrInvalidTransition envolviendo domain.ErrAlreadyShipped, y los reintentables.
func (o *ShipmentOrchestrator) Ship(ctx context.Context, in ShipmentInput) (*ShipmentResult, error) {
	in.Reference = strings.TrimSpace(in.Reference)
	if in.Reference == "" {
		return nil, fmt.Errorf("%w: referencia del pedido requerida", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: el despacho no tiene líneas", domain.ErrInvalidInput)
	}
	performedBy := strings.TrimSpace(in.PerformedBy)
	if performedBy == "" {
		performedBy = DefaultPerformer
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result *ShipmentResult
	err := o.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		res, err := o.shipTx(ctx, repos, in, performedBy)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		err = abortedIfContextDone(err)
		o.metrics.ObserveMovement(entity.MovementTypeConsumption, outcomeOf(err))
		o.log.Warn().Err(err).Str("reference", in.Reference).Bool("retryable", domain.IsRetryable(err)).Msg("despacho rechazado")
		return nil, err
	}

	skus := make([]string, 0, len(result.UpdatedAggregates))
	for _, it := range result.UpdatedAggregates {
		skus = append(skus, it.SKU)
	}
	if err := o.cache.Invalidate(context.WithoutCancel(ctx), skus...); err != nil {
		o.log.Warn().Err(err).Strs("skus", skus).Msg("no se pudo invalidar caché de inventario")
	}
	o.metrics.ObserveMovement(entity.MovementTypeConsumption, OutcomeCommitted)
	o.log.Info().
		Str("reference", in.Reference).
		Int("movements", len(result.LedgerEntries)).
		Int("skipped", len(result.Skipped)).
		Msg("despacho registrado")
	return result, nil
}

type shipmentLine struct {
	ShipmentLine
	location *entity.StockLocation
}

func (o *ShipmentOrchestrator) shipTx(ctx context.Context, repos TxRepos, in ShipmentInput, performedBy string) (*ShipmentResult, error) {
	now := o.now()
	if err := repos.Movements.ClaimShipment(ctx, ShipmentKey(in.Reference), now); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidTransition, domain.ErrAlreadyShipped, in.Reference)
		}
		return nil, fmt.Errorf("claim shipment: %w", err)
	}

	res := &ShipmentResult{Reference: in.Reference}
	locations := make(map[string]*entity.StockLocation)
	lines := make([]shipmentLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		l.SKU = strings.TrimSpace(l.SKU)
		if l.SKU == "" || !l.Quantity.IsPositive() {
			res.Skipped = append(res.Skipped, SkippedLine{Index: i, SKU: l.SKU, Reason: "sku vacío o cantidad no positiva"})
			o.log.Warn().Str("reference", in.Reference).Int("line", i).Str("sku", l.SKU).Msg("línea de despacho omitida")
			continue
		}
		ref := nonEmpty(l.Location, in.Location)
		if strings.TrimSpace(ref) == "" {
			return nil, fmt.Errorf("%w: línea %d sin ubicación de origen", domain.ErrInvalidInput, i)
		}
		loc, ok := locations[ref]
		if !ok {
			var err error
			if loc, err = activeLocation(ctx, repos, ref); err != nil {
				return nil, err
			}
			locations[ref] = loc
		}
		lines = append(lines, shipmentLine{ShipmentLine: l, location: loc})
	}

	// Bloquea los agregados en orden ascendente de SKU, igual que la recepción.
	skus := make([]string, 0, len(lines))
	items := make(map[string]*entity.InventoryItem)
	for _, l := range lines {
		if _, ok := items[l.SKU]; !ok {
			items[l.SKU] = nil
			skus = append(skus, l.SKU)
		}
	}
	sort.Strings(skus)
	for _, sku := range skus {
		item, err := repos.Items.GetForUpdate(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("lock inventory item %s: %w", sku, err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w: %s no tiene inventario", domain.ErrInsufficientStock, sku)
		}
		items[sku] = item
	}

	for _, l := range lines {
		name := nonEmpty(l.Name, items[l.SKU].Name)
		mov := &entity.StockMovement{
			Timestamp:    now,
			Type:         entity.MovementTypeConsumption,
			SKU:          l.SKU,
			ItemName:     name,
			Quantity:     l.Quantity.Neg(),
			FromLocation: l.location.Code,
			Reference:    in.Reference,
			PerformedBy:  performedBy,
			Notes:        fmt.Sprintf("Sales order %s - %s", in.Reference, name),
		}
		if err := AppendMovement(ctx, repos.Movements, mov); err != nil {
			return nil, err
		}
		res.LedgerEntries = append(res.LedgerEntries, mov)

		if _, err := ApplyDelta(ctx, repos.Levels, LocationDelta{
			LocationID: l.location.ID,
			SKU:        l.SKU,
			Quantity:   l.Quantity.Neg(),
		}, now); err != nil {
			return nil, err
		}
	}

	for _, sku := range skus {
		item, err := RecomputeFromLocations(ctx, repos, sku, nil, nil, nil, now)
		if err != nil {
			return nil, err
		}
		res.UpdatedAggregates = append(res.UpdatedAggregates, item)
	}
	return res, nil
}
