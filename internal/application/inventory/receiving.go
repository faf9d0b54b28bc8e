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
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultPerformer se registra cuando la recepción no trae usuario.
const DefaultPerformer = "System"

// DefaultReceivingTimeout límite de la transacción de recepción.
const DefaultReceivingTimeout = 30 * time.Second

// ReceiptKey clave de idempotencia de la recepción de una orden.
func ReceiptKey(orderNumber string) string {
	return "PO:" + orderNumber
}

// ReceiveInput datos de la recepción. Basta LocationID o LocationCode.
type ReceiveInput struct {
	OrderID      string
	LocationID   string
	LocationCode string
	PerformedBy  string
}

// SkippedLine línea de la orden que no generó movimiento.
type SkippedLine struct {
	Index  int
	SKU    string
	Reason string
}

// ReceiveResult resultado de una recepción confirmada.
type ReceiveResult struct {
	Order             *entity.PurchaseOrder
	Location          *entity.StockLocation
	LedgerEntries     []*entity.StockMovement
	UpdatedAggregates []*entity.InventoryItem
	Skipped           []SkippedLine
}

// ReceivingOrchestrator recibe órdenes de compra: por cada línea válida agrega un movimiento al
// libro, actualiza el stock de la ubicación y recalcula el agregado, y marca la orden como
// recibida. Todo en una sola transacción.
type ReceivingOrchestrator struct {
	txRunner TxRunner
	cache    ItemCache
	metrics  Metrics
	log      zerolog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewReceivingOrchestrator construye el orquestador. cache y metrics pueden ser nil.
func NewReceivingOrchestrator(txRunner TxRunner, cache ItemCache, metrics Metrics, log zerolog.Logger, timeout time.Duration) *ReceivingOrchestrator {
	if cache == nil {
		cache = nopCache{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if timeout <= 0 {
		timeout = DefaultReceivingTimeout
	}
	return &ReceivingOrchestrator{
		txRunner: txRunner,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// ReceivePurchaseOrder recibe la orden en la ubicación indicada.
// Errores: domain.ErrNotFound (orden o ubicación), domain.ErrInvalidTransition (estado no
// recibible; envuelve domain.ErrAlreadyReceived si ya fue recibida), domain.ErrLocationInactive,
// domain.ErrTransactionAborted y domain.ErrConcurrencyConflict (reintentables).
func (o *ReceivingOrchestrator) ReceivePurchaseOrder(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return nil, fmt.Errorf("%w: orderId requerido", domain.ErrInvalidInput)
	}
	if in.LocationID == "" && strings.TrimSpace(in.LocationCode) == "" {
		return nil, fmt.Errorf("%w: ubicación destino requerida", domain.ErrInvalidInput)
	}
	performedBy := strings.TrimSpace(in.PerformedBy)
	if performedBy == "" {
		performedBy = DefaultPerformer
	}

	start := o.now()
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result *ReceiveResult
	err := o.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		res, err := o.receiveTx(ctx, repos, in, performedBy)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		err = abortedIfContextDone(err)
		o.metrics.ObserveReceipt(outcomeOf(err), 0, o.now().Sub(start))
		o.log.Warn().Err(err).Str("order_id", in.OrderID).Bool("retryable", domain.IsRetryable(err)).Msg("recepción de orden de compra rechazada")
		return nil, err
	}

	skus := make([]string, 0, len(result.UpdatedAggregates))
	for _, it := range result.UpdatedAggregates {
		skus = append(skus, it.SKU)
	}
	if err := o.cache.Invalidate(context.WithoutCancel(ctx), skus...); err != nil {
		o.log.Warn().Err(err).Strs("skus", skus).Msg("no se pudo invalidar caché de inventario")
	}
	o.metrics.ObserveReceipt(OutcomeCommitted, len(result.LedgerEntries), o.now().Sub(start))
	o.log.Info().
		Str("order_number", result.Order.OrderNumber).
		Str("location", result.Location.Code).
		Int("movements", len(result.LedgerEntries)).
		Int("skipped", len(result.Skipped)).
		Msg("orden de compra recibida")
	return result, nil
}

func (o *ReceivingOrchestrator) receiveTx(ctx context.Context, repos TxRepos, in ReceiveInput, performedBy string) (*ReceiveResult, error) {
	order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("lock purchase order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, in.OrderID)
	}
	if order.Status == entity.PurchaseOrderStatusReceived {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidTransition, domain.ErrAlreadyReceived, order.OrderNumber)
	}
	if !order.CanReceive() {
		return nil, fmt.Errorf("%w: la orden %s está en estado %s", domain.ErrInvalidTransition, order.OrderNumber, order.Status)
	}

	location, err := ResolveLocation(ctx, repos.Locations, in.LocationID, in.LocationCode)
	if err != nil {
		return nil, err
	}
	if !location.IsActive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocationInactive, location.Code)
	}

	now := o.now()
	if err := repos.Orders.ClaimReceipt(ctx, ReceiptKey(order.OrderNumber), order.ID, now); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidTransition, domain.ErrAlreadyReceived, order.OrderNumber)
		}
		return nil, fmt.Errorf("claim receipt: %w", err)
	}

	res := &ReceiveResult{Order: order, Location: location}

	lines := make([]entity.PurchaseOrderItem, 0, len(order.Items))
	for i, it := range order.Items {
		if err := inventory.ValidateReceiptLine(it); err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Index: i, SKU: it.SKU, Reason: err.Error()})
			o.log.Warn().Str("order_number", order.OrderNumber).Int("line", i).Str("sku", it.SKU).Msg("línea de orden omitida")
			continue
		}
		it.SKU = strings.TrimSpace(it.SKU)
		lines = append(lines, it)
	}

	// Bloquea los agregados en orden ascendente de SKU antes de tocar el libro.
	if err := lockAggregatesSorted(ctx, repos, lines, now); err != nil {
		return nil, err
	}

	notes := fmt.Sprintf("Stock received from purchase order %s - Supplier: %s", order.OrderNumber, nonEmpty(order.Supplier, "N/A"))
	aggregates := make(map[string]*entity.InventoryItem)
	var skuOrder []string
	for _, it := range lines {
		name := nonEmpty(it.Name, it.SKU)

		mov := &entity.StockMovement{
			Timestamp:   now,
			Type:        entity.MovementTypeReceipt,
			SKU:         it.SKU,
			ItemName:    name,
			Quantity:    it.Quantity,
			ToLocation:  location.Code,
			Reference:   order.OrderNumber,
			PerformedBy: performedBy,
			Notes:       notes,
		}
		if err := AppendMovement(ctx, repos.Movements, mov); err != nil {
			return nil, err
		}
		res.LedgerEntries = append(res.LedgerEntries, mov)

		var unitCost *decimal.Decimal
		if it.UnitPrice.IsPositive() {
			c := it.UnitPrice
			unitCost = &c
		}
		if _, err := ApplyDelta(ctx, repos.Levels, LocationDelta{
			LocationID: location.ID,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
			UnitCost:   unitCost,
			ItemName:   &name,
		}, now); err != nil {
			return nil, err
		}

		item, err := RecomputeFromLocations(ctx, repos, it.SKU, unitCost, nil, &now, now)
		if err != nil {
			return nil, err
		}
		if _, seen := aggregates[it.SKU]; !seen {
			skuOrder = append(skuOrder, it.SKU)
		}
		aggregates[it.SKU] = item
	}

	if err := repos.Orders.MarkReceived(ctx, order.ID, location.ID, now); err != nil {
		return nil, fmt.Errorf("mark purchase order received: %w", err)
	}
	order.Status = entity.PurchaseOrderStatusReceived
	order.ReceivedDate = &now
	order.ReceivedLocationID = location.ID
	order.UpdatedAt = now

	for _, sku := range skuOrder {
		res.UpdatedAggregates = append(res.UpdatedAggregates, aggregates[sku])
	}
	return res, nil
}

// lockAggregatesSorted bloquea (o crea) un agregado por SKU distinto en orden ascendente.
func lockAggregatesSorted(ctx context.Context, repos TxRepos, lines []entity.PurchaseOrderItem, now time.Time) error {
	seeds := make(map[string]*AggregateSeed)
	for _, it := range lines {
		s, ok := seeds[it.SKU]
		if !ok {
			s = &AggregateSeed{SKU: it.SKU, Name: it.Name}
			seeds[it.SKU] = s
		}
		s.Quantity = s.Quantity.Add(it.Quantity)
		if s.UnitCost.IsZero() && it.UnitPrice.IsPositive() {
			s.UnitCost = it.UnitPrice
		}
	}
	skus := make([]string, 0, len(seeds))
	for sku := range seeds {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	for _, sku := range skus {
		if _, err := LockAggregate(ctx, repos, *seeds[sku], now); err != nil {
			return err
		}
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
