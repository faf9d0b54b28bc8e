package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos manuales (receipt, consumption, adjustment, transfer)
// en una transacción: libro, stock por ubicación y agregado se confirman juntos o no se confirma nada.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	cache    ItemCache
	metrics  Metrics
	log      zerolog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. cache y metrics pueden ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, cache ItemCache, metrics Metrics, log zerolog.Logger, timeout time.Duration) *RegisterMovementUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if timeout <= 0 {
		timeout = DefaultReceivingTimeout
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para receipt/consumption/adjustment se usa Location; para transfer FromLocation y ToLocation.
// Las ubicaciones aceptan id o código. Quantity es positiva salvo en adjustment, donde lleva signo.
type MovementInput struct {
	Type         string
	SKU          string
	ItemName     string
	Location     string
	FromLocation string
	ToLocation   string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	ReorderPoint *decimal.Decimal
	Reference    string
	PerformedBy  string
	Notes        string
}

// MovementResult movimiento confirmado con los saldos resultantes.
type MovementResult struct {
	Movement *entity.StockMovement
	Levels   []*entity.LocationInventory
	Item     *entity.InventoryItem
}

func (in MovementInput) validate() error {
	if strings.TrimSpace(in.SKU) == "" {
		return fmt.Errorf("%w: sku requerido", domain.ErrInvalidMovement)
	}
	if strings.TrimSpace(in.Reference) == "" {
		return fmt.Errorf("%w: referencia requerida", domain.ErrInvalidMovement)
	}
	switch in.Type {
	case entity.MovementTypeReceipt, entity.MovementTypeConsumption:
		if strings.TrimSpace(in.Location) == "" {
			return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidMovement)
		}
		if !in.Quantity.IsPositive() {
			return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidMovement)
		}
	case entity.MovementTypeAdjustment:
		if strings.TrimSpace(in.Location) == "" {
			return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidMovement)
		}
		if in.Quantity.IsZero() {
			return fmt.Errorf("%w: cantidad no puede ser cero", domain.ErrInvalidMovement)
		}
	case entity.MovementTypeTransfer:
		if strings.TrimSpace(in.FromLocation) == "" || strings.TrimSpace(in.ToLocation) == "" {
			return fmt.Errorf("%w: origen y destino requeridos", domain.ErrInvalidMovement)
		}
		if !in.Quantity.IsPositive() {
			return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidMovement)
		}
	default:
		return fmt.Errorf("%w: tipo %q no soportado", domain.ErrInvalidMovement, in.Type)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidMovement)
	}
	if in.ReorderPoint != nil && in.ReorderPoint.IsNegative() {
		return fmt.Errorf("%w: punto de reorden negativo", domain.ErrInvalidMovement)
	}
	return nil
}

// RegisterMovement valida la entrada, abre la transacción, bloquea agregado y filas de ubicación
// (en orden de id), agrega el movimiento al libro y recalcula el agregado.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if err := in.validate(); err != nil {
		uc.metrics.ObserveMovement(in.Type, OutcomeRejected)
		return nil, err
	}
	if strings.TrimSpace(in.PerformedBy) == "" {
		in.PerformedBy = DefaultPerformer
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		res, err := uc.registerTx(ctx, repos, in)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		err = abortedIfContextDone(err)
		uc.metrics.ObserveMovement(in.Type, outcomeOf(err))
		uc.log.Warn().Err(err).Str("type", in.Type).Str("sku", in.SKU).Msg("movimiento de inventario rechazado")
		return nil, err
	}

	if err := uc.cache.Invalidate(context.WithoutCancel(ctx), in.SKU); err != nil {
		uc.log.Warn().Err(err).Str("sku", in.SKU).Msg("no se pudo invalidar caché de inventario")
	}
	uc.metrics.ObserveMovement(in.Type, OutcomeCommitted)
	uc.log.Info().
		Str("movement_id", result.Movement.MovementID).
		Str("type", in.Type).
		Str("sku", in.SKU).
		Str("quantity", result.Movement.Quantity.String()).
		Msg("movimiento de inventario registrado")
	return result, nil
}

func (uc *RegisterMovementUseCase) registerTx(ctx context.Context, repos TxRepos, in MovementInput) (*MovementResult, error) {
	now := uc.now()
	mov := &entity.StockMovement{
		Timestamp:   now,
		Type:        in.Type,
		SKU:         in.SKU,
		ItemName:    nonEmpty(in.ItemName, in.SKU),
		Reference:   strings.TrimSpace(in.Reference),
		PerformedBy: in.PerformedBy,
		Notes:       in.Notes,
	}

	var deltas []LocationDelta
	switch in.Type {
	case entity.MovementTypeReceipt, entity.MovementTypeConsumption, entity.MovementTypeAdjustment:
		loc, err := activeLocation(ctx, repos, in.Location)
		if err != nil {
			return nil, err
		}
		qty := in.Quantity
		if in.Type == entity.MovementTypeConsumption {
			qty = qty.Neg()
			mov.FromLocation = loc.Code
		} else {
			mov.ToLocation = loc.Code
		}
		mov.Quantity = qty
		deltas = []LocationDelta{{LocationID: loc.ID, SKU: in.SKU, Quantity: qty}}
	case entity.MovementTypeTransfer:
		from, err := activeLocation(ctx, repos, in.FromLocation)
		if err != nil {
			return nil, err
		}
		to, err := activeLocation(ctx, repos, in.ToLocation)
		if err != nil {
			return nil, err
		}
		if from.ID == to.ID {
			return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidMovement)
		}
		mov.Quantity = in.Quantity
		mov.FromLocation = from.Code
		mov.ToLocation = to.Code
		deltas = []LocationDelta{
			{LocationID: from.ID, SKU: in.SKU, Quantity: in.Quantity.Neg()},
			{LocationID: to.ID, SKU: in.SKU, Quantity: in.Quantity},
		}
	}

	// Solo las entradas actualizan costo y nombre de la fila de ubicación.
	inbound := mov.Quantity.IsPositive() && in.Type != entity.MovementTypeTransfer
	var unitCost *decimal.Decimal
	if inbound && in.UnitCost != nil {
		unitCost = in.UnitCost
	}

	seed := AggregateSeed{SKU: in.SKU, Name: mov.ItemName}
	if inbound {
		seed.Quantity = mov.Quantity
		if unitCost != nil {
			seed.UnitCost = *unitCost
		}
	}
	if _, err := LockAggregate(ctx, repos, seed, now); err != nil {
		return nil, err
	}

	if err := AppendMovement(ctx, repos.Movements, mov); err != nil {
		return nil, err
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i].LocationID < deltas[j].LocationID })
	levels := make([]*entity.LocationInventory, 0, len(deltas))
	for _, d := range deltas {
		if d.Quantity.IsPositive() {
			d.UnitCost = unitCost
			d.ItemName = &mov.ItemName
		}
		d.ReorderPoint = in.ReorderPoint
		row, err := ApplyDelta(ctx, repos.Levels, d, now)
		if err != nil {
			return nil, err
		}
		levels = append(levels, row)
	}

	var restocked *time.Time
	if inbound {
		restocked = &now
	}
	item, err := RecomputeFromLocations(ctx, repos, in.SKU, unitCost, in.ReorderPoint, restocked, now)
	if err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, Levels: levels, Item: item}, nil
}

func activeLocation(ctx context.Context, repos TxRepos, ref string) (*entity.StockLocation, error) {
	loc, err := ResolveLocationRef(ctx, repos.Locations, ref)
	if err != nil {
		return nil, err
	}
	if !loc.IsActive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocationInactive, loc.Code)
	}
	return loc, nil
}
