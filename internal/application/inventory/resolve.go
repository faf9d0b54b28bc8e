package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ResolveLocation busca la ubicación por id o, si id está vacío, por código.
func ResolveLocation(ctx context.Context, locations repository.StockLocationRepository, id, code string) (*entity.StockLocation, error) {
	var (
		loc *entity.StockLocation
		err error
	)
	if id != "" {
		loc, err = locations.GetByID(ctx, id)
	} else {
		loc, err = locations.GetByCode(ctx, strings.TrimSpace(code))
	}
	if err != nil {
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, nonEmpty(id, code))
	}
	return loc, nil
}

// ResolveLocationRef acepta un UUID o un código de ubicación.
func ResolveLocationRef(ctx context.Context, locations repository.StockLocationRepository, ref string) (*entity.StockLocation, error) {
	ref = strings.TrimSpace(ref)
	if _, err := uuid.Parse(ref); err == nil {
		return ResolveLocation(ctx, locations, ref, "")
	}
	return ResolveLocation(ctx, locations, "", ref)
}

// abortedIfContextDone traduce cancelación/timeout de contexto a domain.ErrTransactionAborted.
func abortedIfContextDone(err error) error {
	if err == nil || domain.IsRetryable(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrTransactionAborted):
		return OutcomeAborted
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrInvalidMovement),
		errors.Is(err, domain.ErrLocationInactive), errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeRejected
	}
	return OutcomeFailed
}
