package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// QueueDefault cola por defecto de las tareas de fondo.
	QueueDefault = "default"
	// TaskIntegrityCheck verificación de consistencia del inventario.
	TaskIntegrityCheck = "inventory:integrity_check"
)

// IntegrityCheckPayload datos de la tarea; Trigger indica quién la originó (cron, api).
type IntegrityCheckPayload struct {
	Trigger string `json:"trigger"`
}

// NewIntegrityCheckTask construye la tarea asynq.
func NewIntegrityCheckTask(payload IntegrityCheckPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIntegrityCheck, data, asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}

// Verifier lo implementa *inventory.IntegrityVerifier.
type Verifier interface {
	Verify(ctx context.Context) (*inventory.IntegrityReport, error)
}

// IntegrityCheckHandler procesa TaskIntegrityCheck. Una divergencia no se reintenta:
// se registra y se devuelve con asynq.SkipRetry.
func IntegrityCheckHandler(v Verifier, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload IntegrityCheckPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
		}
		report, err := v.Verify(ctx)
		switch {
		case err == nil:
			log.Info().Str("trigger", payload.Trigger).Int("items", report.Items).Msg("integridad verificada")
			return nil
		case errors.Is(err, domain.ErrInvariantViolation):
			ev := log.Error().Str("trigger", payload.Trigger)
			if report != nil {
				ev = ev.Int("divergences", len(report.Divergences))
				for i, d := range report.Divergences {
					if i == 10 {
						break
					}
					log.Error().Str("kind", d.Kind).Str("sku", d.SKU).Str("location", d.Location).
						Str("expected", d.Expected).Str("actual", d.Actual).Msg("divergencia")
				}
			}
			ev.Msg("inventario inconsistente")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			return err
		}
	}
}
