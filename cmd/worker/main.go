package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/jobs"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// El worker ejecuta la verificación de integridad programada (INTEGRITY_CRON) y la que se
// encola desde POST /api/inventory/integrity/check. Necesita PostgreSQL y Redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR requerido para el worker")
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatal().Str("storage", cfg.Storage.Driver).Msg("el worker solo opera sobre PostgreSQL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	verifier := inventory.NewIntegrityVerifier(
		postgres.NewTxRunner(pool),
		nil,
		log.Component("integrity"),
	)

	var cron []jobs.CronRegistration
	if cfg.Integrity.Cron != "" {
		task, err := jobs.NewIntegrityCheckTask(jobs.IntegrityCheckPayload{Trigger: "cron"})
		if err != nil {
			log.Fatal().Err(err).Msg("tarea programada de integridad")
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.Integrity.Cron,
			Task:    task,
			Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Logger: log.Component("worker"),
		Handlers: []jobs.TaskHandler{{
			Type:    jobs.TaskIntegrityCheck,
			Handler: jobs.IntegrityCheckHandler(verifier, log.Component("integrity")),
		}},
		Cron: cron,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	log.Info().Str("cron", cfg.Integrity.Cron).Msg("iniciando worker")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("worker finalizado")
	}
	log.Info().Msg("worker detenido")
}
