// @title       Stock Ledger API
// @version     1.0
// @description Libro de movimientos, stock por ubicación y recepción de órdenes de compra.
// @BasePath    /api
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/reports"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/jobs"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		repos    inventory.TxRepos
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		txRunner = store
		repos = store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
	}

	// Redis es opcional: sin REDIS_ADDR no hay caché ni cola de tareas.
	var (
		itemCache inventory.ItemCache
		enqueuer  httpRouter.IntegrityEnqueuer
	)
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			itemCache = cache.NewItemCache(rdb, cfg.Redis.CacheTTL)
		}
		jobsClient := jobs.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer jobsClient.Close()
		enqueuer = jobsClient
	}

	recorder := metrics.NewRecorder(nil)
	engineLog := log.Component("inventory")

	locationUC := usecase.NewStockLocationUseCase(repos.Locations)
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(repos.Orders)
	receivingUC := inventory.NewReceivingOrchestrator(txRunner, itemCache, recorder, engineLog, cfg.Receiving.TxTimeout)
	shipmentUC := inventory.NewShipmentOrchestrator(txRunner, itemCache, recorder, engineLog, cfg.Receiving.TxTimeout)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, itemCache, recorder, engineLog, cfg.Receiving.TxTimeout)
	queryUC := inventory.NewQueryUseCase(txRunner, repos, itemCache, engineLog)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Items)
	integrity := inventory.NewIntegrityVerifier(txRunner, recorder, log.Component("integrity"))
	reportUC := reports.NewReportUseCase(
		repos.Orders, repos.Locations, repos.Movements,
		pdf.NewReceivingNoteGenerator(), xlsx.NewLedgerExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Receiving.TxTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC:       locationUC,
		PurchaseOrderUC:  purchaseOrderUC,
		Receiving:        receivingUC,
		Shipments:        shipmentUC,
		RegisterMovement: registerMovementUC,
		Queries:          queryUC,
		Replenishment:    replenishmentUC,
		Integrity:        integrity,
		Reports:          reportUC,
		Enqueuer:         enqueuer,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
