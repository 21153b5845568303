package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	backofficeserver "github.com/retailops/backoffice/go"

	catalogmemory "github.com/retailops/backoffice/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/retailops/backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/retailops/backoffice/internal/domains/catalog/application"
	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	customerspostgres "github.com/retailops/backoffice/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/retailops/backoffice/internal/domains/customers/application"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventorymemory "github.com/retailops/backoffice/internal/domains/inventory/adapters/memory"
	inventorypostgres "github.com/retailops/backoffice/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/retailops/backoffice/internal/domains/inventory/application"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	ordersmemory "github.com/retailops/backoffice/internal/domains/orders/adapters/memory"
	ordersobs "github.com/retailops/backoffice/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/retailops/backoffice/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/retailops/backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/retailops/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	reviewsmemory "github.com/retailops/backoffice/internal/domains/reviews/adapters/memory"
	reviewspostgres "github.com/retailops/backoffice/internal/domains/reviews/adapters/persistence/postgres"
	reviewsapp "github.com/retailops/backoffice/internal/domains/reviews/application"
	reviewsports "github.com/retailops/backoffice/internal/domains/reviews/ports"
	storesmemory "github.com/retailops/backoffice/internal/domains/stores/adapters/memory"
	storespostgres "github.com/retailops/backoffice/internal/domains/stores/adapters/persistence/postgres"
	storesapp "github.com/retailops/backoffice/internal/domains/stores/application"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
	platformmetrics "github.com/retailops/backoffice/internal/platform/metrics"
	"github.com/retailops/backoffice/internal/platform/migrations"
	platformobservability "github.com/retailops/backoffice/internal/platform/observability"
	platformpostgres "github.com/retailops/backoffice/internal/platform/postgres"
)

// Run boots the back-office HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "backoffice-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	catalogService := catalogapp.NewService(repos.catalog, repos.stockIndex)
	inventoryService := inventoryapp.NewService(repos.inventory)
	storeService := storesapp.NewService(repos.stores)
	customerService := customersapp.NewService(repos.customers)
	reviewService := reviewsapp.NewService(repos.reviews, repos.customers, productGuard{repo: repos.catalog})

	coreOrderService := ordersapp.NewService(repos.uow, repos.orders)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := backofficeserver.ApiHandleFunctions{
		OrdersAPI:    backofficeserver.NewOrdersAPI(orderService, orderWorkflows),
		ProductsAPI:  backofficeserver.NewProductsAPI(catalogService),
		StoresAPI:    backofficeserver.NewStoresAPI(storeService, inventoryService),
		InventoryAPI: backofficeserver.NewInventoryAPI(inventoryService),
		CustomersAPI: backofficeserver.NewCustomersAPI(customerService),
		ReviewsAPI:   backofficeserver.NewReviewsAPI(reviewService),
	}

	router := backofficeserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	if cfg.MetricsEnabled {
		prom := platformmetrics.NewPrometheus(serviceName)
		router.Use(prom.Middleware())
		router.GET("/metrics", prom.Handler())
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := ":" + cfg.Port
	logger.Info("back-office API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("back-office API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories bundles the persistence ports of every bounded context. All
// members come from the same backend; mixing Postgres and memory would break
// the placement unit of work.
type repositories struct {
	customers  customersports.Repository
	stores     storesports.Repository
	catalog    catalogports.Repository
	inventory  inventoryports.Repository
	stockIndex catalogports.StockIndex
	reviews    reviewsports.Repository
	orders     ordersports.Repository
	uow        ordersports.UnitOfWork
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return buildMemoryRepositories()
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return buildMemoryRepositories()
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
	}
	cleanup := func() {}
	if sqlDB, err := db.DB(); err == nil {
		cleanup = func() { _ = sqlDB.Close() }
	}
	logger.Info("repositories configured with postgres")
	inventoryRepo := inventorypostgres.NewRepository(db)
	return repositories{
		customers:  customerspostgres.NewRepository(db),
		stores:     storespostgres.NewRepository(db),
		catalog:    catalogpostgres.NewRepository(db),
		inventory:  inventoryRepo,
		stockIndex: inventoryRepo,
		reviews:    reviewspostgres.NewRepository(db),
		orders:     orderspostgres.NewRepository(db),
		uow:        orderspostgres.NewUnitOfWork(db),
	}, cleanup
}

func buildMemoryRepositories() (repositories, func()) {
	customersRepo := customersmemory.NewRepository()
	storesRepo := storesmemory.NewRepository()
	catalogRepo := catalogmemory.NewRepository()
	inventoryRepo := inventorymemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository()
	return repositories{
		customers:  customersRepo,
		stores:     storesRepo,
		catalog:    catalogRepo,
		inventory:  inventoryRepo,
		stockIndex: inventoryRepo,
		reviews:    reviewsmemory.NewRepository(),
		orders:     ordersRepo,
		uow:        ordersmemory.NewUnitOfWork(customersRepo, storesRepo, catalogRepo, inventoryRepo, ordersRepo),
	}, func() {}
}

// productGuard lets the reviews context verify a product exists without
// pulling in the whole catalog service surface.
type productGuard struct {
	repo catalogports.Repository
}

func (g productGuard) Exists(ctx context.Context, productID int64) error {
	_, err := g.repo.GetByID(ctx, productID)
	return err
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
