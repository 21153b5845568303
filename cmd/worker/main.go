package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/retailops/backoffice/internal/domains/catalog/adapters/memory"
	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	inventorymemory "github.com/retailops/backoffice/internal/domains/inventory/adapters/memory"
	ordersmemory "github.com/retailops/backoffice/internal/domains/orders/adapters/memory"
	ordersobs "github.com/retailops/backoffice/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/retailops/backoffice/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/retailops/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	storesmemory "github.com/retailops/backoffice/internal/domains/stores/adapters/memory"
	"github.com/retailops/backoffice/internal/platform/migrations"
	platformobservability "github.com/retailops/backoffice/internal/platform/observability"
	platformpostgres "github.com/retailops/backoffice/internal/platform/postgres"
	orderactivities "github.com/retailops/backoffice/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/retailops/backoffice/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "backoffice-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	uow, orderRepo, cleanupRepo := buildPlacementBackend(ctx, logger)
	defer cleanupRepo()
	orderService := ordersobs.New(
		ordersapp.NewService(uow, orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildPlacementBackend prefers Postgres so worker placements share state with
// the API. The in-memory fallback only makes sense for local smoke runs.
func buildPlacementBackend(ctx context.Context, logger *slog.Logger) (ordersports.UnitOfWork, ordersports.Repository, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory placement backend")
		return buildMemoryBackend()
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		return buildMemoryBackend()
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
	}
	cleanup := func() {}
	if sqlDB, err := db.DB(); err == nil {
		cleanup = func() { _ = sqlDB.Close() }
	}
	logger.Info("worker placement backend configured with postgres")
	return orderspostgres.NewUnitOfWork(db), orderspostgres.NewRepository(db), cleanup
}

func buildMemoryBackend() (ordersports.UnitOfWork, ordersports.Repository, func()) {
	orderRepo := ordersmemory.NewRepository()
	uow := ordersmemory.NewUnitOfWork(
		customersmemory.NewRepository(),
		storesmemory.NewRepository(),
		catalogmemory.NewRepository(),
		inventorymemory.NewRepository(),
		orderRepo,
	)
	return uow, orderRepo, func() {}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
