package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/civicpulse-service/internal/api/http"
	"github.com/spec-kit/civicpulse-service/internal/api/http/handlers"
	"github.com/spec-kit/civicpulse-service/internal/classifier"
	"github.com/spec-kit/civicpulse-service/internal/config"
	"github.com/spec-kit/civicpulse-service/internal/domain"
	"github.com/spec-kit/civicpulse-service/internal/events"
	"github.com/spec-kit/civicpulse-service/internal/observability"
	"github.com/spec-kit/civicpulse-service/internal/persistence"
	"github.com/spec-kit/civicpulse-service/internal/service"
	"github.com/spec-kit/civicpulse-service/internal/store"
	"github.com/spec-kit/civicpulse-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	backend, err := selectSnapshotBackend(cfg.Snapshot, pg, redis)
	if err != nil {
		logger.Fatal("failed to init snapshot backend", zap.Error(err))
	}
	logger.Info("snapshot backend selected", zap.String("backend", cfg.Snapshot.Backend))

	complaintStore := store.NewComplaintStore(backend, logger)
	if err := complaintStore.Load(ctx, domain.SeedComplaints()); err != nil {
		logger.Fatal("failed to load complaint snapshot", zap.Error(err))
	}
	logger.Info("complaint collection loaded", zap.Int("count", complaintStore.Len()))

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	gemini := classifier.NewGeminiClassifier(
		cfg.Classifier.BaseURL,
		cfg.Classifier.Model,
		cfg.Classifier.APIKey,
		cfg.Classifier.Timeout(),
	)

	triageService := service.NewTriageService(service.TriageDependencies{
		Store:      complaintStore,
		Classifier: gemini,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Complaints: handlers.NewComplaintsHandler(triageService),
		Stats:      handlers.NewStatsHandler(triageService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func selectSnapshotBackend(cfg config.SnapshotConfig, pg *persistence.Postgres, redis *persistence.Redis) (store.SnapshotBackend, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryBackend(), nil
	case "file":
		return persistence.NewFileSnapshotBackend(cfg.FilePath), nil
	case "redis":
		return persistence.NewRedisSnapshotBackend(redis, cfg.Key)
	case "postgres":
		return persistence.NewPostgresSnapshotBackend(pg, cfg.Key)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
