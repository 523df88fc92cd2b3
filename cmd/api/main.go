package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/places-service/internal/api/http"
	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/observability"
	"github.com/spec-kit/places-service/internal/persistence"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/upload"
	"github.com/spec-kit/places-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	placeRepo := repository.NewPlaceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	stager := upload.NewStager(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	placeService := service.NewPlaceService(service.PlaceDependencies{
		PlaceRepo:  placeRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	auditService := service.NewAuditService(dispatcher, logger)
	auditService.RegisterHandlers()
	worker.NewCleanupWorker(dispatcher, logger).Start()

	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxBytes) * 2,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg)
	placesHandler := handlers.NewPlacesHandler(placeService, stager)
	usersHandler := handlers.NewUsersHandler(accountService, stager)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Places:         placesHandler,
		Users:          usersHandler,
		AuthMiddleware: authMiddleware,
		UploadDir:      cfg.Upload.Dir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
