package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reactions/internal/adapter/handler"
	"github.com/johnquangdev/meeting-reactions/internal/adapter/repository"
	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
	"github.com/johnquangdev/meeting-reactions/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-reactions/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-reactions/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/tracker"
	"github.com/johnquangdev/meeting-reactions/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-reactions/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-reactions/pkg/validator"
)

// @title           Meeting Reactions API
// @version         1.0
// @description     Records participant reactions during meetings and exports them as per-meeting pivot tables

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	location, err := cfg.Tracker.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}
	categories, err := cfg.Tracker.ReactionCategories()
	if err != nil {
		logger.Fatal("Invalid reaction categories", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))

	logger.Info("Initializing dependencies", zap.String("store", cfg.Store.Backend))

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open state store", zap.Error(err))
	}
	defer store.Close()

	opts := []tracker.Option{tracker.WithLogger(logger)}
	if cfg.Storage.Enabled {
		var archive *storage.MinIOClient
		err := retry(ctx, cfg, logger, "minio", func() error {
			var err error
			archive, err = storage.NewMinIOClient(ctx, &cfg.Storage)
			return err
		})
		if err != nil {
			logger.Fatal("Failed to initialize export archive", zap.Error(err))
		}
		opts = append(opts, tracker.WithArchive(archive, cfg.Storage.URLExpiry))
		logger.Info("Export archive enabled", zap.String("bucket", cfg.Storage.BucketName))
	}

	stateRepo := repository.NewStateRepository(store)
	trackerService, err := tracker.NewTrackerService(stateRepo, categories, location, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize tracker service", zap.Error(err))
	}

	trackerHandler := handler.NewTrackerHandler(trackerService, logger, location.String())
	router := handler.NewRouter(cfg, trackerHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("timezone", location.String()),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects the configured state backend
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.KVStore, error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		var store *cache.RedisStore
		err := retry(ctx, cfg, logger, "redis", func() error {
			var err error
			store, err = cache.NewRedisStore(ctx, cfg)
			return err
		})
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StorePostgres:
		var store *database.KVStore
		err := retry(ctx, cfg, logger, "postgres", func() error {
			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			store = database.NewKVStore(db)
			return nil
		})
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			if _, err := store.Migrate(); err != nil {
				store.Close()
				return nil, err
			}
		} else {
			logger.Info("Skipping migrations; apply them with sql-migrate")
		}
		return store, nil
	}

	return cache.NewMemoryStore(), nil
}

// retry runs connect with exponential backoff bounded by STORE_CONNECT_TIMEOUT
func retry(ctx context.Context, cfg *config.Config, logger *zap.Logger, name string, connect func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = cfg.Store.ConnectTimeout

	notify := func(err error, next time.Duration) {
		logger.Warn("Connection attempt failed",
			zap.String("backend", name),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(connect, backoff.WithContext(bo, ctx), notify); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", name, err)
	}
	logger.Info("Connected", zap.String("backend", name))
	return nil
}
