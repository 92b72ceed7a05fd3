package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stewz00/go-phishguard/internal/classifier"
	"github.com/Stewz00/go-phishguard/internal/config"
	"github.com/Stewz00/go-phishguard/internal/database"
	"github.com/Stewz00/go-phishguard/internal/handler"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/ocr"
	"github.com/Stewz00/go-phishguard/internal/repository"
	"github.com/Stewz00/go-phishguard/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		JSON:        cfg.LogFormat == "json",
		DefaultSlog: true,
	})
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET is not set; tokens are signed with the built-in development secret")
	}

	ctx := context.Background()

	// Initialize storage
	userRepo, historyRepo, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	mode, err := classifier.ParseMode(cfg.ClassifierMode)
	if err != nil {
		return err
	}
	clf, err := classifier.New(mode)
	if err != nil {
		return err
	}

	// Initialize services and router
	authService := service.NewAuthService(userRepo, cfg.JwtSecret,
		service.WithTokenExpiry(cfg.TokenTTL),
		service.WithStoreTimeout(cfg.DbTimeout),
	)
	extractor := ocr.NewTesseract(cfg.OCRCommand, cfg.OCRLang, cfg.OCRTimeout, cfg.MaxUploadBytes)
	classifyService := service.NewClassifyService(clf, extractor, historyRepo, cfg.DbTimeout)

	r := handler.NewRouter(handler.RouterConfig{
		AuthService:     authService,
		ClassifyService: classifyService,
		Logger:          logger,
		TrustedOrigins:  cfg.TrustedOrigins,
		MaxUploadBytes:  cfg.MaxUploadBytes,
	})

	// Create server with timeouts; OCR bounds the write side.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OCRTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "classifier", mode, "db_driver", cfg.DbDriver, "history_store", cfg.HistoryStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case sig := <-quit:
		logger.Info("server is shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited properly")
	return nil
}

// openStores connects the configured database and history backend. The
// returned func releases everything that was opened.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (interfaces.UserRepository, interfaces.HistoryRepository, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("close failed", "error", err)
			}
		}
	}

	var (
		userRepo    interfaces.UserRepository
		historyRepo interfaces.HistoryRepository
	)

	switch cfg.DbDriver {
	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.DbURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, closerFunc(func() error { db.Close(); return nil }))
		userRepo = repository.NewPostgresUserRepository(db)
		historyRepo = repository.NewPostgresHistoryRepository(db, cfg.HistoryLimit)
	default:
		db, err := database.OpenSQLite(ctx, cfg.DbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		closers = append(closers, db)
		userRepo = repository.NewSQLiteUserRepository(db)
		historyRepo = repository.NewSQLiteHistoryRepository(db, cfg.HistoryLimit)
	}

	switch cfg.HistoryStore {
	case config.HistoryRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, cfg.DbTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			closeAll()
			return nil, nil, nil, fmt.Errorf("unable to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		closers = append(closers, client)
		historyRepo = repository.NewRedisHistoryRepository(client, cfg.HistoryLimit)
	case config.HistoryMemory:
		historyRepo = repository.NewMemoryHistoryRepository(cfg.HistoryLimit)
	}

	return userRepo, historyRepo, closeAll, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
