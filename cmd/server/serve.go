package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/handler"
	"github.com/forgo/smartwords/internal/jobs"
	"github.com/forgo/smartwords/internal/metrics"
	"github.com/forgo/smartwords/internal/middleware"
	"github.com/forgo/smartwords/internal/repository"
	"github.com/forgo/smartwords/internal/service"
	"github.com/forgo/smartwords/internal/telemetry"
)

func runServe(ctx context.Context, configFile string) error {
	cfg, logger, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Tracing
	tp, err := telemetry.NewProvider(ctx, cfg.TelemetryConfig(version))
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Set store
	store, err := repository.OpenSetStore(ctx, cfg.SetStoreConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to open %s set store: %w", cfg.Store.Backend, err)
	}
	defer func() { _ = store.Close() }()
	logger.Info("set store opened", zap.String("backend", cfg.Store.Backend))

	setService := service.NewSetService(service.SetServiceConfig{
		Store:  store,
		Logger: logger,
		Tracer: tp.Tracer("github.com/forgo/smartwords/internal/service"),
	})

	// Metrics and background jobs
	m := metrics.New()
	monitor := jobs.NewStoreHealthMonitor(jobs.StoreHealthConfig{
		Store:    store,
		Recorder: m,
		Logger:   logger,
		Backend:  cfg.Store.Backend,
		Interval: cfg.Store.HealthInterval,
	})
	monitor.Start()
	defer monitor.Stop()

	// Request-scoped stores
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})
	defer idempotencyStore.Stop()

	mux := handler.NewRouter(handler.Routes{
		Sets: handler.NewSetHandler(setService, logger),
		Health: handler.NewHealthHandler(handler.HealthHandlerConfig{
			Store:   store,
			Backend: cfg.Store.Backend,
			Version: version,
			Logger:  logger,
		}),
		Metrics: m.Handler(),
	})

	// Metrics wraps the mux directly so it sees the matched route pattern
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
		middleware.Idempotency(idempotencyStore),
		middleware.Metrics(m),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.Bool("trace_export", tp.Exporting()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited")
	return nil
}
