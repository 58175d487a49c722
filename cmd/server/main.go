package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/goregistry/internal/adapter/http"
	"github.com/iho/goregistry/internal/adapter/http/handler"
	"github.com/iho/goregistry/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/goregistry/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goregistry/internal/adapter/repository/redis"
	"github.com/iho/goregistry/internal/infrastructure/config"
	"github.com/iho/goregistry/internal/infrastructure/logger"
	"github.com/iho/goregistry/internal/infrastructure/metrics"
	"github.com/iho/goregistry/internal/infrastructure/postgres"
	"github.com/iho/goregistry/internal/infrastructure/redis"
	"github.com/iho/goregistry/internal/usecase"
)

const (
	rateLimitCleanupInterval = 10 * time.Minute
	rateLimitIdleTimeout     = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Run migrations before serving so the schema matches the repositories.
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPoolSize)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entityRepo := postgresRepo.NewEntityRepository(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	classRepo := postgresRepo.NewSecurityClassRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	memberUC := usecase.NewMemberUseCase(usecase.MemberUseCaseConfig{
		MemberRepo:      memberRepo,
		TransactionRepo: transactionRepo,
		Cache:           cache,
		CacheTTL:        cfg.MemberCacheTTL,
		Metrics:         m,
		Logger:          log,
	})
	holdingsUC := usecase.NewHoldingsUseCase(memberUC, cfg.DefaultCurrency, m)
	entityUC := usecase.NewEntityUseCase(entityRepo)
	transactionUC := usecase.NewTransactionUseCase(usecase.TransactionUseCaseConfig{
		TxManager:       txManager,
		MemberRepo:      memberRepo,
		ClassRepo:       classRepo,
		TransactionRepo: transactionRepo,
		IDGen:           postgresRepo.NewULIDGenerator(),
		Retrier:         postgresRepo.NewRetrier(log),
		Cache:           cache,
		Metrics:         m,
		Logger:          log,
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits)
	go rateLimiter.RunCleanup(ctx, rateLimitCleanupInterval, rateLimitIdleTimeout)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MemberHandler:      handler.NewMemberHandler(memberUC),
		HoldingsHandler:    handler.NewHoldingsHandler(holdingsUC),
		EntityHandler:      handler.NewEntityHandler(entityUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		ComplianceHandler:  handler.NewComplianceHandler(),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log,
		Metrics:            m,
		MetricsGatherer:    registry,
		RateLimiter:        rateLimiter,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return serve(ctx, newHTTPServer(cfg, router), cfg.HTTPShutdownTimeout, log)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
