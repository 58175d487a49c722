package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goregistry/internal/adapter/http/handler"
	"github.com/iho/goregistry/internal/adapter/http/middleware"
	"github.com/iho/goregistry/internal/infrastructure/metrics"
	"github.com/iho/goregistry/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional pieces are
// skipped when nil.
type RouterConfig struct {
	MemberHandler      *handler.MemberHandler
	HoldingsHandler    *handler.HoldingsHandler
	EntityHandler      *handler.EntityHandler
	TransactionHandler *handler.TransactionHandler
	ComplianceHandler  *handler.ComplianceHandler
	HealthHandler      *handler.HealthHandler

	Logger             zerolog.Logger
	Metrics            *metrics.Metrics
	MetricsGatherer    prometheus.Gatherer
	RateLimiter        *middleware.RateLimiter
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	CORSAllowedOrigins []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.IdempotencyKeyHeader},
			ExposedHeaders: []string{middleware.IdempotencyReplayHeader},
			MaxAge:         300,
		}))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/registry", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			var replays prometheus.Counter
			if cfg.Metrics != nil {
				replays = cfg.Metrics.IdempotencyReplays
			}
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, replays, cfg.Logger)
			r.Use(idempotency.Wrap)
		}

		r.Route("/members/{id}", func(r chi.Router) {
			r.Get("/", cfg.MemberHandler.Get)
			r.Get("/holdings", cfg.HoldingsHandler.Get)
		})

		r.Route("/entities/{id}", func(r chi.Router) {
			r.Get("/", cfg.EntityHandler.Get)
			r.Get("/members", cfg.MemberHandler.ListByEntity)
		})

		r.Post("/transactions", cfg.TransactionHandler.Create)

		r.Route("/compliance/{country}", func(r chi.Router) {
			r.Get("/identifiers/{type}", cfg.ComplianceHandler.Identifier)
			r.Get("/entity-types/{code}", cfg.ComplianceHandler.EntityType)
		})
	})

	return r
}
