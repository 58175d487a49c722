package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Holdings metrics
	HoldingsDuration  prometheus.Histogram
	HoldingsSummaries prometheus.Histogram

	// Transaction metrics
	TransactionsRecorded *prometheus.CounterVec
	TransactionErrors    *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Idempotency metrics
	IdempotencyReplays prometheus.Counter
}

// New creates the registry metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HoldingsDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goregistry_holdings_duration_seconds",
			Help:    "Duration of holdings reconciliation",
			Buckets: prometheus.DefBuckets,
		}),
		HoldingsSummaries: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goregistry_holdings_summaries",
			Help:    "Number of security class summaries per holdings response",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),

		TransactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goregistry_transactions_recorded_total",
				Help: "Total transactions recorded by type",
			},
			[]string{"type"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goregistry_transaction_errors_total",
				Help: "Total rejected transactions by reason",
			},
			[]string{"reason"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goregistry_member_cache_lookups_total",
				Help: "Member cache lookups by result",
			},
			[]string{"result"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goregistry_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goregistry_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "goregistry_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "goregistry_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		IdempotencyReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "goregistry_idempotency_replays_total",
			Help: "Total responses replayed from the idempotency store",
		}),
	}
}

// ObserveHoldings records one holdings reconciliation.
func (m *Metrics) ObserveHoldings(duration time.Duration, summaries int) {
	m.HoldingsDuration.Observe(duration.Seconds())
	m.HoldingsSummaries.Observe(float64(summaries))
}

// TransactionRecorded counts a stored transaction.
func (m *Metrics) TransactionRecorded(transactionType string) {
	m.TransactionsRecorded.WithLabelValues(transactionType).Inc()
}

// TransactionFailed counts a rejected transaction.
func (m *Metrics) TransactionFailed(reason string) {
	m.TransactionErrors.WithLabelValues(reason).Inc()
}

// CacheLookup counts a member cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
