package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goregistry/internal/infrastructure/metrics"
)

// Metrics records HTTP request counters, durations and the in-flight gauge.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)

			path := routePattern(r)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern prefers the matched chi pattern and falls back to
// normalizePath for requests that never reached a route.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return normalizePath(r.URL.Path)
}

// placeholders maps a path segment to the name of the parameter following it.
var placeholders = map[string]string{
	"members":      "{id}",
	"entities":     "{id}",
	"compliance":   "{country}",
	"identifiers":  "{type}",
	"entity-types": "{code}",
}

// normalizePath replaces identifiers in URL paths to avoid high cardinality.
// /api/registry/members/01ABC/holdings -> /api/registry/members/{id}/holdings
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if p, ok := placeholders[segments[i-1]]; ok && segments[i] != "" {
			segments[i] = p
		}
	}

	return strings.Join(segments, "/")
}
