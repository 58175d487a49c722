package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/goregistry/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
		label      string
	}{
		{
			name:       "uses route pattern",
			method:     http.MethodGet,
			path:       "/api/registry/members/01ABC",
			statusCode: http.StatusTeapot,
			label:      "/api/registry/members/{id}",
		},
		{
			name:       "falls back to normalized path",
			method:     http.MethodGet,
			path:       "/api/registry/entities/e-1/unknown",
			statusCode: http.StatusNotFound,
			label:      "/api/registry/entities/{id}/unknown",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())

			r := chi.NewRouter()
			r.Use(Metrics(m))
			r.Get("/api/registry/members/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))

			if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			counter := m.HTTPRequests.WithLabelValues(tc.method, tc.label, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "member path without suffix",
			input:    "/api/registry/members/ABC123",
			expected: "/api/registry/members/{id}",
		},
		{
			name:     "member path with suffix",
			input:    "/api/registry/members/ABC123/holdings",
			expected: "/api/registry/members/{id}/holdings",
		},
		{
			name:     "compliance identifier path",
			input:    "/api/registry/compliance/AU/identifiers/ABN",
			expected: "/api/registry/compliance/{country}/identifiers/{type}",
		},
		{
			name:     "compliance entity type path",
			input:    "/api/registry/compliance/GB/entity-types/PLC",
			expected: "/api/registry/compliance/{country}/entity-types/{code}",
		},
		{
			name:     "non-matching path",
			input:    "/health",
			expected: "/health",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
