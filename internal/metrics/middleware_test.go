package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newAPIRouter wires the middleware in front of stub handlers on the
// service's route shapes.
func newAPIRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/compare", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"equal":true,"diff":{}}`))
	})
	r.Post("/v1/score", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Post("/v1/score/batch", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return r
}

func serve(t *testing.T, r *chi.Mux, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

// Runs first in this file: CollectAndCompare sees the whole counter vec, so
// it must observe only the requests made here.
func TestMiddleware_CountsPerRoute(t *testing.T) {
	r := newAPIRouter()

	serve(t, r, http.MethodPost, "/v1/compare")
	serve(t, r, http.MethodGet, "/healthz")
	serve(t, r, http.MethodGet, "/healthz")

	expected := `
# HELP jsongrade_http_requests_total Total number of HTTP requests
# TYPE jsongrade_http_requests_total counter
jsongrade_http_requests_total{code="200",method="GET",route="/healthz"} 2
jsongrade_http_requests_total{code="200",method="POST",route="/v1/compare"} 1
`
	err := testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expected),
		"jsongrade_http_requests_total")
	if err != nil {
		t.Error(err)
	}
}

func TestMiddleware_StatusAndRouteLabels(t *testing.T) {
	r := newAPIRouter()

	tests := []struct {
		method string
		path   string
		route  string
		code   string
	}{
		{http.MethodPost, "/v1/score", "/v1/score", "400"},
		{http.MethodPost, "/v1/score/batch", "/v1/score/batch", "200"},
		{http.MethodGet, "/no/such/route", "unmatched", "404"},
	}

	for _, tc := range tests {
		t.Run(tc.route, func(t *testing.T) {
			serve(t, r, tc.method, tc.path)

			got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.code))
			if got != 1 {
				t.Errorf("requests_total{%s,%s,%s} = %f, want 1", tc.method, tc.route, tc.code, got)
			}
		})
	}
}

func TestMiddleware_ObservesDuration(t *testing.T) {
	r := newAPIRouter()
	serve(t, r, http.MethodPost, "/v1/compare")

	if n := testutil.CollectAndCount(httpRequestDuration); n == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_DefaultsStatusWhenNothingWritten(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/silent", func(http.ResponseWriter, *http.Request) {})

	serve(t, r, http.MethodGet, "/silent")

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/silent", "200"))
	if got != 1 {
		t.Errorf("requests_total{GET,/silent,200} = %f, want 1", got)
	}
}
