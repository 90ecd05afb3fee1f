package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newInstrumentedRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/v1/match", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"session_id":"sess-1"}`))
	})
	r.Post("/api/v1/choices", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/api/v1/segments/{segment}/weights", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func serve(t *testing.T, r chi.Router, method, path string) {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
}

func TestMiddleware_LabelsByRouteAndStatus(t *testing.T) {
	r := newInstrumentedRouter()

	serve(t, r, "POST", "/api/v1/match")
	serve(t, r, "POST", "/api/v1/choices")
	serve(t, r, "GET", "/health")

	tests := []struct {
		method, route, status string
	}{
		{"POST", "/api/v1/match", "200"},
		{"POST", "/api/v1/choices", "400"},
		{"GET", "/health", "503"},
	}
	for _, tc := range tests {
		got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
		if got < 1 {
			t.Errorf("expected requests_total{%s %s %s} >= 1, got %f",
				tc.method, tc.route, tc.status, got)
		}
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration histogram observations")
	}
}

func TestMiddleware_CollapsesPathParams(t *testing.T) {
	r := newInstrumentedRouter()

	for _, seg := range []string{"balanced", "quality_focused", "price_sensitive"} {
		serve(t, r, "GET", "/api/v1/segments/"+seg+"/weights")
	}

	pattern := "/api/v1/segments/{segment}/weights"
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", pattern, "200"))
	if got < 3 {
		t.Errorf("expected all segment requests on one series %q, got %f", pattern, got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newInstrumentedRouter()

	serve(t, r, "GET", "/api/v1/nope/123")
	serve(t, r, "GET", "/api/v1/nope/456")

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	if got < 2 {
		t.Errorf("expected unmatched paths collapsed onto %q, got %f", unmatchedRoute, got)
	}
}
