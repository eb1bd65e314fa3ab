package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_PathNormalization(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	tests := []struct {
		path         string
		expectedPath string
	}{
		{path: "/", expectedPath: "/"},
		{path: "/reader.html", expectedPath: "/reader.html"},
		{path: "/static/app.js", expectedPath: "/static/:asset"},
		{path: "/wp-login.php", expectedPath: "/other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))

			count := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tt.expectedPath, "200"))
			if count != 1 {
				t.Errorf("http_requests_total{path=%q} = %v, want 1", tt.expectedPath, count)
			}
		})
	}
}

func TestMetricsMiddleware_QueryDoesNotAffectLabels(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for _, target := range []string{"/reader.html?id=1", "/reader.html?id=2", "/reader.html?id=3"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", target, nil))
	}

	if got := testutil.CollectAndCount(httpRequestsTotal); got != 1 {
		t.Errorf("series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/reader.html", "200")); got != 3 {
		t.Errorf("count = %v, want 3", got)
	}
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	for _, code := range []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound, http.StatusBadGateway} {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/partials/articles", nil))
	}

	for _, status := range []string{"200", "204", "404", "502"} {
		if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/partials/articles", status)); got != 1 {
			t.Errorf("status %s count = %v, want 1", status, got)
		}
	}
}

func TestMetricsMiddleware_InFlight(t *testing.T) {
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	before := testutil.ToFloat64(httpRequestsInFlight)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if during != before+1 {
		t.Errorf("in flight during request = %v, want %v", during, before+1)
	}
	if after := testutil.ToFloat64(httpRequestsInFlight); after != before {
		t.Errorf("in flight after request = %v, want %v", after, before)
	}
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, name := range []string{"http_requests_total", "http_request_duration_seconds", "http_requests_in_flight"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
