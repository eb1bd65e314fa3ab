// Package http wires the page handlers, the operational endpoints and the
// middleware chain of the web server.
package http

import (
	"context"
	"net/http"
	"time"

	"rss-reader/internal/handler/http/respond"
	"rss-reader/internal/observability/logging"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// UpstreamProbe is the part of the API client the health check uses.
type UpstreamProbe interface {
	PageCount(ctx context.Context) (int, error)
	BreakerState() string
}

// KeyCounter reports how many clients the rate limiter tracks.
type KeyCounter interface {
	ActiveKeys() int
}

// HealthHandler reports whether the article API answers, together with the
// circuit breaker state and informational rate limiter and CSP settings.
type HealthHandler struct {
	Upstream UpstreamProbe
	Version  string
	Timeout  time.Duration

	RateLimiter   KeyCounter // nil when rate limiting is disabled
	CSPEnabled    bool
	CSPReportOnly bool
}

// ServeHTTP returns 200 when the upstream probe succeeds and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := map[string]CheckStatus{
		"upstream": h.checkUpstream(ctx),
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_keys": h.RateLimiter.ActiveKeys()},
		}
	}
	checks["csp"] = CheckStatus{
		Status:  StatusHealthy,
		Details: map[string]any{"enabled": h.CSPEnabled, "report_only": h.CSPReportOnly},
	}

	status, code := StatusHealthy, http.StatusOK
	if checks["upstream"].Status != StatusHealthy {
		status, code = StatusUnhealthy, http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkUpstream(ctx context.Context) CheckStatus {
	if h.Upstream == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}

	start := time.Now()
	pages, err := h.Upstream.PageCount(ctx)
	details := map[string]any{
		"circuit_breaker": h.Upstream.BreakerState(),
		"latency_ms":      time.Since(start).Milliseconds(),
	}
	if err != nil {
		return CheckStatus{
			Status:  StatusUnhealthy,
			Message: logging.SanitizeError(err),
			Details: details,
		}
	}
	details["page_count"] = pages
	return CheckStatus{Status: StatusHealthy, Details: details}
}

// LiveHandler handles liveness probe requests. It always answers 200 while
// the process is able to serve.
type LiveHandler struct{}

// ServeHTTP writes "alive".
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.Text(w, http.StatusOK, "alive")
}
