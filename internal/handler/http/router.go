package http

import (
	"log/slog"
	"net/http"

	"rss-reader/internal/handler/http/middleware"
	"rss-reader/internal/handler/http/page"
	"rss-reader/internal/handler/http/requestid"
	"rss-reader/internal/observability/tracing"
	"rss-reader/pkg/security/csp"
)

// RouterConfig collects everything NewRouter needs.
type RouterConfig struct {
	Pages   page.Deps
	Health  *HealthHandler
	Logger  *slog.Logger
	Limiter *middleware.RateLimiter // nil disables rate limiting
	CSP     middleware.CSPMiddlewareConfig
}

// DefaultCSPConfig returns the page policy for HTML routes and the strict
// policy for the operational endpoints.
func DefaultCSPConfig(enabled, reportOnly bool) middleware.CSPMiddlewareConfig {
	return middleware.CSPMiddlewareConfig{
		Enabled:       enabled,
		DefaultPolicy: csp.PagePolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/health":  csp.StrictPolicy(),
			"/live":    csp.StrictPolicy(),
			"/metrics": csp.StrictPolicy(),
		},
		ReportOnly: reportOnly,
	}
}

// NewRouter builds the complete handler of the server.
//
// Order of the chain, outermost first: request id, tracing, logging, panic
// recovery, metrics, CSP. Rate limiting only guards the pages so probes and
// scrapes are never rejected.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pages.Logger == nil {
		cfg.Pages.Logger = logger
	}

	pages := http.NewServeMux()
	page.Register(pages, cfg.Pages)

	var pageHandler http.Handler = pages
	if cfg.Limiter != nil {
		pageHandler = cfg.Limiter.Middleware()(pages)
	}

	mux := http.NewServeMux()
	if cfg.Health != nil {
		mux.Handle("GET /health", cfg.Health)
	}
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("/", pageHandler)

	return Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Recover(logger),
		MetricsMiddleware,
		middleware.NewCSPMiddleware(cfg.CSP).Middleware(),
	)
}
