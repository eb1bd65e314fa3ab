package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"rss-reader/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied.
	Enabled bool

	// DefaultPolicy is used when no entry of PathPolicies matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins.
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of
	// enforcing the policy.
	ReportOnly bool
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
type CSPMiddleware struct {
	config CSPMiddlewareConfig
}

// NewCSPMiddleware creates a new CSP middleware with the provided configuration.
//
// Example:
//
//	cspMiddleware := NewCSPMiddleware(CSPMiddlewareConfig{
//	    Enabled:       true,
//	    DefaultPolicy: csp.PagePolicy(),
//	    PathPolicies: map[string]*csp.CSPBuilder{
//	        "/metrics": csp.StrictPolicy(),
//	    },
//	})
//	handler = cspMiddleware.Middleware()(handler)
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	return &CSPMiddleware{config: config}
}

// Middleware returns an HTTP middleware handler that sets the CSP header
// selected for the request path. Nothing is set when CSP is disabled or the
// selected policy is empty.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			policy := m.selectPolicy(r.URL.Path)
			if policy == nil {
				next.ServeHTTP(w, r)
				return
			}

			value := policy.Build()
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}

			// policies are shared between requests, so the mode is decided
			// here instead of mutating the builder
			headerName := csp.HeaderEnforce
			if m.config.ReportOnly {
				headerName = csp.HeaderReportOnly
			}
			w.Header().Set(headerName, value)

			slog.Debug("CSP header applied",
				slog.String("path", r.URL.Path),
				slog.String("header", headerName))

			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the policy of the longest matching prefix in
// PathPolicies, or DefaultPolicy.
//
//	PathPolicies: {"/metrics": StrictPolicy(), "/health": StrictPolicy()}
//	"/metrics"      → StrictPolicy
//	"/reader.html"  → DefaultPolicy
func (m *CSPMiddleware) selectPolicy(path string) *csp.CSPBuilder {
	longestPrefix := ""
	var matched *csp.CSPBuilder

	for prefix, policy := range m.config.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longestPrefix) {
			longestPrefix = prefix
			matched = policy
		}
	}
	if matched != nil {
		return matched
	}
	return m.config.DefaultPolicy
}
