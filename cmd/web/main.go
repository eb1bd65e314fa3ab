// Command web serves the RSS reader: the paginated article list, the article
// reader and the operational endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"rss-reader/internal/config"
	hhttp "rss-reader/internal/handler/http"
	"rss-reader/internal/handler/http/middleware"
	"rss-reader/internal/handler/http/page"
	"rss-reader/internal/infra/feedapi"
	"rss-reader/internal/infra/sanitize"
	"rss-reader/internal/observability/logging"
	"rss-reader/internal/observability/tracing"
	"rss-reader/internal/render"
	"rss-reader/internal/resilience/circuitbreaker"
)

const serviceName = "rss-reader"

func main() {
	// replaced once the configured format and level are known
	boot := logging.NewLogger()

	if err := config.LoadDotEnv(".env"); err != nil {
		boot.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	handler, err := setupServer(logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(logger, cfg, handler); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func setupServer(logger *slog.Logger, cfg config.Config) (http.Handler, error) {
	client, err := newFeedClient(cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(cfg.Site.Name)
	if err != nil {
		return nil, err
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		extractor, err := middleware.NewIPExtractor(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return nil, err
		}
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}, extractor)
		logger.Info("rate limiting initialized",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies_count", len(cfg.RateLimit.TrustedProxies)))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	if cfg.CSP.Enabled {
		logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSP.ReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}

	health := &hhttp.HealthHandler{
		Upstream:      client,
		Version:       cfg.Version,
		CSPEnabled:    cfg.CSP.Enabled,
		CSPReportOnly: cfg.CSP.ReportOnly,
	}
	if limiter != nil {
		health.RateLimiter = limiter
	}

	return hhttp.NewRouter(hhttp.RouterConfig{
		Pages: page.Deps{
			Source:          client,
			Sanitizer:       sanitize.New(),
			Renderer:        renderer,
			MaxVisiblePages: cfg.Site.MaxVisiblePages,
			Logger:          logger,
		},
		Health:  health,
		Logger:  logger,
		Limiter: limiter,
		CSP:     hhttp.DefaultCSPConfig(cfg.CSP.Enabled, cfg.CSP.ReportOnly),
	}), nil
}

// newFeedClient builds the API client with the breaker settings of
// circuitbreaker.FeedAPIConfig.
func newFeedClient(cfg config.Config) (*feedapi.Client, error) {
	return feedapi.New(feedapi.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
		UserAgent:    cfg.API.UserAgent,
	}, feedapi.WithBreakerConfig(circuitbreaker.FeedAPIConfig()))
}

// run serves until SIGINT or SIGTERM, then drains the server and flushes
// the tracer provider.
func run(logger *slog.Logger, cfg config.Config, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := tracing.NewProvider(serviceName, cfg.Version)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.API.Timeout*2 + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version),
			slog.String("api_base_url", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
		logger.Info("server stopped")
		return nil
	})

	return eg.Wait()
}
