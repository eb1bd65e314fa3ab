package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var (
	rateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Requests checked by the per-client rate limiter",
		},
		[]string{"status"},
	)

	rateLimitActiveKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_active_keys",
			Help: "Number of clients currently tracked by the rate limiter",
		},
	)
)

// RateLimiterConfig configures a RateLimiter.
type RateLimiterConfig struct {
	// RequestsPerSecond is the sustained rate allowed per client.
	RequestsPerSecond float64
	// Burst is the bucket size.
	Burst int
	// IdleTTL is how long an idle client keeps its bucket. Default: 10 minutes.
	IdleTTL time.Duration
	// MaxKeys caps the number of tracked clients. Default: 10000.
	MaxKeys int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket built on golang.org/x/time/rate.
// Clients are identified by IP. Idle clients are swept lazily.
type RateLimiter struct {
	config    RateLimiterConfig
	extractor IPExtractor
	now       func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

// NewRateLimiter returns a limiter keyed by the IPs that extractor returns.
func NewRateLimiter(config RateLimiterConfig, extractor IPExtractor) *RateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	if config.MaxKeys <= 0 {
		config.MaxKeys = 10000
	}
	if extractor == nil {
		extractor = &RemoteAddrExtractor{}
	}
	return &RateLimiter{
		config:    config,
		extractor: extractor,
		now:       time.Now,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

// Allow takes one token from key's bucket.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweepLocked(now)

	c, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= rl.config.MaxKeys {
			rl.evictOldestLocked()
		}
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)}
		rl.clients[key] = c
		rateLimitActiveKeys.Set(float64(len(rl.clients)))
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// ActiveKeys returns the number of tracked clients.
func (rl *RateLimiter) ActiveKeys() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RetryAfter is the whole number of seconds until one token is available
// again, at least 1.
func (rl *RateLimiter) RetryAfter() int {
	if rl.config.RequestsPerSecond <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/rl.config.RequestsPerSecond)))
}

// Middleware rejects requests over the limit with 429 Too Many Requests and a
// Retry-After header. Requests whose client IP cannot be determined pass.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := rl.extractor.ExtractIP(r)
			if err != nil {
				slog.Warn("rate limit skipped: cannot determine client ip",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if !rl.Allow(ip) {
				rateLimitRequestsTotal.WithLabelValues("denied").Inc()
				slog.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path))
				w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter()))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			rateLimitRequestsTotal.WithLabelValues("allowed").Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// sweepLocked drops clients idle for longer than IdleTTL, at most once per
// IdleTTL.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.IdleTTL {
		return
	}
	rl.lastSweep = now
	cutoff := now.Add(-rl.config.IdleTTL)
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
	rateLimitActiveKeys.Set(float64(len(rl.clients)))
}

func (rl *RateLimiter) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, c := range rl.clients {
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = key, c.lastSeen
		}
	}
	delete(rl.clients, oldestKey)
}
