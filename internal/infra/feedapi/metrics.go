package feedapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as the outcome label.
const (
	outcomeSuccess        = "success"
	outcomeNotFound       = "not_found"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeTimeout        = "timeout"
	outcomeTooLarge       = "too_large"
	outcomeCircuitOpen    = "circuit_open"
	outcomeCanceled       = "canceled"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_api_requests_total",
			Help: "Total number of requests to the article API",
		},
		[]string{"endpoint", "outcome"},
	)

	// requestDuration covers the whole call including the breaker and body read.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_api_request_duration_seconds",
			Help:    "Article API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

func recordRequest(endpoint, outcome string, duration time.Duration) {
	requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
