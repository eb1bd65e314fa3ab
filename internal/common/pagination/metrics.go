package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Navigation outcomes recorded by RecordNavigation.
const (
	OutcomeNavigated = "navigated"
	OutcomeNoop      = "noop"
	OutcomeFailed    = "failed"
)

var (
	// NavigationsTotal counts pagination clicks handled by the list page.
	// Labels: outcome (navigated, noop, failed), page_range (page bucket: 1-10, 11-50, etc.)
	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_list_navigations_total",
			Help: "Total number of pagination navigations",
		},
		[]string{"outcome", "page_range"},
	)

	// TotalPages tracks the last page count reported by the API.
	TotalPages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "article_list_total_pages",
			Help: "Last page count reported by the article API",
		},
	)
)

// RecordNavigation records the outcome of a navigation to page.
func RecordNavigation(outcome string, page int) {
	NavigationsTotal.WithLabelValues(outcome, getPageRangeBucket(page)).Inc()
}

// UpdateTotalPages updates the page count gauge.
func UpdateTotalPages(total int) {
	TotalPages.Set(float64(total))
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page < 1:
		return "out-of-range"
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
