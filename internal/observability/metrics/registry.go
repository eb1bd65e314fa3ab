package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page names used as the "page" label.
const (
	PageList     = "list"
	PageFragment = "fragment"
	PageReader   = "reader"
)

// Outcomes of the list page and its fragment. Reader outcomes use the
// names of render.Outcome.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
	OutcomeNoop  = "noop"
)

var (
	// PageRendersTotal counts rendered pages by page and outcome
	PageRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_renders_total",
			Help: "Total number of pages rendered, by page and outcome",
		},
		[]string{"page", "outcome"},
	)

	// PageRenderDuration measures the time from request to rendered page,
	// including the API calls
	PageRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_render_duration_seconds",
			Help:    "Time to build a page including upstream calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"page"},
	)

	// ArticlesShownTotal counts article cards shown on list pages
	ArticlesShownTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_shown_total",
			Help: "Total number of article cards rendered on list pages",
		},
	)

	// ReaderPlainTextFallbacksTotal counts articles shown as plain text
	// because their content could not be sanitized
	ReaderPlainTextFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reader_plaintext_fallbacks_total",
			Help: "Total number of articles rendered as plain text after a sanitizer failure",
		},
	)
)
