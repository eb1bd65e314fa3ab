// Package metrics holds the Prometheus collectors that describe what the
// pages showed, as opposed to how the HTTP layer or the API client behaved.
//
// All metrics are registered with the default registry and exposed via the
// /metrics endpoint.
//
// Example usage:
//
//	import "rss-reader/internal/observability/metrics"
//
//	start := time.Now()
//	// ... render the list page ...
//	metrics.RecordListRender(metrics.PageList, metrics.OutcomeOK, 20, time.Since(start))
package metrics
