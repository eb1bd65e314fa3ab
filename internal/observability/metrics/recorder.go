package metrics

import "time"

// RecordListRender records a list page or fragment that showed count cards.
func RecordListRender(page, outcome string, count int, duration time.Duration) {
	PageRendersTotal.WithLabelValues(page, outcome).Inc()
	PageRenderDuration.WithLabelValues(page).Observe(duration.Seconds())
	if count > 0 {
		ArticlesShownTotal.Add(float64(count))
	}
}

// RecordListNoop records a fragment request that did not navigate.
func RecordListNoop() {
	PageRendersTotal.WithLabelValues(PageFragment, OutcomeNoop).Inc()
}

// ListOutcome classifies a rendered list.
func ListOutcome(failed bool, count int) string {
	switch {
	case failed:
		return OutcomeError
	case count == 0:
		return OutcomeEmpty
	default:
		return OutcomeOK
	}
}

// RecordReaderRender records the outcome of a reader request.
func RecordReaderRender(outcome string, plainText bool, duration time.Duration) {
	PageRendersTotal.WithLabelValues(PageReader, outcome).Inc()
	PageRenderDuration.WithLabelValues(PageReader).Observe(duration.Seconds())
	if plainText {
		ReaderPlainTextFallbacksTotal.Inc()
	}
}
