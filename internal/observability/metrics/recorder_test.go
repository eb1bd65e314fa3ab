package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestListOutcome(t *testing.T) {
	tests := []struct {
		name   string
		failed bool
		count  int
		want   string
	}{
		{name: "articles", count: 3, want: OutcomeOK},
		{name: "empty", count: 0, want: OutcomeEmpty},
		{name: "failed", failed: true, want: OutcomeError},
		{name: "failed wins over count", failed: true, count: 2, want: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListOutcome(tt.failed, tt.count))
		})
	}
}

func TestRecordListRender(t *testing.T) {
	renders := testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageList, OutcomeOK))
	shown := testutil.ToFloat64(ArticlesShownTotal)

	RecordListRender(PageList, OutcomeOK, 4, 120*time.Millisecond)

	assert.Equal(t, renders+1, testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageList, OutcomeOK)))
	assert.Equal(t, shown+4, testutil.ToFloat64(ArticlesShownTotal))
}

func TestRecordListRender_ErrorShowsNothing(t *testing.T) {
	shown := testutil.ToFloat64(ArticlesShownTotal)

	RecordListRender(PageFragment, OutcomeError, 0, time.Second)

	assert.Equal(t, shown, testutil.ToFloat64(ArticlesShownTotal))
}

func TestRecordListNoop(t *testing.T) {
	before := testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageFragment, OutcomeNoop))
	RecordListNoop()
	assert.Equal(t, before+1, testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageFragment, OutcomeNoop)))
}

func TestRecordReaderRender(t *testing.T) {
	articles := testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageReader, "article"))
	fallbacks := testutil.ToFloat64(ReaderPlainTextFallbacksTotal)

	RecordReaderRender("article", false, 50*time.Millisecond)
	RecordReaderRender("article", true, 50*time.Millisecond)

	assert.Equal(t, articles+2, testutil.ToFloat64(PageRendersTotal.WithLabelValues(PageReader, "article")))
	assert.Equal(t, fallbacks+1, testutil.ToFloat64(ReaderPlainTextFallbacksTotal))
}
