package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"rss-reader/internal/handler/http/pathutil"
	"rss-reader/internal/handler/http/requestid"
	"rss-reader/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace id back to the browser.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request.
//
// The span is named after the route ("GET /reader.html", "GET /static/:asset",
// "GET /other") rather than the raw path, so scanners and asset names do not
// create new span names. Besides the HTTP attributes it records what the page
// was asked for:
//   - reader.article_id: the id of a reader.html request
//   - list.page, list.current, list.total: the page parameters of the list
//     and its fragment
//
// A 5xx answer sets the span status to Error. For the pages that is always an
// upstream failure rendered as an error view.
//
// Example usage:
//
//	handler := tracing.Middleware(mux)
//	http.ListenAndServe(":8080", handler)
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.path", r.URL.Path),
			),
		)
		defer span.End()
		span.SetAttributes(pageAttributes(route, r)...)

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		status := rw.StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("http.response_size", rw.BytesWritten()),
		)
		if id := requestid.FromContext(r.Context()); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}
		if status >= 500 {
			span.SetAttributes(attribute.Bool("error", true))
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// pageAttributes describes the request parameters of the routed pages.
func pageAttributes(route string, r *http.Request) []attribute.KeyValue {
	q := r.URL.Query()
	var attrs []attribute.KeyValue
	switch route {
	case "/reader.html":
		if id := q.Get("id"); id != "" {
			attrs = append(attrs, attribute.String("reader.article_id", id))
		}
	case "/", "/index.html", "/partials/articles":
		for _, name := range []string{"page", "current", "total"} {
			if v := q.Get(name); v != "" {
				attrs = append(attrs, attribute.String("list."+name, v))
			}
		}
	}
	return attrs
}
