// Package tracing provides OpenTelemetry tracing integration.
//
// Server spans are created by Middleware for every inbound request. Calls to
// the article API get client spans via StartClientSpan, which also injects the
// W3C trace context into the outbound request headers.
//
// Example usage:
//
//	tp := tracing.NewProvider("rss-reader", version)
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//
//	ctx, span := tracing.StartClientSpan(ctx, "feedapi.page_count", req.Header)
//	defer span.End()
package tracing
