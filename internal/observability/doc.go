// Package observability groups the logging, metrics and tracing support of
// the reader.
//
// Subpackages:
//   - logging: slog construction, request-scoped loggers, error sanitizing
//   - metrics: Prometheus collectors describing rendered pages
//   - tracing: OpenTelemetry provider, server middleware and client spans
//
// Example usage:
//
//	import (
//	    "rss-reader/internal/observability/logging"
//	    "rss-reader/internal/observability/tracing"
//	)
//
//	func main() {
//	    logger := logging.New(os.Stdout, "info", "json")
//	    tp := tracing.NewProvider("rss-reader", "dev")
//	    defer tp.Shutdown(context.Background())
//	    logger.Info("application started")
//	}
package observability
