// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context, base *slog.Logger) {
//	    logger := logging.WithRequestID(ctx, base)
//	    logger.Info("rendering list page")
//	}
package logging
