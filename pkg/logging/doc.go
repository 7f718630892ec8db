// Package logging builds the structured loggers used across armmock.
//
// It wraps log/slog. Components accept a *slog.Logger in their constructor or
// through SetLogger and fall back to Nop when none is given. Request-scoped
// loggers, carrying correlation ids, travel in the request context:
//
//	ctx = logging.WithContext(ctx, logger.With("requestId", id))
//	logging.FromContext(ctx).Info("matched operation", "operationId", op.ID())
//
// Output can be text (development) or JSON (log aggregation), and can be
// written to several destinations at once with NewTeeHandler.
package logging
