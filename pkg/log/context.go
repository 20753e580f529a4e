package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey struct{}

var loggerContextKey = contextKey{}

// SetContextLogger stores lg in ctx. A nil logger stores a NoopLogger.
// If ctx carries a valid span, the stored logger is enriched with the
// traceId and spanId of that span.
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		lg = lg.WithKV("traceId", sc.TraceID().String()).
			WithKV("spanId", sc.SpanID().String())
	}

	return context.WithValue(ctx, loggerContextKey, lg)
}

// FromContext returns the logger stored by SetContextLogger, or a NoopLogger.
func FromContext(ctx context.Context) Logger {
	if lg, ok := ctx.Value(loggerContextKey).(Logger); ok {
		return lg
	}
	return NewNoopLogger()
}
