package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is replaced by InitLogger at startup. Tests may swap it for an
// observer-backed logger.
var Logger = zap.NewNop()

// InitLogger builds the process logger. Development mode uses zap's
// human-readable console encoder; everything else logs JSON.
func InitLogger(development bool) error {
	var (
		logger *zap.Logger
		err    error
	)

	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as zap.Any("context", ctx). The otelzap bridge
// treats a context.Context field as the context for log.Logger.Emit, which
// fills the native TraceID/SpanID on the exported OTLP record. Without it
// the bridge emits with context.Background() and the record carries zero
// IDs, so log to trace correlation in the backend breaks.
//
// trace_id and span_id strings stay so stdout JSON logs remain greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
