package calculator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"workflow-demo/internal/handlers"
	"workflow-demo/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer(instrumentationName)

// Calculate handles POST /api/calculate.
func Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req CalcRequest
	if err := decodeBody(w, r, &req); err != nil {
		fail(ctx, span, logger, "unknown", err, w)
		return
	}
	opName := string(req.Operation)
	a, b := *req.A, *req.B

	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()
	result, err := Compute(req.Operation, a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		fail(ctx, span, logger, opName, err, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	inst.ops.Add(ctx, 1, attrs)
	inst.duration.Record(ctx, elapsed, attrs)
	if n, ok := result.Float64(); ok {
		inst.lastResult.Record(ctx, n, attrs)
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Stringer("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: req.Operation,
		A:         a,
		B:         b,
		Result:    result,
		Timestamp: handlers.Timestamp(time.Now()),
	})
}

func fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	observability.RecordError(ctx, span, logger, inst.errors, opName, Message(err), err, http.StatusBadRequest, w)
}

// Chain handles POST /api/calculate/chain. It runs a sequence of operations
// on a running total, creating a child span for every step.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := decodeBody(w, r, &req); err != nil {
		fail(ctx, span, logger, "chain", err, w)
		return
	}
	initial := *req.Initial

	span.SetAttributes(
		attribute.Float64("chain.initial", initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		opName := string(step.Op)
		value := *step.Value
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, opName),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", opName),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", value),
			),
		)

		stepStart := time.Now()
		prev := running
		next, err := apply(step.Op, running, value)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			logger.Warn("chain step failed",
				zap.Int("step", i),
				zap.String("operation", opName),
				zap.Float64("input", prev),
				zap.Float64("value", value),
			)

			fail(ctx, span, logger, opName, err, w)
			return
		}
		running = next

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		inst.ops.Add(ctx, 1, attrs)
		inst.duration.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", opName),
			zap.Float64("input", prev),
			zap.Float64("value", value),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  value,
			Result: Number(running),
		})
	}

	inst.lastResult.Record(ctx, running, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial:   initial,
		Steps:     results,
		Result:    Number(running),
		Timestamp: handlers.Timestamp(time.Now()),
	})
}
