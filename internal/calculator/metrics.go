package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "workflow-demo/calculator"

type instruments struct {
	ops        metric.Int64Counter
	duration   metric.Float64Histogram
	errors     metric.Int64Counter
	lastResult metric.Float64Gauge
}

// inst starts as no-op instruments so handlers work before InitMetrics.
var inst = newNoopInstruments()

// InitMetrics registers the calculator's OTel instruments on the global
// meter provider. Call it once at startup, after observability.InitMetrics.
func InitMetrics() error {
	i, err := newInstruments(otel.Meter(instrumentationName))
	if err != nil {
		return err
	}
	inst = i
	return nil
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var (
		i   instruments
		err error
	)

	i.ops, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return i, fmt.Errorf("creating ops counter: %w", err)
	}

	i.duration, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return i, fmt.Errorf("creating ops histogram: %w", err)
	}

	i.errors, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return i, fmt.Errorf("creating error counter: %w", err)
	}

	i.lastResult, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The numeric result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return i, fmt.Errorf("creating result gauge: %w", err)
	}

	return i, nil
}

func newNoopInstruments() instruments {
	i, _ := newInstruments(noop.NewMeterProvider().Meter(instrumentationName))
	return i
}
