package main

import (
	"context"
	"errors"

	"workflow-demo/internal/calculator"
	"workflow-demo/internal/config"
	"workflow-demo/internal/observability"
)

// initTelemetry wires OTLP export for traces, metrics and logs when an
// endpoint is configured, then registers the domain metric instruments.
// Add new domain InitMetrics calls here as the project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.TelemetryEnabled {
		inits := []func(context.Context, string) (func(context.Context) error, error){
			observability.InitTracing,
			observability.InitMetrics,
			observability.InitLogging,
		}
		for _, initFn := range inits {
			fn, err := initFn(ctx, cfg.ServiceName)
			if err != nil {
				return nil, errors.Join(err, shutdown(ctx))
			}
			shutdowns = append(shutdowns, fn)
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return shutdown, nil
}
