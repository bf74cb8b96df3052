package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workflow-demo/internal/config"
	"workflow-demo/internal/handlers"
	"workflow-demo/internal/observability"
	"workflow-demo/internal/server"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	v := config.New()
	var envFile string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Serve the workflow demo HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Applied before Load: viper reads the environment lazily.
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			cfg := config.Load(v)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	config.BindFlags(v, cmd.Flags())

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	startedAt := time.Now()

	// Logger
	if err := observability.InitLogger(cfg.Debug); err != nil {
		return err
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetryShutdown(shutdownCtx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	// Router
	router := server.NewRouter(cfg, handlers.NewSite(cfg, startedAt))

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	base := "http://localhost:" + cfg.Port
	observability.Logger.Info("starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("stage", cfg.Stage),
		zap.Bool("telemetry", cfg.TelemetryEnabled),
		zap.String("health_check", base+"/health"),
		zap.String("api_demo", base+"/api/demo"),
	)

	if err := server.New(router, cfg.ShutdownTimeout).Run(ctx, ln); err != nil {
		observability.Logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}
