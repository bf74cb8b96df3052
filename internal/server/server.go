package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"workflow-demo/internal/observability"
)

// Server owns the HTTP listener lifecycle. It has no signal handling of
// its own: cancelling the context passed to Run is the shutdown signal.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func New(handler http.Handler, shutdownTimeout time.Duration) *Server {
	return &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves on ln until ctx is cancelled, then drains in-flight requests
// for up to the shutdown timeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		observability.Logger.Info("server started", zap.String("addr", ln.Addr().String()))

		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		observability.Logger.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		observability.Logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
