package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ServerConfig configures the Server behaviour.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Handler receives every request, typically a route chain wrapped in
	// middleware.
	Handler http.Handler

	// H2C serves HTTP/2 over cleartext connections, for deployments
	// behind a load balancer that speaks h2c to the application.
	H2C bool

	// ReadHeaderTimeout bounds reading of request headers.
	// Defaults to 10 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown once the run context is
	// canceled. Defaults to 15 seconds.
	ShutdownTimeout time.Duration
}

// Server runs an HTTP server with graceful shutdown tied to a context.
type Server struct {
	cfg ServerConfig
	srv *http.Server
}

// NewServer creates a server for the given configuration.
func NewServer(cfg ServerConfig) *Server {
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	h := cfg.Handler
	if cfg.H2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}
}

// Run serves until ctx is canceled, then shuts down gracefully, waiting up
// to ShutdownTimeout for in-flight requests. It returns nil on a clean
// shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
