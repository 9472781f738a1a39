package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"techjobs/internal/core/logger"
	"techjobs/internal/core/types"
)

type ServerOption func(*Server)

func WithLogger(logger *logger.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithListen(listen *url.URL) ServerOption {
	return func(s *Server) {
		s.listen = listen
	}
}

// Server handles HTTP requests and route registration
type Server struct {
	logger     *logger.Logger
	httpServer *http.Server
	listen     *url.URL
	mux        *http.ServeMux
}

// NewServer creates a new HTTP server
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		logger: logger.NewLogger(logger.WithName("server")),
		listen: &url.URL{Scheme: "http", Host: "0.0.0.0:8080"},
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              s.listen.Host,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// RegisterHandler implements the HandlerRegistrar interface
func (s *Server) RegisterHandler(route Route) error {
	if route.Path == "" || route.Handler == nil {
		return fmt.Errorf("invalid route %q", route.String())
	}
	s.mux.HandleFunc(route.String(), route.Handler)
	s.logger.Debug("Registered handler", "route", route.String())
	return nil
}

// Handler returns the router with every registered route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run begins the server and blocks until context is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting server", "address", s.listen.String())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Stopping server")
		shutdownCtx, cancel := types.NewTimeoutSubContext(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown server", "error", err)
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
