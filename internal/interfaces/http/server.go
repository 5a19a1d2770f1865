package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
)

// Server owns the http.Server lifecycle around the assembled route tree.
type Server struct {
	srv *http.Server
	log logging.Logger
}

// NewServer binds the handler to the configured port and timeouts.
func NewServer(cfg config.ServerConfig, handler http.Handler, log logging.Logger) *Server {
	return &Server{
		log: log.Named("http"),
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start serves until Stop is called or the listener fails.  A graceful
// shutdown surfaces as a nil error.
func (s *Server) Start() error {
	s.log.Info("server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("server shutting down")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
