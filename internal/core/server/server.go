// Package server provides the HTTP preview server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/solatis/mwsfba/internal/core/api"
	"github.com/solatis/mwsfba/internal/core/config"
)

const shutdownTimeout = 30 * time.Second

// HTTPServer serves the preview API.
type HTTPServer struct {
	server *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewHTTPServer wires routes for service.
func NewHTTPServer(cfg *config.Config, service *api.ParamsService, logger *slog.Logger) (*HTTPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &HTTPServer{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(service, logger, cfg.RequestTimeout),
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// Handler returns the routed handler.
func (s *HTTPServer) Handler() http.Handler { return s.server.Handler }

// Start binds the listener and serves until Shutdown. A clean shutdown
// returns nil.
func (s *HTTPServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.server.Addr, err)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener.
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.logger.Info("preview server listening", "addr", listener.Addr().String())
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, forcing close after 30 seconds or
// when ctx ends.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.server.Close()
		return fmt.Errorf("graceful shutdown failed, forced stop: %w", err)
	}
	return nil
}
