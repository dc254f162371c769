// Package server hosts the HTTP server and shared logging setup.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/atlaslingo/darlingo/internal/adapter/httpapi"
	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer creates the application server around the API handler.
func NewServer(cfg *config.Config, logger *logrus.Logger, handler *httpapi.Handler) *Server {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		config:     cfg,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
