// Package server hosts the configurator HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fretforge/fretforge/engine/configurator"
	"github.com/fretforge/fretforge/engine/infra/server/router"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	defaultHTTPTimeout    = 15 * time.Second
	httpIdleTimeout       = 60 * time.Second
	serverShutdownTimeout = 5 * time.Second
)

// Server wraps the gin engine and its http.Server lifecycle.
type Server struct {
	cfg        *config.Config
	log        logger.Logger
	service    *configurator.Service
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the server and registers all routes.
func NewServer(cfg *config.Config, log logger.Logger, service *configurator.Service) *Server {
	if cfg.Runtime.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{cfg: cfg, log: log, service: service}
	s.router = s.buildRouter()
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	timeout := s.cfg.Server.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  httpIdleTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return router.WrapServerError(router.ErrServiceUnavailableCode, "http server failed", err)
	case <-ctx.Done():
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	if s.httpServer == nil {
		return router.NewServerError(router.ErrInternalCode, "server not started")
	}
	s.log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return router.WrapServerError(router.ErrInternalCode, "server shutdown failed", err)
	}
	return nil
}
