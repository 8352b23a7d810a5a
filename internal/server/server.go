// Package server assembles the HTTP server: middleware, routes and
// lifecycle.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrysnap/backend/internal/api"
	"github.com/pantrysnap/backend/internal/middleware"
)

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New builds the server from its collaborators. Routes are mounted
// immediately; nothing listens until Start.
func New(deps api.Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	api.SetupAPI(router, deps)

	return &Server{
		router: router,
		logger: deps.Logger,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens on addr and blocks until the listener fails or is shut
// down.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Info("server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
