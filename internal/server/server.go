// Package server provides the HTTP API for Ruigo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/search"
	"github.com/hyperjump/ruigo/internal/suggest"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Ruigo API.
type Server struct {
	engine *search.Engine
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server

	mu        sync.RWMutex
	suggester *suggest.Suggester // optional; replaced on store reload
}

// NewServer creates a server with the given dependencies. suggester may be
// nil, in which case unknown-word responses carry no suggestions and the
// suggest endpoint returns 404.
func NewServer(
	engine *search.Engine,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	suggester *suggest.Suggester,
) *Server {
	return &Server{
		engine:    engine,
		config:    cfg,
		logger:    logger,
		suggester: suggester,
	}
}

// SetSuggester replaces the suggester, e.g. after a store reload rebuilt the
// vocabulary index. The previous suggester is closed.
func (s *Server) SetSuggester(sg *suggest.Suggester) {
	s.mu.Lock()
	old := s.suggester
	s.suggester = sg
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
}

func (s *Server) currentSuggester() *suggest.Suggester {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suggester
}

// Handler builds the router with all middleware and routes. Exposed so
// integration tests can serve it with httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(s.logRequests)

	r.Get("/api/v1/similarity", s.handleSimilarity)
	r.Get("/api/v1/neighbors", s.handleNeighbors)
	r.Get("/api/v1/analogy", s.handleAnalogy)
	r.Get("/api/v1/vocab/suggest", s.handleSuggest)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
