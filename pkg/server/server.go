// Package server exposes the debate pipeline over HTTP: a debate endpoint,
// persona management, and static serving of generated audio artifacts.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/debatecast/debatecast/pkg/artifact"
	"github.com/debatecast/debatecast/pkg/config"
	"github.com/debatecast/debatecast/pkg/debate"
	"github.com/debatecast/debatecast/pkg/persona"
)

// Server wires the HTTP surface to the debate engine.
type Server struct {
	cfg       *config.Config
	engine    *debate.Engine
	personas  persona.Store
	artifacts *artifact.Store

	httpServer *http.Server
}

// New creates the HTTP server.
func New(cfg *config.Config, engine *debate.Engine, personas persona.Store, artifacts *artifact.Store) *Server {
	return &Server{
		cfg:       cfg,
		engine:    engine,
		personas:  personas,
		artifacts: artifacts,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/debates", s.handleCreateDebate)
	mux.HandleFunc("GET /api/personas", s.handleListPersonas)
	mux.HandleFunc("POST /api/personas", s.handleAddPersona)
	mux.Handle("GET /audio/", http.StripPrefix("/audio/",
		http.FileServer(http.Dir(s.artifacts.Dir()))))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Printf("[Server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("[Server] Listening on %s", s.cfg.ListenAddr)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}
