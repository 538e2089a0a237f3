// Package server exposes the virtual hierarchy over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/seaward/blobtree/internal/config"
	"github.com/seaward/blobtree/internal/version"
	"github.com/seaward/blobtree/pkg/assets"
)

// Server is the HTTP API host.
type Server struct {
	cfg      config.ServerConfig
	provider *assets.Provider
	log      *zap.Logger
	handler  http.Handler
}

// New builds the server and its route table.
func New(provider *assets.Provider, cfg config.ServerConfig, log *zap.Logger) *Server {
	s := &Server{cfg: cfg, provider: provider, log: log}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler, for embedding and tests.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recoverPanics(s.log))
	r.Use(logRequests(s.log))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Get("/assets", s.handleSearch)
		r.Delete("/assets", s.handleRemove)
		r.Get("/assets/info", s.handleInfo)
		r.Get("/assets/exists", s.handleExists)
		r.Get("/assets/url", s.handleResolveURL)
		r.Get("/assets/content", s.handleRead)
		r.Put("/assets/content", s.handleWrite)
		r.Post("/folders", s.handleCreateFolder)
		r.Post("/transfers", s.handleTransfer)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

// Run serves until ctx is cancelled, then drains connections within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
