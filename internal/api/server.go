// Package api implements the HTTP API for workspace storage and view
// rendering.
//
// Routes:
//
//	GET    /healthz                              liveness probe
//	GET    /workspaces                           list workspace IDs
//	PUT    /workspaces/{id}                      upload a workspace document
//	GET    /workspaces/{id}                      fetch a workspace document
//	DELETE /workspaces/{id}                      delete a workspace
//	GET    /workspaces/{id}/views/{container}    compose and render a view
//
// The view endpoint accepts query parameters: expand (add direct
// dependencies), all (select every element), detailed (include technology
// labels), and format (dot, svg, png or json; default json).
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archview/archview/pkg/pipeline"
	"github.com/archview/archview/pkg/store"
)

// Server handles HTTP requests against a workspace store and a render
// pipeline.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server. A nil logger disables request logging.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	return &Server{store: st, runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if s.logger != nil {
		r.Use(s.requestLogger)
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/workspaces", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.handlePut)
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/views/{container}", s.handleView)
		})
	})
	return r
}

// ListenAndServe runs the server on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
