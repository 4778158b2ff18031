// Package httpserver exposes the comparison pipeline as a small JSON
// HTTP service: POST /api/v1/compare runs a git revision comparison and
// writes the report artifact, GET /api/v1/health answers liveness
// probes.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/erraggy/oasdelta/comparator"
	"github.com/erraggy/oasdelta/parser"
)

// Server wires the comparator behind the HTTP routes.
type Server struct {
	cfg    Config
	comp   *comparator.Comparator
	logger parser.Logger
}

// New creates a Server. A nil comparator gets default components.
func New(cfg Config, comp *comparator.Comparator, logger parser.Logger) *Server {
	if comp == nil {
		comp = comparator.New()
	}
	return &Server{cfg: cfg, comp: comp, logger: logger}
}

// log returns the configured logger, or a no-op logger if none is set.
func (s *Server) log() parser.Logger {
	if s.logger != nil {
		return s.logger
	}
	return parser.NopLogger{}
}

// Handler returns the route table with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/compare", s.handleCompare)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	return s.withLogging(mux)
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log().Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}

// Run serves until ctx is cancelled, then drains in-flight requests
// within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log().Info("http server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("httpserver: serve failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown failed: %w", err)
	}

	s.log().Info("http server stopped")
	return nil
}
