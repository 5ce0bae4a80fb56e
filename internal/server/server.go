// Package server exposes the dashboard over HTTP. One Server holds the
// immutable store and the single selection state; each handler is one
// interaction over them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/binning"
	"bench-dashboard/internal/config"
	"bench-dashboard/internal/export"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/plot"
	"bench-dashboard/internal/selection"
	"bench-dashboard/internal/view"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	store     *benchmark.Store
	cfg       *config.Config
	selection *selection.State
	exporter  *export.Coordinator
	plots     *plot.Manager
	logger    *logrus.Logger
	access    *logrus.Logger
}

func New(store *benchmark.Store, cfg *config.Config, exporter *export.Coordinator) *Server {
	return &Server{
		store:     store,
		cfg:       cfg,
		selection: selection.New(),
		exporter:  exporter,
		plots:     plot.NewManager(),
		logger:    logging.GetLogger(),
		access:    logging.GetAccessLogger(),
	}
}

// RegisterOnMux registers the dashboard URLs on mux.
func (s *Server) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/options", s.options)
	mux.HandleFunc("GET /api/levels", s.levels)
	mux.HandleFunc("POST /api/entities", s.entities)
	mux.HandleFunc("POST /api/selection/toggle", s.toggle)
	mux.HandleFunc("GET /api/selection", s.getSelection)
	mux.HandleFunc("DELETE /api/selection", s.clearSelection)
	mux.HandleFunc("POST /api/view", s.view)
	mux.HandleFunc("POST /api/export", s.export)
	mux.HandleFunc("GET /{$}", s.index)
}

// Handler returns the routed dashboard with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterOnMux(mux)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("Dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// defaultState is the state the dashboard opens with.
func (s *Server) defaultState() view.State {
	return view.State{
		Scenario:  benchmark.Scenario(s.cfg.Dashboard.DefaultScenario),
		Languages: s.cfg.Dashboard.DefaultLanguages,
		Scope:     view.ScopeCPU,
	}
}

// withServerSide fills in the parts of a state the client never sends.
func (s *Server) withServerSide(state view.State) view.State {
	state.Selection = s.selection.Snapshot()
	state.Heatmap = binning.HeatmapOptions{
		Colormap: s.cfg.Dashboard.Colormap,
		LogScale: s.cfg.Dashboard.LogScale,
	}
	return state
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.access.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"bytes":    rec.bytes,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
