// Package server exposes a site project over HTTP: solve runs, arrangement
// scenes, reserves, workbook export and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ChicagoDave/siteplanner/internal/metrics"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

// maxRuns bounds how many solve runs are kept in memory; the oldest is
// evicted first.
const maxRuns = 16

// Options configures the server.
type Options struct {
	Port            int
	Workers         int
	MaxArrangements int
	Logger          *log.Logger
	Metrics         *metrics.Registry
}

// Server is the local development server for interactive planning.
type Server struct {
	projectPath string
	opts        Options
	logger      *log.Logger
	metrics     *metrics.Registry

	mu    sync.RWMutex
	runs  map[string]*run
	order []string
}

// run is one completed solve.
type run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Project   *spec.Project
	Planner   *layout.Planner
	Result    *layout.Result

	reserveOnce sync.Once
	reserves    []layout.Reserve
	reserveErr  error
}

// New creates a server for the given project directory or file.
func New(projectPath string, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}
	return &Server{
		projectPath: projectPath,
		opts:        opts,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		runs:        make(map[string]*run),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/project", s.handleProject)
		r.Get("/validation", s.handleValidation)
		r.Post("/solve", s.handleSolve)
		r.Route("/runs/{runID}", func(r chi.Router) {
			r.Get("/", s.handleRun)
			r.Get("/arrangements", s.handleArrangements)
			r.Get("/arrangements/{arrID}", s.handleArrangement)
			r.Get("/arrangements/{arrID}/scene", s.handleScene)
			r.Get("/arrangements/{arrID}/reserve", s.handleReserve)
			r.Get("/arrangements/{arrID}/verify", s.handleVerify)
			r.Get("/export.json", s.handleExportJSON)
			r.Get("/export.xlsx", s.handleExportXLSX)
		})
	})
	return r
}

// Start launches the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("siteplanner server starting", "url", "http://localhost"+addr)
	s.logger.Info("serving project", "path", s.projectPath)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs each request and records it under its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) storeRun(rn *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rn.ID] = rn
	s.order = append(s.order, rn.ID)
	if len(s.order) > maxRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Server) lookupRun(id string) (*run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rn, ok := s.runs[id]
	return rn, ok
}

func newRunID() string {
	return uuid.New().String()
}
