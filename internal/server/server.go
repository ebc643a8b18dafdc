// Package server exposes shared proposals over HTTP.
//
// Routes:
//
//	GET  /p/{token}                 public view, records a view
//	POST /p/{token}/approve         signature-gated approval
//	GET  /preview/{kind}/{id}       proposal or template under ?theme=
//	GET  /metrics                   prometheus metrics
//	GET  /healthz                   liveness
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexisbeaulieu97/proposa/internal/logger"
	"github.com/alexisbeaulieu97/proposa/internal/money"
	"github.com/alexisbeaulieu97/proposa/internal/render"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr     string
	Store    *workspace.Store
	Renderer *render.Renderer
	Logger   *logger.Logger
	// Currency is used for template previews, which carry none.
	Currency string
	// Watch reloads the store when its file changes on disk.
	Watch bool
	Now   func() time.Time
	// Registry receives the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server serves the public share surface.
type Server struct {
	addr     string
	store    *workspace.Store
	renderer *render.Renderer
	log      *logger.Logger
	currency string
	watch    bool
	now      func() time.Time
	metrics  *metrics
	router   *mux.Router
}

// New builds the router. Store and Renderer are required.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}

	s := &Server{
		addr:     opts.Addr,
		store:    opts.Store,
		renderer: opts.Renderer,
		log:      opts.Logger,
		currency: opts.Currency,
		watch:    opts.Watch,
		now:      opts.Now,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.currency == "" {
		s.currency = money.DefaultCurrency
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	router := mux.NewRouter()
	router.Use(s.withRequestLog)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.HandleFunc("/p/{token}", s.handlePublic).Methods(http.MethodGet)
	router.HandleFunc("/p/{token}/approve", s.handleApprove).Methods(http.MethodPost)
	router.HandleFunc("/preview/{kind:proposal|template}/{id}", s.handlePreview).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	s.router = router
	return s, nil
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.store.Path() != "" {
		w, err := newWatcher(s.store, s.log)
		if err != nil {
			return fmt.Errorf("watch workspace: %w", err)
		}
		defer w.close()
		go w.run(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	s.log.Info(ctx, "share server listening", "addr", s.addr, "workspace", s.store.Path())

	select {
	case <-ctx.Done():
		s.log.Info(context.Background(), "shutting down share server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithCorrelationID(r.Context(), logger.NewCorrelationID())
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		s.log.Debug(ctx, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}
