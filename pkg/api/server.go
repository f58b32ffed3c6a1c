package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mieza/pkg/config"
	"github.com/matzehuels/mieza/pkg/pipeline"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	render  config.RenderConfig
	server  config.ServerConfig
	logger  *log.Logger
	metrics http.Handler
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New builds a server. cfg supplies the listen settings and the render
// defaults applied to requests that leave them unset.
func New(runner *pipeline.Runner, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		render: cfg.Render,
		server: cfg.Server,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(limitBody(s.server.MaxBodyBytes))
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
		r.Post("/netlist", s.handleNetlist)
		r.Post("/check", s.handleCheck)
		r.Get("/components", s.handleComponents)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Serve listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.server.Addr,
		Handler:           s,
		ReadTimeout:       s.server.ReadTimeout,
		ReadHeaderTimeout: s.server.ReadTimeout,
		WriteTimeout:      s.server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// applyDefaults fills request options the client left unset from the render
// config.
func (s *Server) applyDefaults(opts *pipeline.Options) {
	if opts.Theme == "" {
		opts.Theme = s.render.Theme
	}
	if opts.Style == "" {
		opts.Style = s.render.Style
	}
	if opts.Scale == 0 {
		opts.Scale = s.render.Scale
	}
	if !s.render.PinDots {
		opts.NoPinDots = true
	}
	if s.render.NetLabels {
		opts.NetLabels = true
	}
	opts.Logger = s.logger
}
