// Package server exposes the coordinator over HTTP: a catch-all ARM route,
// admin routes under /_admin/ and the middleware around both.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/getmockd/armmock/pkg/coordinator"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/metrics"
)

// AdminPrefix is the path prefix of the admin routes.
const AdminPrefix = "/_admin/"

// Config configures the HTTP listener.
type Config struct {
	// Addr is the listen address, e.g. ":8443".
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Inventory reports what the spec index loaded.
type Inventory interface {
	Files() int
	Operations() int
	Providers() []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records request metrics on m and serves g on the metrics route.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithInventory adds index counters to the status route.
func WithInventory(inv Inventory) Option {
	return func(s *Server) { s.inventory = inv }
}

// Server serves ARM requests from a coordinator.
type Server struct {
	cfg       Config
	coord     *coordinator.Coordinator
	inventory Inventory
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	log       *slog.Logger
	startTime time.Time

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server for coord.
func New(cfg Config, coord *coordinator.Coordinator, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		coord:     coord,
		log:       logging.Nop(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full handler: routes wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+AdminPrefix+"health", s.handleHealth)
	mux.HandleFunc("GET "+AdminPrefix+"status", s.handleStatus)
	mux.HandleFunc("POST "+AdminPrefix+"state/reset", s.handleReset)
	if s.gatherer != nil {
		mux.Handle("GET "+AdminPrefix+"metrics", metrics.Handler(s.gatherer))
	}
	mux.HandleFunc("/", s.handleARM)

	var h http.Handler = mux
	h = s.observe(h)
	h = s.correlate(h)
	h = s.recoverPanics(h)
	return h
}

// Start binds the listener and serves in the background. Bind errors are
// returned synchronously.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	s.log.Info("starting HTTP server", "addr", ln.Addr().String())
	srv := s.httpServer
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down within ctx.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.listener = nil
	if err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}
