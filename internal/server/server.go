// Package server hosts the chart page for an aggregate on a local address.
// The page and its data live under a random path prefix.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/juev/spendreport/internal/ledger"
)

const DefaultAddr = "127.0.0.1:3030"

//go:embed assets
var assets embed.FS

//go:embed assets/index.html
var indexHTML string

type settings struct {
	Addr            string
	Prefix          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func defaultSettings() settings {
	return settings{
		Addr:            DefaultAddr,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func normalizeSettings(s settings) settings {
	defaults := defaultSettings()
	if s.Addr == "" {
		s.Addr = defaults.Addr
	}
	if s.Prefix == "" {
		s.Prefix = uuid.NewString()
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = defaults.ReadTimeout
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = defaults.WriteTimeout
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = defaults.ShutdownTimeout
	}
	return s
}

type Option func(*settings)

func WithAddr(addr string) Option {
	return func(s *settings) {
		s.Addr = addr
	}
}

// WithPrefix fixes the path prefix instead of generating a random one.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		s.Prefix = prefix
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.ShutdownTimeout = d
	}
}

type Server struct {
	settings settings
	data     json.RawMessage
	logger   *zap.Logger
	router   chi.Router
}

// New encodes agg once; every request for the data is served from that
// snapshot.
func New(agg *ledger.Aggregate, logger *zap.Logger, opts ...Option) (*Server, error) {
	data, err := json.Marshal(agg)
	if err != nil {
		return nil, fmt.Errorf("encode aggregate: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	srv := &Server{
		settings: normalizeSettings(s),
		data:     data,
		logger:   logger,
	}
	srv.router = srv.routes()
	return srv, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/chart.js", s.asset("assets/chart.js"))
	r.Get("/style.css", s.asset("assets/style.css"))

	r.Route("/"+s.settings.Prefix, func(r chi.Router) {
		r.Get("/", s.index)
		r.Get("/data.json", s.dataJSON)
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Prefix() string {
	return s.settings.Prefix
}

// Path is the page path, with leading and trailing slash.
func (s *Server) Path() string {
	return "/" + s.settings.Prefix + "/"
}

func (s *Server) URL() string {
	return "http://" + s.settings.Addr + s.Path()
}

// index serves the chart page; the bare prefix redirects to the slashed path.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, s.Path(), http.StatusMovedPermanently)
		return
	}
	render.HTML(w, r, indexHTML)
}

func (s *Server) dataJSON(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.data)
}

func (s *Server) asset(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, assets, name)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.settings.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.settings.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. The
// listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving charts", zap.String("addr", ln.Addr().String()), zap.String("path", s.Path()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settings.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Debug("server stopped")
		return nil
	})
	return g.Wait()
}
