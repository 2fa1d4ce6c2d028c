// Package server serves the home page, the raw README template and the
// static assets over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/pages"
	"github.com/dguo/make-a-readme/internal/site"
	"github.com/dguo/make-a-readme/internal/view"
)

// Config holds the server configuration.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// StaticDir is served under /images/ and /lava-cake/ when set.
	StaticDir string
}

// Server renders the site's pages for browsers.
type Server struct {
	cfg    Config
	site   *site.Site
	home   pages.HomePage
	readme content.Readme
	logger *slog.Logger
}

// New returns a Server for the site. The home page is built once; the
// templates are parsed on the first request and cached by the site.
func New(cfg Config, s *site.Site, home pages.HomePage, readme content.Readme, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:    cfg,
		site:   s,
		home:   home,
		readme: readme,
		logger: logger,
	}
}

// Handler returns the routes of the site, instrumented with OpenTelemetry.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /template.md", s.handleReadme)
	mux.HandleFunc("GET /healthz", handleHealth)
	if s.cfg.StaticDir != "" {
		static := http.FileServer(http.Dir(s.cfg.StaticDir))
		mux.Handle("GET /images/", static)
		mux.Handle("GET /lava-cake/", static)
	}
	return otelhttp.NewHandler(s.withLogger(mux), "makeareadme")
}

// withLogger attaches the server's logger to every request's context so
// rendering logs through it.
func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(view.LoggingContext(r.Context(), logger)))
	})
}

// handleHome renders into a buffer first, so a failed render can still
// change the status before the error page goes out.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var page bytes.Buffer
	if err := view.RenderE(ctx, &page, s.site, s.home); err != nil {
		view.Logger(ctx).ErrorContext(ctx, "error rendering home page", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		view.Render(ctx, w, s.site, s.site.ServerErrorPage(ctx))
		return
	}
	if _, err := page.WriteTo(w); err != nil {
		view.Logger(ctx).ErrorContext(ctx, "error writing home page", "error", err)
	}
}

func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="README.md"`)
	if _, err := w.Write([]byte(s.readme.Markdown)); err != nil {
		view.Logger(r.Context()).ErrorContext(r.Context(), "error writing README template", "error", err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.HTTPAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", listener.Addr().String())
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
