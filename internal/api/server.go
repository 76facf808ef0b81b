// Package api provides the JSON API serving portfolio content to the site front end.
//
// The /v1/snapshot and /v1/language routes drive one client-mode session for the whole
// process, like a single browser tab: the first request's Accept-Language resolves the
// language and a switch is seen by every later request. Per-visitor content comes from
// /v1/pages/{code} and /v1/redirect.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/locale"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/site"
)

// SessionService is the client-mode view of the content
type SessionService interface {
	Start(ctx context.Context, acceptLanguage string) error
	Read() content.Snapshot
	IsLoading() bool
	State() locale.State
	SwitchLanguage(ctx context.Context, code string) error
}

// PageService is the build-mode view of the content
type PageService interface {
	Languages(ctx context.Context) ([]content.SupportedLanguage, error)
	StaticPaths(ctx context.Context) ([]site.PagePath, error)
	PageData(ctx context.Context, code string) (content.Snapshot, error)
}

// ServerOption configures the API server
type ServerOption func(*serverConfig)

type serverConfig struct {
	middlewares    []func(http.Handler) http.Handler
	metricsHandler http.Handler
	redirectBase   string
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithMetricsHandler serves h at /metrics
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.metricsHandler = h
	}
}

// WithRedirectBase sets the path prefix of the language pages /v1/redirect points to
func WithRedirectBase(base string) ServerOption {
	return func(cfg *serverConfig) {
		if base != "" {
			cfg.redirectBase = base
		}
	}
}

// NewServer creates the router over the client-mode session and the build-mode pages
func NewServer(session SessionService, pages PageService, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{redirectBase: "/"}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	routes := &Routes{session: session, pages: pages, redirectBase: cfg.redirectBase}
	r.Get("/health", healthCheck)
	r.Get("/readiness", routes.readinessCheck)
	r.Get("/version", versionInfo)
	if cfg.metricsHandler != nil {
		r.Handle("/metrics", cfg.metricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/snapshot", routes.getSnapshot)
		r.Put("/language/{code}", routes.switchLanguage)
		r.Get("/languages", routes.listLanguages)
		r.Get("/pages", routes.listPages)
		r.Get("/pages/{code}", routes.getPage)
		r.Get("/redirect", routes.redirect)
	})

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debugf("HTTP %s %s %d %s %s",
			r.Method,
			r.URL.Path,
			ww.Status(),
			time.Since(start),
			middleware.GetReqID(r.Context()),
		)
	})
}
