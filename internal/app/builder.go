package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kiuyha/portfolio-content/internal/api"
	"github.com/kiuyha/portfolio-content/internal/config"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

const (
	defaultHTTPAddress    = ":8080"
	defaultRequestTimeout = 30 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 45 * time.Second
	defaultIdleTimeout    = 60 * time.Second
)

// PortfolioAppOptions is a function that configures the app builder
type PortfolioAppOptions func(*portfolioAppConfig) error

type portfolioAppConfig struct {
	config *config.Config

	// Optional override, primarily for testing
	components *Components

	// HTTP server options
	address        string
	redirectBase   string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

func baseConfig(opts ...PortfolioAppOptions) (*portfolioAppConfig, error) {
	cfg := &portfolioAppConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// NewPortfolioApp builds the server from the configured options
func NewPortfolioApp(ctx context.Context, opts ...PortfolioAppOptions) (*PortfolioApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if cfg.components == nil {
		cfg.components, err = NewComponents(ctx, cfg.config)
		if err != nil {
			return nil, fmt.Errorf("failed to build components: %w", err)
		}
	}

	httpServer := buildHTTPServer(cfg)
	appCtx, cancel := context.WithCancel(ctx)

	return &PortfolioApp{
		config:     cfg.config,
		components: cfg.components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) PortfolioAppOptions {
	return func(cfg *portfolioAppConfig) error {
		cfg.config = c
		if c != nil && c.Server.Address != "" {
			cfg.address = c.Server.Address
		}
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) PortfolioAppOptions {
	return func(cfg *portfolioAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, found := strings.Cut(addr, ":")
		if !found || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithRedirectBase sets the path prefix /v1/redirect sends visitors to
func WithRedirectBase(base string) PortfolioAppOptions {
	return func(cfg *portfolioAppConfig) error {
		if base != "" && !strings.HasPrefix(base, "/") {
			return fmt.Errorf("redirect base must start with '/': %s", base)
		}
		cfg.redirectBase = base
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) PortfolioAppOptions {
	return func(cfg *portfolioAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithComponents injects prebuilt components (for testing)
func WithComponents(c *Components) PortfolioAppOptions {
	return func(cfg *portfolioAppConfig) error {
		cfg.components = c
		return nil
	}
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(b *portfolioAppConfig) *http.Server {
	logger.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	serverOpts := []api.ServerOption{api.WithRedirectBase(b.redirectBase)}
	if tel := b.components.Telemetry; tel != nil {
		// Metrics and tracing wrap everything else so rejected requests are counted too
		observe := []func(http.Handler) http.Handler{telemetry.TracingMiddleware(tel.TracerProvider())}
		if b.components.HTTPMetrics != nil {
			observe = append(observe, b.components.HTTPMetrics.Middleware)
		}
		b.middlewares = append(observe, b.middlewares...)
		if h := tel.MetricsHandler(); h != nil {
			serverOpts = append(serverOpts, api.WithMetricsHandler(h))
		}
	}
	serverOpts = append(serverOpts, api.WithMiddlewares(b.middlewares...))

	router := api.NewServer(b.components.Client, b.components.Builder, serverOpts...)

	return &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}
}
