package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kiuyha/portfolio-content/internal/aggregate"
	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/config"
	"github.com/kiuyha/portfolio-content/internal/httpclient"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/schema"
	"github.com/kiuyha/portfolio-content/internal/site"
	"github.com/kiuyha/portfolio-content/internal/sources"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
	"github.com/kiuyha/portfolio-content/internal/versions"
)

// Components groups everything built from one configuration
type Components struct {
	Telemetry    *telemetry.Telemetry
	Orchestrator *aggregate.Orchestrator
	Cache        *cache.Process
	Builder      *site.Builder
	Client       *site.Client
	HTTPMetrics  *telemetry.HTTPMetrics

	redis *redis.Client
}

// NewComponents wires adapters, orchestrator, caches and entry points from cfg
func NewComponents(ctx context.Context, cfg *config.Config) (*Components, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	log := logger.Get()

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	c := &Components{Telemetry: tel}

	mp := tel.MeterProvider()
	sourceMetrics, err := telemetry.NewSourceMetrics(mp)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("failed to create source metrics: %w", err))
	}
	cacheMetrics, err := telemetry.NewCacheMetrics(mp)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("failed to create cache metrics: %w", err))
	}
	c.HTTPMetrics, err = telemetry.NewHTTPMetrics(mp)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("failed to create HTTP metrics: %w", err))
	}

	registry, err := schema.DefaultRegistry()
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("failed to compile content schemas: %w", err))
	}

	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = versions.UserAgent()
	}
	client := httpclient.NewDefaultClient(cfg.GetHTTPTimeout(), httpclient.WithUserAgent(userAgent))

	adapterOpts := []sources.Option{
		sources.WithLogger(log),
		sources.WithMetrics(sourceMetrics),
		sources.WithTracer(tel.TracerProvider().Tracer(telemetry.SourcesTracerName)),
	}
	sheets := sources.NewSheetsAdapter(client, registry, cfg.Spreadsheet.Endpoint, cfg.Spreadsheet.ID, sources.SheetNames{
		Languages:    cfg.Spreadsheet.Sheets.Languages,
		Projects:     cfg.Spreadsheet.Sheets.Projects,
		Achievements: cfg.Spreadsheet.Sheets.Achievements,
	}, adapterOpts...)
	contributions := sources.NewContributionsAdapter(client, registry,
		cfg.Contributions.Endpoint, cfg.Contributions.ProfileURL, adapterOpts...)
	articles := sources.NewArticlesAdapter(client, registry,
		cfg.Articles.Endpoint, cfg.Articles.FeedURLTemplate, cfg.Articles.ProfileURL, adapterOpts...)

	c.Orchestrator = aggregate.New(sheets, contributions, articles, registry,
		aggregate.WithLogger(log),
		aggregate.WithTracer(tel.TracerProvider().Tracer(telemetry.AggregateTracerName)),
	)

	cacheOpts := []cache.Option{cache.WithLogger(log), cache.WithMetrics(cacheMetrics)}
	if cfg.SharedCacheEnabled() {
		c.redis, err = cache.DialRedis(ctx, cfg.Cache.Redis.URL)
		if err != nil {
			return nil, c.fail(ctx, fmt.Errorf("failed to connect to shared cache: %w", err))
		}
		store := cache.NewRedisStore(c.redis, cfg.Cache.Redis.KeyPrefix, cfg.GetCacheTTL())
		cacheOpts = append(cacheOpts, cache.WithSharedStore(store))
		log.Infow("Shared content cache enabled", "prefix", cfg.Cache.Redis.KeyPrefix, "ttl", cfg.GetCacheTTL())
	}

	c.Cache = cache.NewProcess(cacheOpts...)
	c.Builder = site.NewBuilder(c.Orchestrator, c.Cache,
		site.WithBuilderLogger(log),
		site.WithLanguageRetries(cfg.GetLanguageRetries(), 0),
	)
	c.Client = site.NewClient(c.Orchestrator,
		site.WithClientLogger(log),
		site.WithCacheOptions(cache.WithMetrics(cacheMetrics)),
	)

	log.Debugw("Components initialized",
		"spreadsheet", cfg.Spreadsheet.ID,
		"contributions_user", contributions.Username(),
		"feed", articles.FeedURL(),
	)
	return c, nil
}

// Close releases the shared cache connection and flushes telemetry
func (c *Components) Close(ctx context.Context) error {
	var errs []error
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}
	if c.Telemetry != nil {
		if err := c.Telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Components) fail(ctx context.Context, err error) error {
	if closeErr := c.Close(ctx); closeErr != nil {
		logger.Get().Warnw("Cleanup after failed initialization", "error", closeErr)
	}
	return err
}
