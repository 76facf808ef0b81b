// Package site exposes the two consumer entry points: Builder for static generation,
// where every page of a build shares one fetch, and Client for a long-lived process that
// keeps one snapshot and only reloads translations on a language switch.
package site

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

const defaultRetryInterval = 500 * time.Millisecond

// PagePath identifies one generated page
type PagePath struct {
	Lang string `json:"lang"`
}

// Builder serves build-mode page data from one process-lifetime cache
type Builder struct {
	loader        cache.Loader
	cache         *cache.Process
	logger        *zap.SugaredLogger
	retries       uint
	retryInterval time.Duration
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithBuilderLogger sets the builder logger
func WithBuilderLogger(l *zap.SugaredLogger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithLanguageRetries retries an unresolvable language list n more times before failing
func WithLanguageRetries(n uint, interval time.Duration) BuilderOption {
	return func(b *Builder) {
		b.retries = n
		if interval > 0 {
			b.retryInterval = interval
		}
	}
}

// NewBuilder creates a Builder. The cache is owned by the caller so a build can share
// it and tests can Clear it.
func NewBuilder(loader cache.Loader, c *cache.Process, opts ...BuilderOption) *Builder {
	b := &Builder{
		loader:        loader,
		cache:         c,
		logger:        logger.Get(),
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Languages returns the supported languages, computed once per build
func (b *Builder) Languages(ctx context.Context) ([]content.SupportedLanguage, error) {
	return cache.GetOrCompute(ctx, b.cache, cache.KeyLanguages,
		cache.SharedWithOptions(b.cache.SharedStore(), cache.KeyLanguages, b.cache.SharedOptions(), b.loadLanguages))
}

// StaticPaths returns one page per supported language
func (b *Builder) StaticPaths(ctx context.Context) ([]PagePath, error) {
	langs, err := b.Languages(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]PagePath, 0, len(langs))
	for _, l := range langs {
		paths = append(paths, PagePath{Lang: l.Code})
	}
	return paths, nil
}

// PageData returns the full snapshot for the page of code. Language-independent content
// is fetched once per build; translations are fetched for this page only and fall back
// to an empty set.
func (b *Builder) PageData(ctx context.Context, code string) (content.Snapshot, error) {
	langs, err := b.Languages(ctx)
	if err != nil {
		return content.Snapshot{}, err
	}
	lang, err := content.FindLanguage(langs, code)
	if err != nil {
		return content.Snapshot{}, err
	}

	globals, err := cache.GetOrCompute(ctx, b.cache, cache.KeyGlobals,
		cache.SharedWithOptions(b.cache.SharedStore(), cache.KeyGlobals, b.cache.SharedOptions(), func(ctx context.Context) (content.Globals, error) {
			return b.loader.LoadAll(ctx), nil
		}))
	if err != nil {
		return content.Snapshot{}, fmt.Errorf("failed to load page content: %w", err)
	}

	tr, err := b.loader.LoadTranslations(ctx, lang)
	if err != nil {
		b.logger.Warnw("Rendering page with fallback text", "language", code, "error", err)
		tr = content.Translations{}
	}
	return content.NewSnapshot(langs, globals, tr, lang.Code), nil
}

func (b *Builder) loadLanguages(ctx context.Context) ([]content.SupportedLanguage, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = b.retryInterval

	return backoff.Retry(ctx, func() ([]content.SupportedLanguage, error) {
		langs, err := b.loader.LoadLanguages(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return langs, err
	},
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(b.retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			b.logger.Warnw("Language list unavailable, retrying", "error", err, "retry_in", next)
		}),
	)
}
