// Package cache provides the two caching strategies behind one get-or-compute contract.
//
// Process is the build-mode strategy: values are computed at most once per process and
// every page of a build observes the same value. Session is the client-mode strategy: it
// holds one snapshot, populates it once, and on a language switch replaces only the
// localization slice.
//
// Both strategies run one computation per key at a time. Concurrent callers for the
// same key wait for the in-flight result; a failed computation is reported to every
// waiter of that computation and is not cached.
package cache

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

// Well-known keys
const (
	KeyLanguages = "languages"
	KeyGlobals   = "globals"
)

var (
	// ErrSuperseded is returned by a language switch whose result arrived after a newer
	// switch was started. Its result is discarded.
	ErrSuperseded = errors.New("language switch superseded by a newer request")

	// ErrNotPopulated is returned when a session is used before Populate succeeded
	ErrNotPopulated = errors.New("session is not populated")
)

// ComputeFunc produces the value for a key on a cache miss
type ComputeFunc func(ctx context.Context) (any, error)

// Cache is the get-or-compute contract shared by both strategies
type Cache interface {
	// GetOrCompute returns the cached value for key, computing it on a miss
	GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (any, error)

	// Clear drops every cached value. Computations in flight when Clear is called do
	// not repopulate the cache.
	Clear()
}

// GetOrCompute is the typed form of Cache.GetOrCompute
func GetOrCompute[T any](ctx context.Context, c Cache, key string, compute func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %q holds %T, not %T", key, v, zero)
	}
	return typed, nil
}

// Loader is what the session strategy needs from the aggregation layer
type Loader interface {
	LoadLanguages(ctx context.Context) ([]content.SupportedLanguage, error)
	LoadAll(ctx context.Context) content.Globals
	LoadTranslations(ctx context.Context, lang content.SupportedLanguage) (content.Translations, error)
}

// Mode selects the caching strategy for a host environment
type Mode string

const (
	// ModeBuild shares one computation per key across a whole build
	ModeBuild Mode = "build"

	// ModeClient keeps one mutable snapshot for a long-lived client
	ModeClient Mode = "client"
)

// New returns the strategy for mode
func New(mode Mode, loader Loader, opts ...Option) (Cache, error) {
	switch mode {
	case ModeBuild:
		return NewProcess(opts...), nil
	case ModeClient:
		if loader == nil {
			return nil, fmt.Errorf("client mode requires a loader")
		}
		return NewSession(loader, opts...), nil
	default:
		return nil, fmt.Errorf("unknown cache mode %q", mode)
	}
}

// Option configures a cache strategy
type Option func(*options)

type options struct {
	logger  *zap.SugaredLogger
	metrics *telemetry.CacheMetrics
	shared  SharedStore
}

// WithLogger sets the cache logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the hit/miss instruments
func WithMetrics(m *telemetry.CacheMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSharedStore backs process-lifetime values with a cross-process store
func WithSharedStore(s SharedStore) Option {
	return func(o *options) {
		o.shared = s
	}
}
