// Package aggregate fans out to every source adapter and assembles their results.
//
// Adapter failures are independent: each branch settles on its own value (or the kind's
// default after a panic) and never cancels its siblings. The language list is the only
// load-bearing input; when it cannot be resolved LoadLanguages reports an
// AggregateLoadError.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/otel"
	"github.com/kiuyha/portfolio-content/internal/schema"
	"github.com/kiuyha/portfolio-content/internal/sources"
)

var (
	// ErrNoLanguages means the supported-language list resolved to an empty set
	ErrNoLanguages = errors.New("supported language list is empty")

	// ErrNoTranslations means a translation sheet produced no usable keys
	ErrNoTranslations = errors.New("no translations available")
)

// AggregateLoadError is raised when the initial load cannot produce a snapshot at all
type AggregateLoadError struct {
	Err error
}

func (e *AggregateLoadError) Error() string {
	return fmt.Sprintf("content could not be loaded: %v", e.Err)
}

func (e *AggregateLoadError) Unwrap() error {
	return e.Err
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracer sets the tracer used for load spans. Without one no spans are started.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// Orchestrator issues adapter fetches and merges the results
type Orchestrator struct {
	sheets        sources.Spreadsheet
	contributions sources.ContributionSource
	articles      sources.ArticleSource
	registry      *schema.Registry
	logger        *zap.SugaredLogger
	tracer        trace.Tracer
}

// New creates an Orchestrator over the three adapters
func New(
	sheets sources.Spreadsheet,
	contributions sources.ContributionSource,
	articles sources.ArticleSource,
	registry *schema.Registry,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		sheets:        sheets,
		contributions: contributions,
		articles:      articles,
		registry:      registry,
		logger:        logger.Get(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadAll fetches every language-independent kind concurrently and waits for all of
// them to settle
func (o *Orchestrator) LoadAll(ctx context.Context) content.Globals {
	ctx, span := otel.StartSpan(ctx, o.tracer, "aggregate.LoadAll")
	defer span.End()
	ctx, fallbacks := sources.WithFallbacks(ctx)

	var (
		g   errgroup.Group
		out content.Globals
		reg = o.registry
	)

	g.Go(func() error {
		out.Projects = settle(o, fallbacks, schema.KindProjects, reg.Projects, func() []content.Project {
			return o.sheets.FetchProjects(ctx)
		})
		return nil
	})
	g.Go(func() error {
		out.Achievements = settle(o, fallbacks, schema.KindAchievements, reg.Achievements, func() []content.Achievement {
			return o.sheets.FetchAchievements(ctx)
		})
		return nil
	})
	g.Go(func() error {
		out.Contributions = settle(o, fallbacks, schema.KindContributions, reg.Contributions, func() content.Contributions {
			return o.contributions.FetchContributions(ctx)
		})
		return nil
	})
	g.Go(func() error {
		out.Articles = settle(o, fallbacks, schema.KindArticles, reg.Articles, func() content.Articles {
			return o.articles.FetchArticles(ctx)
		})
		return nil
	})

	// branches never return errors
	_ = g.Wait()
	out.Degraded = fallbacks.Kinds()

	span.SetAttributes(otel.AttrResultCount.Int(len(out.Projects) + len(out.Achievements) + len(out.Articles.Items)))
	o.logger.Debugw("Loaded language-independent content",
		"projects", len(out.Projects),
		"achievements", len(out.Achievements),
		"articles", len(out.Articles.Items),
		"degraded", out.Degraded,
	)
	return out
}

// LoadLanguages fetches the supported-language list. An empty list is an
// AggregateLoadError since no page can be routed without it.
func (o *Orchestrator) LoadLanguages(ctx context.Context) ([]content.SupportedLanguage, error) {
	ctx, span := otel.StartSpan(ctx, o.tracer, "aggregate.LoadLanguages")
	defer span.End()

	langs := settle(o, nil, schema.KindLanguages, o.registry.Languages, func() []content.SupportedLanguage {
		return o.sheets.FetchLanguages(ctx)
	})
	span.SetAttributes(otel.AttrResultCount.Int(len(langs)))
	if len(langs) == 0 {
		err := &AggregateLoadError{Err: ErrNoLanguages}
		otel.RecordError(span, err, "no languages")
		return nil, err
	}
	return langs, nil
}

// LoadTranslations fetches the translation table of one language. An empty table is
// returned together with ErrNoTranslations so callers can keep their current language.
func (o *Orchestrator) LoadTranslations(ctx context.Context, lang content.SupportedLanguage) (content.Translations, error) {
	ctx, span := otel.StartSpan(ctx, o.tracer, "aggregate.LoadTranslations",
		trace.WithAttributes(otel.AttrLanguage.String(lang.Code)))
	defer span.End()

	tr := settle(o, nil, schema.KindTranslations, o.registry.Translations, func() content.Translations {
		return o.sheets.FetchTranslations(ctx, lang.SheetName)
	})
	span.SetAttributes(otel.AttrResultCount.Int(tr.Len()))
	if tr.Len() == 0 {
		err := fmt.Errorf("%w for language %q", ErrNoTranslations, lang.Code)
		otel.RecordError(span, err, "no translations")
		return content.Translations{}, err
	}
	return tr, nil
}

// settle runs one adapter call, turning a panic or a nil result into the kind's default
// and recording the fallback in fallbacks
func settle[T any](o *Orchestrator, fallbacks *sources.Fallbacks, kind schema.Kind, s *schema.Schema[T], call func() T) (value T) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Errorw("Adapter panicked, using default", "kind", string(kind), "panic", r)
			fallbacks.Add(kind)
			value = s.Default()
		}
	}()
	value = call()
	if isUnset(value) {
		fallbacks.Add(kind)
		return s.Default()
	}
	return value
}

func isUnset(v any) bool {
	switch x := v.(type) {
	case []content.SupportedLanguage:
		return x == nil
	case []content.Project:
		return x == nil
	case []content.Achievement:
		return x == nil
	case content.Translations:
		return x == nil
	case content.Contributions:
		return x.Total == nil || x.Days == nil
	case content.Articles:
		return x.Items == nil
	default:
		return false
	}
}
