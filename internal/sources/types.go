package sources

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/httpclient"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/schema"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

// Source identities used in logs and metrics
const (
	SourceSpreadsheet   = "spreadsheet"
	SourceContributions = "contributions"
	SourceArticles      = "articles"
)

//go:generate mockgen -destination=mocks/mock_sources.go -package=mocks -source=types.go Spreadsheet,ContributionSource,ArticleSource

// Spreadsheet fetches the sheets of the spreadsheet-backed content store
type Spreadsheet interface {
	// FetchLanguages returns the supported languages, or an empty list on failure
	FetchLanguages(ctx context.Context) []content.SupportedLanguage

	// FetchProjects returns the valid project rows in display order
	FetchProjects(ctx context.Context) []content.Project

	// FetchAchievements returns the valid achievement rows in display order
	FetchAchievements(ctx context.Context) []content.Achievement

	// FetchTranslations returns the translation table stored in sheetName
	FetchTranslations(ctx context.Context, sheetName string) content.Translations
}

// ContributionSource fetches code-hosting contribution statistics
type ContributionSource interface {
	FetchContributions(ctx context.Context) content.Contributions
}

// ArticleSource fetches the article feed
type ArticleSource interface {
	FetchArticles(ctx context.Context) content.Articles
}

// TransportError reports a provider that could not be reached or answered with a
// non-2xx status
type TransportError struct {
	Source string
	Kind   schema.Kind
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s request to %s failed: %v", e.Source, e.Kind, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the provider's HTTP status, or 0 for network failures
func (e *TransportError) StatusCode() int {
	return httpclient.StatusCode(e.Err)
}

// Option configures an adapter
type Option func(*adapter)

// WithLogger sets the logger adapters report failures to
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics sets the fetch instruments
func WithMetrics(m *telemetry.SourceMetrics) Option {
	return func(a *adapter) {
		a.metrics = m
	}
}

// WithTracer sets the tracer used for fetch spans
func WithTracer(t trace.Tracer) Option {
	return func(a *adapter) {
		if t != nil {
			a.tracer = t
		}
	}
}

// adapter holds what every provider adapter shares
type adapter struct {
	source  string
	client  httpclient.Client
	logger  *zap.SugaredLogger
	metrics *telemetry.SourceMetrics
	tracer  trace.Tracer
}

func newAdapter(source string, client httpclient.Client, opts []Option) adapter {
	a := adapter{
		source: source,
		client: client,
		logger: logger.Get(),
		tracer: otel.Tracer(telemetry.SourcesTracerName),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
