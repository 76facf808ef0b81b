package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SourcesMeterName is the meter used by the provider adapters
	SourcesMeterName = "github.com/kiuyha/portfolio-content/sources"

	// CacheMeterName is the meter used by the content cache
	CacheMeterName = "github.com/kiuyha/portfolio-content/cache"

	// SourcesTracerName is the tracer used by the provider adapters
	SourcesTracerName = "github.com/kiuyha/portfolio-content/sources"

	// AggregateTracerName is the tracer used by the orchestrator
	AggregateTracerName = "github.com/kiuyha/portfolio-content/aggregate"
)

// Fetch outcomes recorded by SourceMetrics
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeShapeError     = "shape_error"
)

// SourceMetrics holds the instruments for provider fetches
type SourceMetrics struct {
	fetchDuration metric.Float64Histogram
	droppedRows   metric.Int64Counter
}

// NewSourceMetrics creates source instruments on provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSourceMetrics(provider metric.MeterProvider) (*SourceMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SourcesMeterName)

	fetchDuration, err := meter.Float64Histogram(
		"portfolio_source_fetch_duration_seconds",
		metric.WithDescription("Duration of provider fetches in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	droppedRows, err := meter.Int64Counter(
		"portfolio_source_dropped_rows_total",
		metric.WithDescription("Rows removed from provider payloads because they failed validation"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	return &SourceMetrics{fetchDuration: fetchDuration, droppedRows: droppedRows}, nil
}

// RecordFetch records one provider fetch
func (m *SourceMetrics) RecordFetch(ctx context.Context, source, kind, outcome string, duration time.Duration) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

// RecordDroppedRows counts rows dropped from a row-wise payload
func (m *SourceMetrics) RecordDroppedRows(ctx context.Context, kind string, n int) {
	if m == nil || m.droppedRows == nil || n == 0 {
		return
	}
	m.droppedRows.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// CacheMetrics holds the instruments for cache lookups and language switches
type CacheMetrics struct {
	lookups  metric.Int64Counter
	switches metric.Int64Counter
}

// NewCacheMetrics creates cache instruments on provider.
// If provider is nil, it returns nil (no-op metrics).
func NewCacheMetrics(provider metric.MeterProvider) (*CacheMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(CacheMeterName)

	lookups, err := meter.Int64Counter(
		"portfolio_cache_lookups_total",
		metric.WithDescription("Cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	switches, err := meter.Int64Counter(
		"portfolio_language_switches_total",
		metric.WithDescription("Language switch requests by result"),
		metric.WithUnit("{switch}"),
	)
	if err != nil {
		return nil, err
	}

	return &CacheMetrics{lookups: lookups, switches: switches}, nil
}

// RecordLookup records a cache hit or miss for key
func (m *CacheMetrics) RecordLookup(ctx context.Context, strategy, key string, hit bool) {
	if m == nil || m.lookups == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("key", key),
		attribute.String("result", result),
	))
}

// RecordSwitch records the result of a language switch: applied, superseded or failed
func (m *CacheMetrics) RecordSwitch(ctx context.Context, result string) {
	if m == nil || m.switches == nil {
		return
	}
	m.switches.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
