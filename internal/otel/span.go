// Package otel provides span helpers shared by the content pipeline.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used across pipeline spans
const (
	AttrSource      = attribute.Key("content.source")
	AttrKind        = attribute.Key("content.kind")
	AttrLanguage    = attribute.Key("content.language")
	AttrDroppedRows = attribute.Key("content.dropped_rows")
	AttrResultCount = attribute.Key("result.count")
)

// StartSpan starts a span on tracer, or returns the span already in ctx when tracer is nil
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records err on span and marks the span failed with description.
// Nil spans and nil errors are ignored.
func RecordError(span trace.Span, err error, description string) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, description)
	}
}
