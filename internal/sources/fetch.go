package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/trace"

	"github.com/kiuyha/portfolio-content/internal/otel"
	"github.com/kiuyha/portfolio-content/internal/schema"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

// fetch performs the single GET for one kind and resolves it to a validated value or
// the kind's default
func fetch[T any](ctx context.Context, a *adapter, s *schema.Schema[T], url string) T {
	kind := s.Kind()
	ctx, span := otel.StartSpan(ctx, a.tracer, fmt.Sprintf("%s.fetch %s", a.source, kind),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			otel.AttrSource.String(a.source),
			otel.AttrKind.String(string(kind)),
		),
	)
	defer span.End()

	start := time.Now()
	record := func(outcome string) {
		a.metrics.RecordFetch(ctx, a.source, string(kind), outcome, time.Since(start))
	}

	body, err := a.client.Get(ctx, url)
	if err != nil {
		terr := &TransportError{Source: a.source, Kind: kind, URL: url, Err: err}
		a.logger.Warnw("Provider request failed, using default",
			"source", a.source,
			"kind", string(kind),
			"url", url,
			"status", terr.StatusCode(),
			"error", err,
		)
		otel.RecordError(span, terr, "transport error")
		record(telemetry.OutcomeTransportError)
		markFallback(ctx, kind)
		return s.Default()
	}

	if envErr := providerError(body); envErr != nil {
		return shapeFailure(ctx, a, s, span, record, &schema.ShapeError{
			Kind: kind, Row: -1, Reason: "provider returned an error envelope", Err: envErr,
		})
	}

	res := schema.Validate(body, s)
	value, err := res.Unwrap()
	if err != nil {
		return shapeFailure(ctx, a, s, span, record, err)
	}

	for _, dropped := range res.Dropped() {
		row := -1
		var shapeErr *schema.ShapeError
		if errors.As(dropped, &shapeErr) {
			row = shapeErr.Row
		}
		a.logger.Warnw("Dropped invalid row",
			"source", a.source,
			"kind", string(kind),
			"row", row,
			"reason", dropped.Error(),
		)
	}
	a.metrics.RecordDroppedRows(ctx, string(kind), len(res.Dropped()))
	span.SetAttributes(otel.AttrDroppedRows.Int(len(res.Dropped())))
	record(telemetry.OutcomeOK)
	return value
}

func shapeFailure[T any](
	ctx context.Context,
	a *adapter,
	s *schema.Schema[T],
	span trace.Span,
	record func(string),
	err error,
) T {
	a.logger.Warnw("Provider payload failed validation, using default",
		"source", a.source,
		"kind", string(s.Kind()),
		"reason", err.Error(),
	)
	otel.RecordError(span, err, "shape error")
	record(telemetry.OutcomeShapeError)
	markFallback(ctx, s.Kind())
	return s.Default()
}

// providerError detects error envelopes some providers return with a 200 status,
// such as {"error": "..."} or {"status": "error", "message": "..."}
func providerError(body []byte) error {
	if !gjson.ValidBytes(body) {
		return nil
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil
	}
	if e := doc.Get("error"); e.Exists() && e.Type != gjson.Null && e.Type != gjson.False {
		return fmt.Errorf("provider error: %s", e.String())
	}
	if status := doc.Get("status"); status.Exists() && status.String() != "ok" {
		return fmt.Errorf("provider status %q: %s", status.String(), doc.Get("message").String())
	}
	return nil
}
