// Package otel provides OpenTelemetry instrumentation utilities for the catalog server.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by the spans of the catalog service
const (
	AttrCatalogName       = attribute.Key("catalog.name")
	AttrSnapshotID        = attribute.Key("catalog.snapshot_id")
	AttrSourceType        = attribute.Key("catalog.source_type")
	AttrFilterCategory    = attribute.Key("filter.category")
	AttrFilterPublisher   = attribute.Key("filter.publisher")
	AttrFilterCategoryID  = attribute.Key("filter.category_id")
	AttrFilterPublisherID = attribute.Key("filter.publisher_id")
	AttrFilterFacets      = attribute.Key("filter.facets")
	AttrGameID            = attribute.Key("game.id")
	AttrResultCount       = attribute.Key("result.count")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise returns a no-op span.
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

// FilterAttributes returns the span attributes describing the selected facet values.
// Absent selections are omitted.
func FilterAttributes(category, publisher *string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if category != nil {
		attrs = append(attrs, AttrFilterCategory.String(*category))
	}
	if publisher != nil {
		attrs = append(attrs, AttrFilterPublisher.String(*publisher))
	}
	return attrs
}

// RecordError records an error on a span and sets the span status to error.
// It safely handles nil spans and nil errors.
// The status description stays generic so source details (paths, DSNs) only
// appear in the recorded exception event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
