package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// CatalogMetricsMeterName is the name used for the catalog metrics meter
	CatalogMetricsMeterName = "github.com/stacklok/game-catalog-server/catalog"

	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/stacklok/game-catalog-server/sync"
)

// CatalogMetrics holds the OpenTelemetry instruments for the served catalog and its queries
type CatalogMetrics struct {
	gamesTotal       metric.Int64Gauge
	facetValuesTotal metric.Int64Gauge
	queriesTotal     metric.Int64Counter
	queryResults     metric.Int64Histogram
}

// NewCatalogMetrics creates a new CatalogMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewCatalogMetrics(provider metric.MeterProvider) (*CatalogMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(CatalogMetricsMeterName)

	gamesTotal, err := meter.Int64Gauge(
		"catalog_games_total",
		metric.WithDescription("Number of games in the published catalog snapshot"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, err
	}

	facetValuesTotal, err := meter.Int64Gauge(
		"catalog_facet_values_total",
		metric.WithDescription("Number of distinct values per facet in the published catalog snapshot"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, err
	}

	queriesTotal, err := meter.Int64Counter(
		"catalog_queries_total",
		metric.WithDescription("Total number of game queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	queryResults, err := meter.Int64Histogram(
		"catalog_query_results",
		metric.WithDescription("Number of games returned per query"),
		metric.WithUnit("{game}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 1000),
	)
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		gamesTotal:       gamesTotal,
		facetValuesTotal: facetValuesTotal,
		queriesTotal:     queriesTotal,
		queryResults:     queryResults,
	}, nil
}

// RecordGamesTotal records the number of games in the published snapshot of a catalog
func (m *CatalogMetrics) RecordGamesTotal(ctx context.Context, catalogName string, count int64) {
	if m == nil || m.gamesTotal == nil {
		return
	}
	m.gamesTotal.Record(ctx, count, metric.WithAttributes(attribute.String("catalog", catalogName)))
}

// RecordFacetValues records the number of distinct values of one facet
func (m *CatalogMetrics) RecordFacetValues(ctx context.Context, catalogName, facet string, count int64) {
	if m == nil || m.facetValuesTotal == nil {
		return
	}
	m.facetValuesTotal.Record(ctx, count, metric.WithAttributes(
		attribute.String("catalog", catalogName),
		attribute.String("facet", facet),
	))
}

// RecordQuery records one game query with the number of constrained facets and matched games
func (m *CatalogMetrics) RecordQuery(ctx context.Context, catalogName string, constrainedFacets, results int) {
	if m == nil || m.queriesTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("catalog", catalogName),
		attribute.Int("constrained_facets", constrainedFacets),
	)
	m.queriesTotal.Add(ctx, 1, attrs)
	m.queryResults.Record(ctx, int64(results), attrs)
}

// SyncMetrics holds the OpenTelemetry instruments for sync operation metrics
type SyncMetrics struct {
	syncDuration metric.Float64Histogram
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"catalog_sync_duration_seconds",
		metric.WithDescription("Duration of catalog sync operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration: syncDuration,
	}, nil
}

// RecordSyncDuration records the duration of a sync operation for a catalog
func (m *SyncMetrics) RecordSyncDuration(ctx context.Context, catalogName string, duration time.Duration, success bool) {
	if m == nil || m.syncDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("catalog", catalogName),
		attribute.Bool("success", success),
	}

	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
