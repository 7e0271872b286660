// Package inmemory provides an in-memory implementation of the CatalogService interface
package inmemory

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/filtering"
	"github.com/stacklok/game-catalog-server/internal/otel"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

// catalogSvc implements the CatalogService interface on top of a snapshot store
type catalogSvc struct {
	store  *catalog.Store
	engine filtering.Engine

	catalogName    string
	statusProvider service.SyncStatusProvider

	tracer  trace.Tracer
	metrics *telemetry.CatalogMetrics
}

var _ service.CatalogService = (*catalogSvc)(nil)

// Option is a functional option for configuring the catalogSvc
type Option func(*catalogSvc)

// WithEngine sets a custom filter engine
func WithEngine(engine filtering.Engine) Option {
	return func(s *catalogSvc) {
		s.engine = engine
	}
}

// WithCatalogName sets the name reported by GetCatalogInfo and used in telemetry
func WithCatalogName(name string) Option {
	return func(s *catalogSvc) {
		s.catalogName = name
	}
}

// WithStatusProvider sets the provider of the sync status reported by GetCatalogInfo
func WithStatusProvider(provider service.SyncStatusProvider) Option {
	return func(s *catalogSvc) {
		s.statusProvider = provider
	}
}

// WithTracer sets the tracer used to create spans for service operations
func WithTracer(tracer trace.Tracer) Option {
	return func(s *catalogSvc) {
		s.tracer = tracer
	}
}

// WithMetrics sets the catalog metrics recorder. A nil recorder disables metrics.
func WithMetrics(metrics *telemetry.CatalogMetrics) Option {
	return func(s *catalogSvc) {
		s.metrics = metrics
	}
}

// New creates a new catalog service reading snapshots from store.
func New(store *catalog.Store, opts ...Option) (service.CatalogService, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	s := &catalogSvc{
		store:       store,
		engine:      filtering.NewDefaultEngine(),
		catalogName: "default",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CheckReadiness implements CatalogService.CheckReadiness
func (s *catalogSvc) CheckReadiness(_ context.Context) error {
	if !s.store.Published() {
		return service.ErrCatalogNotReady
	}
	return nil
}

// QueryGames implements CatalogService.QueryGames
func (s *catalogSvc) QueryGames(
	ctx context.Context,
	opts ...service.Option[service.QueryGamesOptions],
) (*service.QueryResult, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "catalogSvc.QueryGames")
	defer span.End()

	options := &service.QueryGamesOptions{}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			otel.RecordError(span, err)
			return nil, err
		}
	}

	// One snapshot per request: a concurrent publish never mixes generations
	snap := s.store.Current()

	constraint, satisfiable := resolveConstraint(snap, options)
	span.SetAttributes(otel.AttrSnapshotID.String(snap.ID()))
	span.SetAttributes(otel.FilterAttributes(constraint.Category, constraint.Publisher)...)

	result := s.engine.Query(snap, constraint)
	if !satisfiable {
		slog.Debug("Facet id selection cannot be satisfied, returning no games",
			"categoryId", options.CategoryID,
			"publisherId", options.PublisherID)
		result.Records = []catalog.GameRecord{}
	}

	span.SetAttributes(otel.AttrResultCount.Int(len(result.Records)))
	s.metrics.RecordQuery(ctx, s.catalogName, constraint.Len(), len(result.Records))

	return &service.QueryResult{
		Result:     result,
		SnapshotID: snap.ID(),
	}, nil
}

// resolveConstraint turns label and id selections into a label constraint.
// It reports false when an id is unknown or disagrees with the label selected
// for the same facet; such a selection matches no game.
func resolveConstraint(snap *catalog.Snapshot, options *service.QueryGamesOptions) (filtering.Constraint, bool) {
	category, categoryOK := resolveFacet(snap, catalog.FacetCategory, options.Category, options.CategoryID)
	publisher, publisherOK := resolveFacet(snap, catalog.FacetPublisher, options.Publisher, options.PublisherID)
	return filtering.Constraint{Category: category, Publisher: publisher}, categoryOK && publisherOK
}

func resolveFacet(snap *catalog.Snapshot, f catalog.Facet, label *string, id *int) (*string, bool) {
	if id == nil {
		return label, true
	}
	value, found := snap.FacetByID(f, *id)
	if !found {
		return label, false
	}
	if label != nil && *label != value.Name {
		return label, false
	}
	name := value.Name
	return &name, true
}

// GetGame implements CatalogService.GetGame
func (s *catalogSvc) GetGame(
	ctx context.Context,
	opts ...service.Option[service.GetGameOptions],
) (*catalog.GameRecord, error) {
	_, span := otel.StartSpan(ctx, s.tracer, "catalogSvc.GetGame")
	defer span.End()

	options := &service.GetGameOptions{}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			otel.RecordError(span, err)
			return nil, err
		}
	}
	span.SetAttributes(otel.AttrGameID.Int(options.ID))

	record, ok := s.store.Current().Record(options.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", service.ErrGameNotFound, options.ID)
	}
	return &record, nil
}

// ListCategories implements CatalogService.ListCategories
func (s *catalogSvc) ListCategories(_ context.Context) ([]catalog.FacetValue, error) {
	return s.store.Current().Facets(catalog.FacetCategory), nil
}

// ListPublishers implements CatalogService.ListPublishers
func (s *catalogSvc) ListPublishers(_ context.Context) ([]catalog.FacetValue, error) {
	return s.store.Current().Facets(catalog.FacetPublisher), nil
}

// GetCatalogInfo implements CatalogService.GetCatalogInfo
func (s *catalogSvc) GetCatalogInfo(_ context.Context) (*service.CatalogInfo, error) {
	snap := s.store.Current()

	info := &service.CatalogInfo{
		Name:        s.catalogName,
		Version:     snap.Version(),
		LastUpdated: snap.LastUpdated(),
		Source:      snap.Source(),
		SnapshotID:  snap.ID(),
		TotalGames:  snap.Len(),
		Categories:  len(snap.DistinctCategories()),
		Publishers:  len(snap.DistinctPublishers()),
	}
	if s.statusProvider != nil {
		info.SyncStatus = s.statusProvider.Status()
	}
	return info, nil
}
