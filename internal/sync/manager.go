package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/sources"
	"github.com/stacklok/game-catalog-server/internal/status"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
	"github.com/stacklok/game-catalog-server/internal/versions"
)

// Result contains the result of a successful sync operation
type Result struct {
	Hash       string
	GameCount  int
	SnapshotID string
	Source     string
}

// Reason encodes whether a sync is needed and why
type Reason int

const (
	// ReasonAlreadyInProgress means a sync is already running
	ReasonAlreadyInProgress Reason = iota
	// ReasonErrorCheckingSyncNeed means the sync policy could not be evaluated
	ReasonErrorCheckingSyncNeed
	// ReasonUpToDateWithPolicy means the interval elapsed but the source did not change
	ReasonUpToDateWithPolicy
	// ReasonUpToDateNoPolicy means the catalog is current and no interval is configured
	ReasonUpToDateNoPolicy
	// ReasonIntervalNotElapsed means the sync interval has not elapsed since the last check
	ReasonIntervalNotElapsed
	// ReasonCatalogNotReady means no snapshot has been published yet or the last sync failed
	ReasonCatalogNotReady
	// ReasonSourceDataChanged means the source hash differs from the last synced hash
	ReasonSourceDataChanged
	// ReasonErrorCheckingChanges means change detection failed, so a sync is attempted anyway
	ReasonErrorCheckingChanges
)

var reasonNames = map[Reason]string{
	ReasonAlreadyInProgress:     "sync-already-in-progress",
	ReasonErrorCheckingSyncNeed: "error-checking-sync-need",
	ReasonUpToDateWithPolicy:    "up-to-date-with-policy",
	ReasonUpToDateNoPolicy:      "up-to-date-no-policy",
	ReasonIntervalNotElapsed:    "interval-not-elapsed",
	ReasonCatalogNotReady:       "catalog-not-ready",
	ReasonSourceDataChanged:     "source-data-changed",
	ReasonErrorCheckingChanges:  "error-checking-data-changes",
}

// String returns the reason as a kebab-case string
func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown-reason-%d", int(r))
}

// ShouldSync reports whether the reason calls for a sync
func (r Reason) ShouldSync() bool {
	switch r {
	case ReasonCatalogNotReady, ReasonSourceDataChanged, ReasonErrorCheckingChanges:
		return true
	default:
		return false
	}
}

// Stage names the step of a sync operation that failed
type Stage string

const (
	// StageHandlerCreation is the creation of the source handler
	StageHandlerCreation Stage = "HandlerCreation"
	// StageValidation is the validation of the source configuration
	StageValidation Stage = "Validation"
	// StageFetch is the retrieval and decoding of the catalog document
	StageFetch Stage = "Fetch"
	// StagePublish is the snapshot construction and publication
	StagePublish Stage = "Publish"
)

// Error is a sync failure annotated with the stage it happened in
type Error struct {
	Err     error
	Message string
	Stage   Stage
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Manager manages synchronization of the served catalog with its source
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks github.com/stacklok/game-catalog-server/internal/sync Manager
type Manager interface {
	// ShouldSync determines if a sync operation is needed
	ShouldSync(ctx context.Context, cfg *config.Config, syncStatus *status.SyncStatus) Reason

	// PerformSync fetches the catalog from its source and publishes a new snapshot
	PerformSync(ctx context.Context, cfg *config.Config) (*Result, *Error)
}

// DataChangeDetector detects changes in source data
type DataChangeDetector interface {
	// IsDataChanged checks if source data has changed by comparing hashes
	IsDataChanged(ctx context.Context, cfg *config.Config, syncStatus *status.SyncStatus) (bool, error)
}

// AutomaticSyncChecker handles automatic sync timing logic
type AutomaticSyncChecker interface {
	// IsIntervalSyncNeeded checks if sync is needed based on the configured interval.
	// Returns (syncNeeded, nextSyncTime, error).
	IsIntervalSyncNeeded(cfg *config.Config, syncStatus *status.SyncStatus) (bool, time.Time, error)
}

// defaultSyncManager is the default implementation of Manager
type defaultSyncManager struct {
	handlerFactory       sources.CatalogHandlerFactory
	store                *catalog.Store
	dataChangeDetector   DataChangeDetector
	automaticSyncChecker AutomaticSyncChecker
	catalogMetrics       *telemetry.CatalogMetrics
}

// ManagerOption configures the sync manager
type ManagerOption func(*defaultSyncManager)

// WithCatalogMetrics sets the metrics recorded whenever a snapshot is published
func WithCatalogMetrics(metrics *telemetry.CatalogMetrics) ManagerOption {
	return func(m *defaultSyncManager) {
		m.catalogMetrics = metrics
	}
}

// NewDefaultSyncManager creates a new sync manager publishing into store
func NewDefaultSyncManager(
	handlerFactory sources.CatalogHandlerFactory, store *catalog.Store, opts ...ManagerOption,
) Manager {
	m := &defaultSyncManager{
		handlerFactory:       handlerFactory,
		store:                store,
		dataChangeDetector:   &DefaultDataChangeDetector{handlerFactory: handlerFactory},
		automaticSyncChecker: &DefaultAutomaticSyncChecker{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ShouldSync determines if a sync operation is needed
func (s *defaultSyncManager) ShouldSync(
	ctx context.Context, cfg *config.Config, syncStatus *status.SyncStatus,
) Reason {
	if syncStatus == nil {
		syncStatus = &status.SyncStatus{}
	}

	if syncStatus.Phase == status.SyncPhaseSyncing {
		return ReasonAlreadyInProgress
	}

	// A persisted Complete status from a previous run says nothing about this process' store
	if !s.store.Published() || syncStatus.Phase != status.SyncPhaseComplete {
		slog.Debug("Catalog not ready, sync needed",
			"phase", syncStatus.Phase, "published", s.store.Published())
		return ReasonCatalogNotReady
	}

	intervalElapsed, nextSyncTime, err := s.automaticSyncChecker.IsIntervalSyncNeeded(cfg, syncStatus)
	if err != nil {
		slog.Error("Failed to determine if interval has elapsed", "error", err)
		return ReasonErrorCheckingSyncNeed
	}
	if !intervalElapsed {
		if nextSyncTime.IsZero() {
			return ReasonUpToDateNoPolicy
		}
		return ReasonIntervalNotElapsed
	}

	dataChanged, err := s.dataChangeDetector.IsDataChanged(ctx, cfg, syncStatus)
	if err != nil {
		slog.Error("Failed to determine if data has changed", "error", err)
		return ReasonErrorCheckingChanges
	}
	slog.Debug("Checked data changes", "dataChanged", dataChanged)
	if dataChanged {
		return ReasonSourceDataChanged
	}
	return ReasonUpToDateWithPolicy
}

// PerformSync fetches the catalog document, builds a snapshot and publishes it.
// On failure the previously published snapshot keeps serving.
func (s *defaultSyncManager) PerformSync(ctx context.Context, cfg *config.Config) (*Result, *Error) {
	fetchResult, syncErr := s.fetchCatalogData(ctx, cfg)
	if syncErr != nil {
		return nil, syncErr
	}

	snap, err := fetchResult.Catalog.Snapshot(catalog.WithSource(fetchResult.Source))
	if err != nil {
		slog.Error("Failed to build catalog snapshot", "error", err)
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Snapshot construction failed: %v", err),
			Stage:   StagePublish,
		}
	}

	if served := s.store.Current(); s.store.Published() && versions.IsDowngrade(served.Version(), snap.Version()) {
		slog.Warn("Publishing a catalog version older than the one served",
			"served_version", served.Version(),
			"fetched_version", snap.Version())
	}

	s.store.Publish(snap)
	s.recordSnapshotMetrics(ctx, cfg.GetCatalogName(), snap)

	slog.Info("Catalog snapshot published",
		"catalog", cfg.GetCatalogName(),
		"snapshot_id", snap.ID(),
		"games", snap.Len(),
		"categories", len(snap.DistinctCategories()),
		"publishers", len(snap.DistinctPublishers()))

	return &Result{
		Hash:       fetchResult.Hash,
		GameCount:  snap.Len(),
		SnapshotID: snap.ID(),
		Source:     fetchResult.Source,
	}, nil
}

// fetchCatalogData handles handler creation, validation and fetch
func (s *defaultSyncManager) fetchCatalogData(
	ctx context.Context, cfg *config.Config,
) (*sources.FetchResult, *Error) {
	handler, err := s.handlerFactory.CreateHandler(cfg.Source.GetType())
	if err != nil {
		slog.Error("Failed to create catalog handler", "error", err)
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Failed to create catalog handler: %v", err),
			Stage:   StageHandlerCreation,
		}
	}

	if err := handler.Validate(&cfg.Source); err != nil {
		slog.Error("Source validation failed", "error", err)
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Source validation failed: %v", err),
			Stage:   StageValidation,
		}
	}

	fetchResult, err := handler.FetchCatalog(ctx, &cfg.Source)
	if err != nil {
		slog.Error("Fetch operation failed", "error", err)
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Fetch failed: %v", err),
			Stage:   StageFetch,
		}
	}
	if fetchResult == nil || fetchResult.Catalog == nil {
		err := fmt.Errorf("source %s returned no catalog", cfg.Source.GetType())
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Fetch failed: %v", err),
			Stage:   StageFetch,
		}
	}

	slog.Info("Catalog data fetched successfully from source",
		"gameCount", fetchResult.GameCount,
		"format", fetchResult.Format,
		"source", fetchResult.Source,
		"hash", fetchResult.Hash)

	return fetchResult, nil
}

func (s *defaultSyncManager) recordSnapshotMetrics(ctx context.Context, catalogName string, snap *catalog.Snapshot) {
	s.catalogMetrics.RecordGamesTotal(ctx, catalogName, int64(snap.Len()))
	for _, f := range catalog.Facets {
		s.catalogMetrics.RecordFacetValues(ctx, catalogName, f.String(), int64(len(snap.Distinct(f))))
	}
}
