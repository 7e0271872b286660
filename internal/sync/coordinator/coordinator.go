package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/status"
	pkgsync "github.com/stacklok/game-catalog-server/internal/sync"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

const (
	// basePollingInterval is the base interval at which the coordinator checks whether a sync is needed
	basePollingInterval = 2 * time.Minute
	// pollingJitter is the maximum random offset (±30 seconds) applied to the polling interval
	pollingJitter = 30 * time.Second
)

// Coordinator manages background synchronization scheduling and execution for the catalog
type Coordinator interface {
	// Start begins background sync coordination.
	// Blocks until context is cancelled or an unrecoverable error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the coordinator
	Stop() error
}

// defaultCoordinator is the default implementation of Coordinator
type defaultCoordinator struct {
	manager pkgsync.Manager
	config  *config.Config
	tracker *status.Tracker

	// persistence is optional; without it the status only lives in the tracker
	persistence status.StatusPersistence

	// Lifecycle management
	cancelFunc context.CancelFunc
	started    chan struct{}
	done       chan struct{}

	syncMetrics *telemetry.SyncMetrics

	pollingInterval func() time.Duration
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *defaultCoordinator) {
		c.syncMetrics = metrics
	}
}

// WithStatusPersistence persists the sync status after every phase transition
func WithStatusPersistence(persistence status.StatusPersistence) Option {
	return func(c *defaultCoordinator) {
		c.persistence = persistence
	}
}

// withPollingInterval overrides the polling interval calculation
func withPollingInterval(fn func() time.Duration) Option {
	return func(c *defaultCoordinator) {
		c.pollingInterval = fn
	}
}

// New creates a new coordinator with injected dependencies
func New(
	manager pkgsync.Manager,
	tracker *status.Tracker,
	cfg *config.Config,
	opts ...Option,
) Coordinator {
	c := &defaultCoordinator{
		manager: manager,
		tracker: tracker,
		config:  cfg,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.pollingInterval = func() time.Duration {
		return calculatePollingInterval(cfg.GetSyncInterval())
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// calculatePollingInterval returns the base polling interval with a random jitter applied.
// A configured sync interval shorter than the base interval is used as is.
func calculatePollingInterval(syncInterval time.Duration) time.Duration {
	if syncInterval > 0 && syncInterval < basePollingInterval-pollingJitter {
		return syncInterval
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for polling jitter
	jitterOffset := time.Duration(rand.Int64N(int64(2*pollingJitter))) - pollingJitter
	return basePollingInterval + jitterOffset
}

// Start begins background sync coordination
func (c *defaultCoordinator) Start(ctx context.Context) error {
	catalogName := c.config.GetCatalogName()
	slog.Info("Starting background sync coordinator",
		"catalog", catalogName,
		"source_type", c.config.Source.GetType())

	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	close(c.started)
	defer func() {
		close(c.done)
		slog.Info("Background sync coordinator shutting down")
	}()

	if err := c.loadStatus(coordCtx); err != nil {
		return fmt.Errorf("failed to initialize catalog sync status: %w", err)
	}

	pollingInterval := c.pollingInterval()
	slog.Info("Configured coordinator sync interval",
		"base_interval", basePollingInterval,
		"sync_interval", c.config.GetSyncInterval(),
		"actual_interval", pollingInterval)

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()

	// Perform initial sync check
	c.checkSync(coordCtx)

	for {
		select {
		case <-ticker.C:
			c.checkSync(coordCtx)

			// Recalculate interval with new jitter for next iteration
			ticker.Reset(c.pollingInterval())
		case <-coordCtx.Done():
			slog.Info("Sync coordinator stopping")
			return nil
		}
	}
}

// Stop gracefully stops the coordinator
func (c *defaultCoordinator) Stop() error {
	select {
	case <-c.started:
	default:
		return nil
	}
	slog.Info("Stopping sync coordinator")
	c.cancelFunc()
	<-c.done
	return nil
}

// loadStatus seeds the tracker from persisted status, if any.
// A persisted Syncing phase belongs to an interrupted run and is reported as Failed.
func (c *defaultCoordinator) loadStatus(ctx context.Context) error {
	schedule := ""
	if c.config.SyncPolicy != nil {
		schedule = c.config.SyncPolicy.Interval
	}

	var persisted *status.SyncStatus
	if c.persistence != nil {
		loaded, err := c.persistence.LoadStatus(ctx, c.config.GetCatalogName())
		if err != nil {
			return err
		}
		persisted = loaded
	}

	c.tracker.Update(func(s *status.SyncStatus) {
		if persisted != nil {
			*s = *persisted.Clone()
		}
		if s.Phase == status.SyncPhaseSyncing {
			s.Phase = status.SyncPhaseFailed
			s.Message = "Previous sync was interrupted"
		}
		s.SyncSchedule = schedule
	})
	return nil
}

// checkSync asks the manager whether a sync is needed and performs it if so
func (c *defaultCoordinator) checkSync(ctx context.Context) {
	reason := c.manager.ShouldSync(ctx, c.config, c.tracker.Status())
	slog.Debug("Sync check",
		"catalog", c.config.GetCatalogName(),
		"shouldSync", reason.ShouldSync(),
		"reason", reason.String())

	if reason.ShouldSync() {
		c.performSync(ctx)
		return
	}
	if reason == pkgsync.ReasonUpToDateWithPolicy {
		c.updateStatusForSkippedSync(ctx, reason)
	}
}

// performSync executes the sync operation and records its outcome
func (c *defaultCoordinator) performSync(ctx context.Context) {
	catalogName := c.config.GetCatalogName()
	startTime := time.Now()

	// Set a default error here in case the sync is aborted by an unexpected failure
	final := &status.SyncStatus{
		Phase:   status.SyncPhaseFailed,
		Message: fmt.Sprintf("Unexpected failure while syncing catalog %s", catalogName),
	}
	defer func() {
		c.persist(ctx, c.tracker.Update(func(s *status.SyncStatus) {
			s.Phase = final.Phase
			s.Message = final.Message
			if final.Phase == status.SyncPhaseComplete {
				s.LastSyncTime = final.LastSyncTime
				s.LastSyncHash = final.LastSyncHash
				s.GameCount = final.GameCount
				s.SnapshotID = final.SnapshotID
				s.AttemptCount = 0
			}
		}))
	}()

	syncing := c.tracker.Update(func(s *status.SyncStatus) {
		now := time.Now()
		s.Phase = status.SyncPhaseSyncing
		s.Message = "Sync in progress"
		s.LastAttempt = &now
		s.AttemptCount++
	})
	c.persist(ctx, syncing)

	slog.Info("Starting sync operation", "catalog", catalogName, "attempt", syncing.AttemptCount)

	result, syncErr := c.manager.PerformSync(ctx, c.config)
	syncDuration := time.Since(startTime)

	if syncErr != nil {
		final.Message = syncErr.Message
		slog.Error("Sync failed",
			"catalog", catalogName,
			"stage", syncErr.Stage,
			"error", syncErr.Message)
		c.syncMetrics.RecordSyncDuration(ctx, catalogName, syncDuration, false)
		return
	}

	now := time.Now()
	final.Phase = status.SyncPhaseComplete
	final.Message = "Sync completed successfully"
	final.LastSyncTime = &now
	final.LastSyncHash = result.Hash
	final.GameCount = result.GameCount
	final.SnapshotID = result.SnapshotID

	hashPreview := result.Hash
	if len(hashPreview) > 8 {
		hashPreview = hashPreview[:8]
	}
	slog.Info("Sync completed successfully",
		"catalog", catalogName,
		"game_count", result.GameCount,
		"snapshot_id", result.SnapshotID,
		"hash", hashPreview,
		"duration", syncDuration)

	c.syncMetrics.RecordSyncDuration(ctx, catalogName, syncDuration, true)
}

// updateStatusForSkippedSync records a check that found the source unchanged,
// which restarts the sync interval
func (c *defaultCoordinator) updateStatusForSkippedSync(ctx context.Context, reason pkgsync.Reason) {
	c.persist(ctx, c.tracker.Update(func(s *status.SyncStatus) {
		now := time.Now()
		s.LastAttempt = &now
		s.Message = fmt.Sprintf("Sync skipped: %s", reason)
	}))
}

func (c *defaultCoordinator) persist(ctx context.Context, syncStatus *status.SyncStatus) {
	if c.persistence == nil {
		return
	}
	// Persist even when ctx is being cancelled, so the final phase survives shutdown
	if err := c.persistence.SaveStatus(context.WithoutCancel(ctx), c.config.GetCatalogName(), syncStatus); err != nil {
		slog.Warn("Failed to persist sync status",
			"catalog", c.config.GetCatalogName(),
			"phase", syncStatus.Phase,
			"error", err)
	}
}
