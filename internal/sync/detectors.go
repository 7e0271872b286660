package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/sources"
	"github.com/stacklok/game-catalog-server/internal/status"
)

// DefaultDataChangeDetector implements DataChangeDetector
type DefaultDataChangeDetector struct {
	handlerFactory sources.CatalogHandlerFactory
}

// IsDataChanged checks if source data has changed by comparing hashes
func (d *DefaultDataChangeDetector) IsDataChanged(
	ctx context.Context, cfg *config.Config, syncStatus *status.SyncStatus,
) (bool, error) {
	var lastSyncHash string
	if syncStatus != nil {
		lastSyncHash = syncStatus.LastSyncHash
	}

	// If we don't have a last sync hash, consider data changed
	if lastSyncHash == "" {
		return true, nil
	}

	handler, err := d.handlerFactory.CreateHandler(cfg.Source.GetType())
	if err != nil {
		return true, err
	}

	currentHash, err := handler.CurrentHash(ctx, &cfg.Source)
	if err != nil {
		return true, err
	}

	// Compare hashes - data changed if different
	return currentHash != lastSyncHash, nil
}

// DefaultAutomaticSyncChecker implements AutomaticSyncChecker
type DefaultAutomaticSyncChecker struct{}

// IsIntervalSyncNeeded checks if sync is needed based on time interval
// Returns: (syncNeeded, nextSyncTime, error)
// nextSyncTime is the time the next sync should occur, or zero time if no policy is configured
func (*DefaultAutomaticSyncChecker) IsIntervalSyncNeeded(
	cfg *config.Config, syncStatus *status.SyncStatus,
) (bool, time.Time, error) {
	if cfg.SyncPolicy == nil || cfg.SyncPolicy.Interval == "" {
		return false, time.Time{}, nil
	}

	interval, err := time.ParseDuration(cfg.SyncPolicy.Interval)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("invalid sync interval %q: %w", cfg.SyncPolicy.Interval, err)
	}

	now := time.Now()

	var lastSyncTime *time.Time
	if syncStatus != nil {
		lastSyncTime = syncStatus.LastAttempt
	}

	// If we don't have a last sync time, sync is needed
	if lastSyncTime == nil {
		return true, now.Add(interval), nil
	}

	// Calculate when next sync should happen based on last sync
	nextSyncTime := lastSyncTime.Add(interval)

	// Check if it's time for the next sync
	syncNeeded := now.After(nextSyncTime) || now.Equal(nextSyncTime)

	if syncNeeded {
		// If sync is needed now, calculate when the next one after this should be
		return true, now.Add(interval), nil
	}

	// Sync not needed yet, return the originally calculated next sync time
	return false, nextSyncTime, nil
}
