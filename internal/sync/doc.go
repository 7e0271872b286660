// Package sync keeps the served catalog snapshot in step with its source.
//
// # Core Interfaces
//
//   - Manager: decides whether a sync is needed and performs it
//   - DataChangeDetector: detects changes in source data using hash comparison
//   - AutomaticSyncChecker: evaluates the configured sync interval
//
// A sync fetches the catalog document through a sources.CatalogHandler, builds
// an immutable catalog.Snapshot from it and publishes the snapshot to the
// catalog.Store. A failed sync publishes nothing, so the previous snapshot
// keeps serving.
//
// # Sync Reasons
//
// Manager.ShouldSync returns a Reason. Use Reason.ShouldSync() to check
// if sync is needed and Reason.String() to get the reason string.
//
// Sync reasons that indicate sync is NOT needed:
//   - ReasonAlreadyInProgress: Sync already running
//   - ReasonErrorCheckingSyncNeed: The sync interval could not be evaluated
//   - ReasonUpToDateWithPolicy: Interval elapsed, source hash unchanged
//   - ReasonUpToDateNoPolicy: Catalog loaded, no interval configured
//   - ReasonIntervalNotElapsed: Interval not yet elapsed since the last check
//
// Sync reasons that indicate sync IS needed:
//   - ReasonCatalogNotReady: Initial sync or recovery from failure
//   - ReasonSourceDataChanged: Source data hash changed
//   - ReasonErrorCheckingChanges: Error during change detection, sync anyway
//
// The sync/coordinator subpackage schedules these checks in the background.
package sync
