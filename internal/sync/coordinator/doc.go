// Package coordinator runs catalog synchronization in the background.
//
// The coordinator sits on top of sync.Manager and handles:
//
//   - Initial sync on startup
//   - Periodic sync checks using time.Ticker with jitter
//   - Sync status tracking in a status.Tracker, optionally persisted
//   - Graceful shutdown
//
// # Usage Example
//
//	manager := sync.NewDefaultSyncManager(sources.NewCatalogHandlerFactory(), store)
//	coord := coordinator.New(manager, status.NewTracker(nil), cfg)
//
//	go coord.Start(ctx)
//	defer coord.Stop()
//
// # Error Handling
//
// Failed syncs are logged and recorded as phase Failed. The coordinator keeps
// running and retries on the next tick. Status persistence errors are logged
// but never stop the sync loop.
package coordinator
