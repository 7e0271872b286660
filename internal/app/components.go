package app

import (
	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/status"
	"github.com/stacklok/game-catalog-server/internal/sync/coordinator"
)

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// SyncCoordinator manages background synchronization
	SyncCoordinator coordinator.Coordinator

	// CatalogService answers catalog queries against the published snapshot
	CatalogService service.CatalogService

	// Store holds the snapshot currently being served
	Store *catalog.Store

	// StatusTracker holds the sync status shared by the coordinator and the service
	StatusTracker *status.Tracker
}
