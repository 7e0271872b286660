// Package service provides the business logic for the game catalog API
package service

import (
	"context"
	"errors"
	"time"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/filtering"
	"github.com/stacklok/game-catalog-server/internal/status"
)

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")
	// ErrCatalogNotReady is returned when no catalog has been published yet
	ErrCatalogNotReady = errors.New("catalog not ready")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go CatalogService

// CatalogService defines the interface for catalog operations
type CatalogService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// QueryGames returns the games matching the selected facet values
	QueryGames(ctx context.Context, opts ...Option[QueryGamesOptions]) (*QueryResult, error)

	// GetGame returns a single game by id
	GetGame(ctx context.Context, opts ...Option[GetGameOptions]) (*catalog.GameRecord, error)

	// ListCategories returns every category of the catalog with its game count
	ListCategories(ctx context.Context) ([]catalog.FacetValue, error)

	// ListPublishers returns every publisher of the catalog with its game count
	ListPublishers(ctx context.Context) ([]catalog.FacetValue, error)

	// GetCatalogInfo returns metadata about the catalog currently being served
	GetCatalogInfo(ctx context.Context) (*CatalogInfo, error)
}

// SyncStatusProvider exposes the sync status of the served catalog
type SyncStatusProvider interface {
	// Status returns a copy of the current sync status
	Status() *status.SyncStatus
}

// QueryResult is the outcome of QueryGames
type QueryResult struct {
	filtering.Result

	// SnapshotID identifies the catalog generation the result was computed from
	SnapshotID string
}

// CatalogInfo describes the catalog currently being served
type CatalogInfo struct {
	Name        string
	Version     string
	LastUpdated time.Time
	Source      string
	SnapshotID  string
	TotalGames  int
	Categories  int
	Publishers  int
	SyncStatus  *status.SyncStatus
}
