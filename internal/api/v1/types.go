package v1

import (
	"time"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/status"
)

// GameResponse is a game as returned by the catalog API
type GameResponse struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StarRating  *float64          `json:"starRating"`
	Category    *FacetRefResponse `json:"category"`
	Publisher   *FacetRefResponse `json:"publisher"`
}

// FacetRefResponse references the category or publisher of a game
type FacetRefResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FacetValueResponse is one entry of the category or publisher listing
type FacetValueResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameCount   int    `json:"gameCount"`
}

// FacetsResponse carries the selectable values of every facet, taken from one snapshot
type FacetsResponse struct {
	SnapshotID string   `json:"snapshotId"`
	Categories []string `json:"categories"`
	Publishers []string `json:"publishers"`
}

// CatalogInfoResponse describes the catalog currently being served
type CatalogInfoResponse struct {
	Name        string             `json:"name"`
	Version     string             `json:"version,omitempty"`
	LastUpdated string             `json:"lastUpdated,omitempty"`
	Source      string             `json:"source"`
	SnapshotID  string             `json:"snapshotId"`
	TotalGames  int                `json:"totalGames"`
	Categories  int                `json:"categories"`
	Publishers  int                `json:"publishers"`
	SyncStatus  *status.SyncStatus `json:"syncStatus,omitempty"`
}

// StatusResponse is the body of the health and readiness endpoints
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(g *catalog.GameRecord) GameResponse {
	resp := GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		StarRating:  g.StarRating,
	}
	if g.Category != "" {
		resp.Category = &FacetRefResponse{ID: g.CategoryID, Name: g.Category}
	}
	if g.Publisher != "" {
		resp.Publisher = &FacetRefResponse{ID: g.PublisherID, Name: g.Publisher}
	}
	return resp
}

func newGameListResponse(records []catalog.GameRecord) []GameResponse {
	games := make([]GameResponse, len(records))
	for i := range records {
		games[i] = newGameResponse(&records[i])
	}
	return games
}

func newFacetValueListResponse(values []catalog.FacetValue) []FacetValueResponse {
	resp := make([]FacetValueResponse, len(values))
	for i, v := range values {
		resp[i] = FacetValueResponse{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			GameCount:   v.GameCount,
		}
	}
	return resp
}

func newCatalogInfoResponse(info *service.CatalogInfo) CatalogInfoResponse {
	resp := CatalogInfoResponse{
		Name:       info.Name,
		Version:    info.Version,
		Source:     info.Source,
		SnapshotID: info.SnapshotID,
		TotalGames: info.TotalGames,
		Categories: info.Categories,
		Publishers: info.Publishers,
		SyncStatus: info.SyncStatus,
	}
	if !info.LastUpdated.IsZero() {
		resp.LastUpdated = info.LastUpdated.UTC().Format(time.RFC3339)
	}
	return resp
}

// nonNil keeps empty listings serialized as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
