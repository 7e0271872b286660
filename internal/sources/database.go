package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/db"
)

// databaseCatalogHandler reads the catalog from the games, categories and publishers tables
type databaseCatalogHandler struct{}

var _ CatalogHandler = (*databaseCatalogHandler)(nil)

// NewDatabaseCatalogHandler creates a new database catalog handler
func NewDatabaseCatalogHandler() CatalogHandler {
	return &databaseCatalogHandler{}
}

// Validate validates the database source configuration
func (*databaseCatalogHandler) Validate(source *config.SourceConfig) error {
	if source == nil {
		return fmt.Errorf("source configuration cannot be nil")
	}

	if source.Database == nil {
		return fmt.Errorf("database configuration is required")
	}

	if _, err := db.DriverName(source.Database.GetDriver()); err != nil {
		return err
	}

	if source.Database.GetDriver() == config.DatabaseDriverSQLite && source.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	return nil
}

// FetchCatalog reads every game with its category and publisher
func (h *databaseCatalogHandler) FetchCatalog(ctx context.Context, source *config.SourceConfig) (*FetchResult, error) {
	doc, data, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return nil, err
	}

	origin := config.SourceTypeDatabase + ":" + source.Database.GetDriver()
	return NewFetchResult(doc, hashData(data), source.Database.GetDriver(), origin), nil
}

// CurrentHash returns the hash of the catalog currently stored in the database
func (h *databaseCatalogHandler) CurrentHash(ctx context.Context, source *config.SourceConfig) (string, error) {
	_, data, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return "", err
	}
	return hashData(data), nil
}

// fetchCatalogData reads the tables and returns the document and its canonical JSON encoding
func (h *databaseCatalogHandler) fetchCatalogData(ctx context.Context, source *config.SourceConfig) (*Document, []byte, error) {
	if err := h.Validate(source); err != nil {
		return nil, nil, fmt.Errorf("source validation failed: %w", err)
	}

	startTime := time.Now()
	conn, err := db.NewConnection(ctx, source.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("Failed to close database connection", "error", closeErr)
		}
	}()

	doc, err := readDocument(ctx, conn.Queries)
	if err != nil {
		return nil, nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	slog.Info("Read catalog from database",
		"driver", conn.Driver(),
		"games", len(doc.Games),
		"duration", time.Since(startTime).String())

	return doc, data, nil
}

func readDocument(ctx context.Context, q *db.Queries) (*Document, error) {
	categories, err := q.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	publishers, err := q.ListPublishers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := q.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Categories: facetEntries(categories),
		Publishers: facetEntries(publishers),
		Games:      make([]GameEntry, 0, len(games)),
	}

	for _, row := range games {
		game := GameEntry{
			ID:          int(row.ID),
			Title:       row.Title,
			Description: row.Description.String,
			Category:    facetRef(row.CategoryID.Valid, row.CategoryID.Int64, row.CategoryName.String),
			Publisher:   facetRef(row.PublisherID.Valid, row.PublisherID.Int64, row.PublisherName.String),
		}
		if row.StarRating.Valid {
			rating := row.StarRating.Float64
			game.StarRating = &rating
		}
		doc.Games = append(doc.Games, game)
	}

	return doc, nil
}

func facetEntries(rows []db.FacetRow) []FacetEntry {
	entries := make([]FacetEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, FacetEntry{
			ID:          int(row.ID),
			Name:        row.Name,
			Description: row.Description.String,
		})
	}
	return entries
}

// facetRef builds a reference for a LEFT JOINed facet, nil when the game has none
func facetRef(valid bool, id int64, name string) *FacetRef {
	if !valid {
		return nil
	}
	return &FacetRef{ID: int(id), Name: name}
}
