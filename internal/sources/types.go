package sources

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/stacklok/game-catalog-server/internal/config"
)

//go:generate mockgen -destination=mocks/mock_catalog_handler.go -package=mocks -source=types.go CatalogHandler,CatalogHandlerFactory

// CatalogHandler is an interface with methods to fetch catalogs from external data sources
type CatalogHandler interface {
	// FetchCatalog retrieves data from the source and returns the result
	FetchCatalog(ctx context.Context, source *config.SourceConfig) (*FetchResult, error)

	// Validate validates the source configuration
	Validate(source *config.SourceConfig) error

	// CurrentHash returns the current hash of the source data
	CurrentHash(ctx context.Context, source *config.SourceConfig) (string, error)
}

// CatalogHandlerFactory creates catalog handlers based on source type
type CatalogHandlerFactory interface {
	// CreateHandler creates a catalog handler for the given source type
	CreateHandler(sourceType string) (CatalogHandler, error)
}

// FetchResult contains the result of a fetch operation
type FetchResult struct {
	// Catalog is the parsed catalog document
	Catalog *Document

	// Hash is the SHA256 hash of the source data for change detection
	Hash string

	// GameCount is the number of games found in the catalog
	GameCount int

	// Format indicates the original format of the source data
	Format string

	// Source describes where the catalog was read from, e.g. "git:https://...@abc123"
	Source string
}

// NewFetchResult creates a new FetchResult from a Document and a pre-calculated hash.
// The hash should be calculated by the handler to ensure consistency with CurrentHash.
func NewFetchResult(doc *Document, hash, format, source string) *FetchResult {
	gameCount := 0
	if doc != nil {
		gameCount = len(doc.Games)
	}

	return &FetchResult{
		Catalog:   doc,
		Hash:      hash,
		GameCount: gameCount,
		Format:    format,
		Source:    source,
	}
}

// hashData returns the hex encoded SHA256 of data
func hashData(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
