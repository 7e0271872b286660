package sources

import (
	"fmt"

	"github.com/stacklok/game-catalog-server/internal/config"
)

// defaultCatalogHandlerFactory is the default implementation of CatalogHandlerFactory
type defaultCatalogHandlerFactory struct{}

var _ CatalogHandlerFactory = (*defaultCatalogHandlerFactory)(nil)

// NewCatalogHandlerFactory creates a new catalog handler factory
func NewCatalogHandlerFactory() CatalogHandlerFactory {
	return &defaultCatalogHandlerFactory{}
}

// CreateHandler creates a catalog handler for the given source type
func (*defaultCatalogHandlerFactory) CreateHandler(sourceType string) (CatalogHandler, error) {
	switch sourceType {
	case config.SourceTypeGit:
		return NewGitCatalogHandler(), nil
	case config.SourceTypeAPI:
		return NewAPICatalogHandler(), nil
	case config.SourceTypeFile:
		return NewFileCatalogHandler(), nil
	case config.SourceTypeDatabase:
		return NewDatabaseCatalogHandler(), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}
