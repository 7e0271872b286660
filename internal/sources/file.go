package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/stacklok/game-catalog-server/internal/config"
)

// fileCatalogHandler handles catalog documents from local files
type fileCatalogHandler struct {
	validator CatalogDataValidator
}

var _ CatalogHandler = (*fileCatalogHandler)(nil)

// NewFileCatalogHandler creates a new file catalog handler
func NewFileCatalogHandler() CatalogHandler {
	return &fileCatalogHandler{
		validator: NewCatalogDataValidator(),
	}
}

// Validate validates the file source configuration
func (*fileCatalogHandler) Validate(source *config.SourceConfig) error {
	if source == nil {
		return fmt.Errorf("source configuration cannot be nil")
	}

	if source.File == nil {
		return fmt.Errorf("file configuration is required")
	}

	if source.File.Path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	return nil
}

// FetchCatalog reads and validates the catalog document
func (h *fileCatalogHandler) FetchCatalog(ctx context.Context, source *config.SourceConfig) (*FetchResult, error) {
	data, hash, err := h.fetchFileData(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file data: %w", err)
	}

	doc, err := h.validator.ValidateData(data, source.GetFormat())
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return NewFetchResult(doc, hash, source.GetFormat(), config.SourceTypeFile+":"+source.File.Path), nil
}

// fetchFileData reads the file and calculates its hash
func (h *fileCatalogHandler) fetchFileData(_ context.Context, source *config.SourceConfig) ([]byte, string, error) {
	if err := h.Validate(source); err != nil {
		return nil, "", fmt.Errorf("source validation failed: %w", err)
	}

	filePath := source.File.Path

	//nolint:gosec // File path comes from user configuration, this is expected behavior
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("file not found: %s", filePath)
		}
		return nil, "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return data, hashData(data), nil
}

// CurrentHash returns the current hash of the file without parsing it
func (h *fileCatalogHandler) CurrentHash(ctx context.Context, source *config.SourceConfig) (string, error) {
	_, hash, err := h.fetchFileData(ctx, source)
	if err != nil {
		return "", err
	}

	return hash, nil
}
