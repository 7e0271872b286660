// Package status provides sync status tracking and persistence for the catalog.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_status_persistence.go -package=mocks -source=persistence.go StatusPersistence

const (
	// StatusFileName is the name of the status file
	StatusFileName = "status.json"
)

// StatusPersistence defines the interface for sync status persistence
//
//nolint:revive // This name is fine
type StatusPersistence interface {
	// SaveStatus saves the sync status of a catalog to persistent storage
	SaveStatus(ctx context.Context, catalogName string, status *SyncStatus) error

	// LoadStatus loads the sync status of a catalog from persistent storage
	// Returns an empty SyncStatus if the file doesn't exist (first run)
	LoadStatus(ctx context.Context, catalogName string) (*SyncStatus, error)
}

// fileStatusPersistence implements StatusPersistence using local filesystem
type fileStatusPersistence struct {
	basePath string
}

// NewFileStatusPersistence creates a new file-based status persistence
// basePath is the base directory where per-catalog status files will be stored
func NewFileStatusPersistence(basePath string) StatusPersistence {
	return &fileStatusPersistence{
		basePath: basePath,
	}
}

// SaveStatus saves the sync status to a JSON file in a catalog-specific directory
func (f *fileStatusPersistence) SaveStatus(_ context.Context, catalogName string, status *SyncStatus) error {
	catalogDir := filepath.Join(f.basePath, catalogName)
	if err := os.MkdirAll(catalogDir, 0750); err != nil {
		return fmt.Errorf("failed to create status directory for catalog '%s': %w", catalogName, err)
	}

	filePath := filepath.Join(catalogDir, StatusFileName)

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status data for catalog '%s': %w", catalogName, err)
	}

	// Write to temporary file first for atomic operation
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary status file for catalog '%s': %w", catalogName, err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename status file for catalog '%s': %w", catalogName, err)
	}

	return nil
}

// LoadStatus loads the sync status from a JSON file for a specific catalog
// Returns an empty SyncStatus if the file doesn't exist
func (f *fileStatusPersistence) LoadStatus(_ context.Context, catalogName string) (*SyncStatus, error) {
	filePath := filepath.Join(f.basePath, catalogName, StatusFileName)

	// #nosec G304 -- filePath is built from the configured base path and catalog name
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &SyncStatus{}, nil
		}
		return nil, fmt.Errorf("failed to read status file for catalog '%s': %w", catalogName, err)
	}

	var status SyncStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status data for catalog '%s': %w", catalogName, err)
	}

	return &status, nil
}
