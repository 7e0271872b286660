package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testCatalogName = "tailspin"

func TestFileStatusPersistence_SaveAndLoad(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	persistence := NewFileStatusPersistence(tmpDir)
	require.NotNil(t, persistence)

	now := time.Now()
	testStatus := &SyncStatus{
		Phase:        SyncPhaseComplete,
		Message:      "Catalog synced",
		LastAttempt:  &now,
		AttemptCount: 1,
		LastSyncTime: &now,
		LastSyncHash: "abc123",
		GameCount:    5,
		SnapshotID:   "6f3c9f6e-2b1b-4c52-9a55-6d0f0f0b7d21",
	}

	ctx := context.Background()
	err := persistence.SaveStatus(ctx, testCatalogName, testStatus)
	require.NoError(t, err)

	expectedPath := filepath.Join(tmpDir, testCatalogName, StatusFileName)
	_, err = os.Stat(expectedPath)
	require.NoError(t, err)

	loaded, err := persistence.LoadStatus(ctx, testCatalogName)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, testStatus.Phase, loaded.Phase)
	require.Equal(t, testStatus.Message, loaded.Message)
	require.Equal(t, testStatus.AttemptCount, loaded.AttemptCount)
	require.Equal(t, testStatus.LastSyncHash, loaded.LastSyncHash)
	require.Equal(t, testStatus.GameCount, loaded.GameCount)
	require.Equal(t, testStatus.SnapshotID, loaded.SnapshotID)
}

func TestFileStatusPersistence_LoadNonExistent(t *testing.T) {
	t.Parallel()

	persistence := NewFileStatusPersistence(t.TempDir())

	loaded, err := persistence.LoadStatus(context.Background(), testCatalogName)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, SyncPhase(""), loaded.Phase)
	require.Equal(t, "", loaded.Message)
}

func TestFileStatusPersistence_UpdateStatus(t *testing.T) {
	t.Parallel()

	persistence := NewFileStatusPersistence(t.TempDir())
	ctx := context.Background()

	now1 := time.Now()
	err := persistence.SaveStatus(ctx, testCatalogName, &SyncStatus{
		Phase:        SyncPhaseSyncing,
		Message:      "Syncing...",
		LastAttempt:  &now1,
		AttemptCount: 1,
	})
	require.NoError(t, err)

	now2 := time.Now()
	err = persistence.SaveStatus(ctx, testCatalogName, &SyncStatus{
		Phase:        SyncPhaseComplete,
		Message:      "Sync completed",
		LastAttempt:  &now2,
		LastSyncTime: &now2,
		LastSyncHash: "xyz789",
		GameCount:    10,
	})
	require.NoError(t, err)

	loaded, err := persistence.LoadStatus(ctx, testCatalogName)
	require.NoError(t, err)
	require.Equal(t, SyncPhaseComplete, loaded.Phase)
	require.Equal(t, "Sync completed", loaded.Message)
	require.Equal(t, 0, loaded.AttemptCount)
	require.Equal(t, "xyz789", loaded.LastSyncHash)
	require.Equal(t, 10, loaded.GameCount)
}

func TestFileStatusPersistence_AtomicWrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	persistence := NewFileStatusPersistence(tmpDir)

	now := time.Now()
	err := persistence.SaveStatus(context.Background(), testCatalogName, &SyncStatus{
		Phase:       SyncPhaseComplete,
		LastAttempt: &now,
	})
	require.NoError(t, err)

	tempPath := filepath.Join(tmpDir, testCatalogName, StatusFileName) + ".tmp"
	_, err = os.Stat(tempPath)
	require.True(t, os.IsNotExist(err), "Temporary file should not exist after save")
}

func TestFileStatusPersistence_LoadCorrupt(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	persistence := NewFileStatusPersistence(tmpDir)

	dir := filepath.Join(tmpDir, testCatalogName)
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatusFileName), []byte("{invalid json}"), 0600))

	_, err := persistence.LoadStatus(context.Background(), testCatalogName)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to unmarshal status data")
}
