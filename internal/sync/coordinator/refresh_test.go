package coordinator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/sources"
	"github.com/stacklok/game-catalog-server/internal/status"
	"github.com/stacklok/game-catalog-server/internal/sync"
	syncmocks "github.com/stacklok/game-catalog-server/internal/sync/mocks"
)

const refreshCatalog = `{
  "games": [
    {"id": 1, "title": %q, "category": {"id": 1, "name": "Strategy"}, "publisher": {"id": 1, "name": "Tailspin Toys"}}
  ]
}`

func writeRefreshCatalog(t *testing.T, path, title string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(refreshCatalog, title)), 0600))
}

func currentTitle(store *catalog.Store) string {
	record, ok := store.Current().Record(1)
	if !ok {
		return ""
	}
	return record.Title
}

func TestCoordinator_RepublishesChangedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	writeRefreshCatalog(t, path, "Harbor Masters")

	cfg := &config.Config{
		CatalogName: testCatalogName,
		Source:      config.SourceConfig{File: &config.FileConfig{Path: path}},
		SyncPolicy:  &config.SyncPolicyConfig{Interval: "400ms"},
	}
	store := catalog.NewStore()
	tracker := status.NewTracker(nil)
	manager := sync.NewDefaultSyncManager(sources.NewCatalogHandlerFactory(), store)

	// Polling faster than the interval must not keep pushing the next sync out
	coord := New(manager, tracker, cfg, withPollingInterval(func() time.Duration { return 150 * time.Millisecond }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(ctx) }()

	require.Eventually(t, func() bool {
		return currentTitle(store) == "Harbor Masters"
	}, 5*time.Second, 20*time.Millisecond)
	firstSnapshot := store.Current().ID()

	writeRefreshCatalog(t, path, "Harbor Masters II")

	require.Eventually(t, func() bool {
		return currentTitle(store) == "Harbor Masters II"
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEqual(t, firstSnapshot, store.Current().ID())

	require.NoError(t, coord.Stop())
	require.NoError(t, <-errCh)

	got := tracker.Status()
	assert.Equal(t, status.SyncPhaseComplete, got.Phase)
	assert.Equal(t, 0, got.AttemptCount)
}

func TestCoordinator_IntervalNotElapsedKeepsLastAttempt(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	cfg := testConfig()
	lastAttempt := time.Now().Add(-time.Minute).Truncate(time.Second)
	tracker := status.NewTracker(&status.SyncStatus{
		Phase:        status.SyncPhaseComplete,
		LastAttempt:  &lastAttempt,
		LastSyncHash: "abc",
		Message:      "Sync completed successfully",
	})

	checks := make(chan struct{}, 16)
	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).
		DoAndReturn(func(context.Context, *config.Config, *status.SyncStatus) sync.Reason {
			select {
			case checks <- struct{}{}:
			default:
			}
			return sync.ReasonIntervalNotElapsed
		}).MinTimes(3)

	coord := New(manager, tracker, cfg, withPollingInterval(func() time.Duration { return 5 * time.Millisecond }))

	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(context.Background()) }()

	for range 3 {
		select {
		case <-checks:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for sync checks")
		}
	}

	require.NoError(t, coord.Stop())
	require.NoError(t, <-errCh)

	got := tracker.Status()
	require.NotNil(t, got.LastAttempt)
	assert.True(t, lastAttempt.Equal(*got.LastAttempt), "last attempt moved to %s", got.LastAttempt)
	assert.Equal(t, "Sync completed successfully", got.Message)
}
