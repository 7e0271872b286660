package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/status"
	statusmocks "github.com/stacklok/game-catalog-server/internal/status/mocks"
	"github.com/stacklok/game-catalog-server/internal/sync"
	syncmocks "github.com/stacklok/game-catalog-server/internal/sync/mocks"
)

const testCatalogName = "tailspin"

func testConfig() *config.Config {
	return &config.Config{
		CatalogName: testCatalogName,
		Source: config.SourceConfig{
			File: &config.FileConfig{Path: "/data/catalog.json"},
		},
		SyncPolicy: &config.SyncPolicyConfig{Interval: "10m"},
	}
}

func TestCalculatePollingInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		syncInterval time.Duration
		exact        bool
	}{
		{name: "no sync interval uses base interval with jitter"},
		{name: "long sync interval uses base interval with jitter", syncInterval: time.Hour},
		{name: "short sync interval is used as is", syncInterval: 30 * time.Second, exact: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for range 50 {
				got := calculatePollingInterval(tt.syncInterval)
				if tt.exact {
					assert.Equal(t, tt.syncInterval, got)
					continue
				}
				assert.GreaterOrEqual(t, got, basePollingInterval-pollingJitter)
				assert.Less(t, got, basePollingInterval+pollingJitter)
			}
		})
	}
}

func TestCoordinator_InitialSync(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)
	cfg := testConfig()
	tracker := status.NewTracker(nil)

	persistence.EXPECT().LoadStatus(gomock.Any(), testCatalogName).Return(&status.SyncStatus{}, nil)
	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).Return(sync.ReasonCatalogNotReady)
	manager.EXPECT().PerformSync(gomock.Any(), cfg).Return(&sync.Result{
		Hash:       "0123456789abcdef",
		GameCount:  3,
		SnapshotID: "snap-1",
	}, nil)

	var saved []status.SyncPhase
	persistence.EXPECT().SaveStatus(gomock.Any(), testCatalogName, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s *status.SyncStatus) error {
			saved = append(saved, s.Phase)
			return nil
		}).Times(2)

	coord := New(manager, tracker, cfg,
		WithStatusPersistence(persistence),
		withPollingInterval(func() time.Duration { return time.Hour }),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		return tracker.Status().Phase == status.SyncPhaseComplete
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, coord.Stop())
	require.NoError(t, <-errCh)

	got := tracker.Status()
	assert.Equal(t, "Sync completed successfully", got.Message)
	assert.Equal(t, "0123456789abcdef", got.LastSyncHash)
	assert.Equal(t, 3, got.GameCount)
	assert.Equal(t, "snap-1", got.SnapshotID)
	assert.Equal(t, 0, got.AttemptCount)
	assert.Equal(t, "10m", got.SyncSchedule)
	assert.NotNil(t, got.LastSyncTime)
	assert.NotNil(t, got.LastAttempt)
	assert.Equal(t, []status.SyncPhase{status.SyncPhaseSyncing, status.SyncPhaseComplete}, saved)
}

func TestCoordinator_FailedSync(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	cfg := testConfig()
	tracker := status.NewTracker(nil)

	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).Return(sync.ReasonCatalogNotReady)
	manager.EXPECT().PerformSync(gomock.Any(), cfg).Return(nil, &sync.Error{
		Err:     errors.New("file not found"),
		Message: "Fetch failed: file not found",
		Stage:   sync.StageFetch,
	})

	coord := New(manager, tracker, cfg, withPollingInterval(func() time.Duration { return time.Hour }))

	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		return tracker.Status().Phase == status.SyncPhaseFailed
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, coord.Stop())
	require.NoError(t, <-errCh)

	got := tracker.Status()
	assert.Equal(t, "Fetch failed: file not found", got.Message)
	assert.Equal(t, 1, got.AttemptCount)
	assert.Nil(t, got.LastSyncTime)
}

func TestCoordinator_PeriodicChecks(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	cfg := testConfig()
	tracker := status.NewTracker(&status.SyncStatus{Phase: status.SyncPhaseComplete, LastSyncHash: "abc"})

	checks := make(chan struct{}, 16)
	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).
		DoAndReturn(func(context.Context, *config.Config, *status.SyncStatus) sync.Reason {
			select {
			case checks <- struct{}{}:
			default:
			}
			return sync.ReasonUpToDateWithPolicy
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
	assert.Equal(t, status.SyncPhaseComplete, got.Phase)
	assert.Equal(t, "Sync skipped: up-to-date-with-policy", got.Message)
	assert.NotNil(t, got.LastAttempt)
}

func TestCoordinator_InterruptedSyncIsReportedFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)
	cfg := testConfig()
	tracker := status.NewTracker(nil)

	persistence.EXPECT().LoadStatus(gomock.Any(), testCatalogName).Return(&status.SyncStatus{
		Phase:        status.SyncPhaseSyncing,
		AttemptCount: 2,
		LastSyncHash: "abc",
	}, nil)

	seen := make(chan *status.SyncStatus, 1)
	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *config.Config, s *status.SyncStatus) sync.Reason {
			seen <- s
			return sync.ReasonUpToDateNoPolicy
		})

	coord := New(manager, tracker, cfg,
		WithStatusPersistence(persistence),
		withPollingInterval(func() time.Duration { return time.Hour }),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(context.Background()) }()

	var got *status.SyncStatus
	select {
	case got = <-seen:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sync check")
	}

	require.NoError(t, coord.Stop())
	require.NoError(t, <-errCh)

	assert.Equal(t, status.SyncPhaseFailed, got.Phase)
	assert.Equal(t, "Previous sync was interrupted", got.Message)
	assert.Equal(t, 2, got.AttemptCount)
	assert.Equal(t, "abc", got.LastSyncHash)
}

func TestCoordinator_LoadStatusError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)

	persistence.EXPECT().LoadStatus(gomock.Any(), testCatalogName).Return(nil, errors.New("permission denied"))

	coord := New(manager, status.NewTracker(nil), testConfig(), WithStatusPersistence(persistence))

	err := coord.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize catalog sync status")
	require.NoError(t, coord.Stop())
}

func TestCoordinator_StopBeforeStart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	coord := New(syncmocks.NewMockManager(ctrl), status.NewTracker(nil), testConfig())

	assert.NoError(t, coord.Stop())
}

func TestCoordinator_ContextCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	cfg := testConfig()

	manager.EXPECT().ShouldSync(gomock.Any(), cfg, gomock.Any()).Return(sync.ReasonUpToDateNoPolicy).AnyTimes()

	coord := New(manager, status.NewTracker(nil), cfg, withPollingInterval(func() time.Duration { return time.Hour }))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- coord.Start(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("coordinator did not stop after context cancellation")
	}
}
