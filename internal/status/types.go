package status

import "time"

// SyncPhase represents the current phase of a synchronization operation
type SyncPhase string

const (
	// SyncPhaseSyncing means sync is currently in progress
	SyncPhaseSyncing SyncPhase = "Syncing"

	// SyncPhaseComplete means sync completed successfully
	SyncPhaseComplete SyncPhase = "Complete"

	// SyncPhaseFailed means sync failed
	SyncPhaseFailed SyncPhase = "Failed"
)

// SyncStatus represents the current state of catalog synchronization
type SyncStatus struct {
	// Phase represents the current synchronization phase
	Phase SyncPhase `json:"phase,omitempty"`

	// Message provides additional information about the sync status
	Message string `json:"message,omitempty"`

	// LastAttempt is the timestamp of the last sync attempt
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`

	// AttemptCount is the number of sync attempts since last success
	AttemptCount int `json:"attemptCount,omitempty"`

	// LastSyncTime is the timestamp of the last successful sync
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`

	// LastSyncHash is the hash of the last successfully synced catalog document
	LastSyncHash string `json:"lastSyncHash,omitempty"`

	// GameCount is the number of games in the last published snapshot
	GameCount int `json:"gameCount,omitempty"`

	// SnapshotID is the generation id of the last published snapshot
	SnapshotID string `json:"snapshotId,omitempty"`

	// SyncSchedule is the sync interval from configuration (e.g., "30m", "1h")
	SyncSchedule string `json:"syncSchedule,omitempty"`
}

// Clone returns a deep copy of the status
func (s *SyncStatus) Clone() *SyncStatus {
	if s == nil {
		return nil
	}
	c := *s
	if s.LastAttempt != nil {
		t := *s.LastAttempt
		c.LastAttempt = &t
	}
	if s.LastSyncTime != nil {
		t := *s.LastSyncTime
		c.LastSyncTime = &t
	}
	return &c
}
