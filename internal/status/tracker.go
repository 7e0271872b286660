package status

import (
	"sync"
)

// Tracker holds the sync status of the running catalog and hands out copies to readers
type Tracker struct {
	mu     sync.RWMutex
	status *SyncStatus
}

// NewTracker creates a tracker seeded with initial, which may be nil
func NewTracker(initial *SyncStatus) *Tracker {
	if initial == nil {
		initial = &SyncStatus{}
	}
	return &Tracker{status: initial.Clone()}
}

// Status returns a copy of the current status
func (t *Tracker) Status() *SyncStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status.Clone()
}

// Update applies fn to the status under the write lock and returns a copy of the result
func (t *Tracker) Update(fn func(*SyncStatus)) *SyncStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.status)
	return t.status.Clone()
}
