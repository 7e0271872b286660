package catalog

import (
	"sync/atomic"
)

// Store publishes catalog snapshots.
//
// Readers call Current once per operation and work on the returned snapshot;
// a concurrent Publish never affects a snapshot that is already in use.
type Store struct {
	current   atomic.Pointer[Snapshot]
	published atomic.Bool
}

// NewStore creates a store serving an empty snapshot
func NewStore() *Store {
	s := &Store{}
	s.current.Store(Empty())
	return s
}

// Current returns the snapshot currently being served. It never returns nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish atomically replaces the served snapshot and returns the previous one.
// A nil snapshot is replaced by an empty one.
func (s *Store) Publish(snap *Snapshot) *Snapshot {
	if snap == nil {
		snap = Empty()
	}
	prev := s.current.Swap(snap)
	s.published.Store(true)
	return prev
}

// Published reports whether a snapshot has been published since the store was created
func (s *Store) Published() bool {
	return s.published.Load()
}
