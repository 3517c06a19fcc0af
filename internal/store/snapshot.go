package store

import (
	"sync"
	"sync/atomic"

	"github.com/skycast-dev/skycast/internal/models"
)

// SnapshotStore is the single slot holding the latest validated snapshot and
// the display name shown with it. It is the only shared mutable state of the
// dashboard core: every render path reads it, only successful fetches write.
//
// Writes are fenced by a monotonic request sequence so the display always
// reflects the most recently initiated request, not the most recently
// completed one. A fetch captures Begin() before going out; a write with a
// stale sequence is rejected.
type SnapshotStore struct {
	issued atomic.Uint64

	mu          sync.RWMutex
	seq         uint64
	snap        models.WeatherSnapshot
	displayName string
	populated   bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Begin reserves the next request sequence. Call once per initiated fetch,
// before the request leaves.
func (s *SnapshotStore) Begin() uint64 {
	return s.issued.Add(1)
}

// Set replaces the slot if seq is not older than the stored sequence.
// Returns false when the write lost the race and was dropped.
func (s *SnapshotStore) Set(seq uint64, snap models.WeatherSnapshot, displayName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.seq {
		return false
	}
	s.seq = seq
	s.snap = snap
	s.displayName = displayName
	s.populated = true
	return true
}

// Get returns the current slot. The boolean is false until the first
// successful fetch lands.
func (s *SnapshotStore) Get() (models.WeatherSnapshot, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.displayName, s.populated
}
