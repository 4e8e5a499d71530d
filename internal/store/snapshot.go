// Package store
package store

import (
	"sync"

	"procmond/internal/domain"
)

// SnapshotStore holds the most recent pass only, both structured and in its
// rendered wire form. History is deliberately not kept.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot domain.Snapshot
	raw      []byte
	ok       bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Set(snapshot domain.Snapshot, raw []byte) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.raw = raw
	s.ok = true
	s.mu.Unlock()
}

// Latest returns the last stored pass; ok is false until the first Set.
func (s *SnapshotStore) Latest() (domain.Snapshot, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.raw, s.ok
}
