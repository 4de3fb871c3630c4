package server

import (
	"sync"

	"CryptoPulse/internal/model"
)

// Store holds the latest snapshot produced by the refresh tick. Writes
// come from the scheduler goroutine, reads from request handlers.
type Store struct {
	mu     sync.RWMutex
	latest model.DashboardSnapshot
	ready  bool
}

func NewStore() *Store { return &Store{} }

// SetLatest replaces the published snapshot.
func (s *Store) SetLatest(snap model.DashboardSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snap
	s.ready = true
}

// Latest returns the published snapshot and whether one exists yet.
func (s *Store) Latest() (model.DashboardSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ready
}
