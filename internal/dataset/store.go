package dataset

import (
	"sync/atomic"

	"github.com/spec-kit/hr-analytics/internal/domain"
)

// Store holds the current dataset snapshot. Snapshots are immutable; a
// reload swaps the pointer so in-flight readers keep the version they
// started with.
type Store struct {
	current atomic.Pointer[domain.Dataset]
}

// NewStore creates a store seeded with the initial dataset.
func NewStore(ds *domain.Dataset) *Store {
	s := &Store{}
	s.current.Store(ds)
	return s
}

// Snapshot returns the current dataset.
func (s *Store) Snapshot() *domain.Dataset {
	return s.current.Load()
}

// Swap replaces the current dataset with a freshly loaded one.
func (s *Store) Swap(ds *domain.Dataset) {
	s.current.Store(ds)
}
