package schedule

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("not found")

// Store persists the schedule state. Load returns an independent copy plus
// any legacy no-time task names still present in the underlying document;
// Save replaces the stored state. In-memory state is the source of truth:
// implementations must keep the new state even when writing it out fails.
type Store interface {
	Load() (*State, []string, error)
	Save(*State) error
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	state  *State
	legacy []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: NewState()}
}

// SeedLegacyNoTime injects legacy no-time names, mimicking an old on-disk
// document.
func (s *MemoryStore) SeedLegacyNoTime(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacy = append([]string{}, names...)
}

func (s *MemoryStore) Load() (*State, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), append([]string{}, s.legacy...), nil
}

func (s *MemoryStore) Save(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.Clone()
	s.legacy = nil
	return nil
}
