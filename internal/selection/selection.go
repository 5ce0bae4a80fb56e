package selection

import (
	"sort"
	"sync"
)

// State records which entity ids the user has checked. It is independent of
// the active filters and only Clear resets it.
type State struct {
	mu    sync.Mutex
	flags map[string]bool
}

func New() *State {
	return &State{flags: make(map[string]bool)}
}

// Toggle flips the flag of id; an unknown id becomes selected.
func (s *State) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[id] = !s.flags[id]
	return s.flags[id]
}

// Track registers ids as unselected, leaving existing flags untouched.
func (s *State) Track(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, ok := s.flags[id]; !ok {
			s.flags[id] = false
		}
	}
}

// Snapshot returns a copy of every tracked flag.
func (s *State) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.flags))
	for id, v := range s.flags {
		out[id] = v
	}
	return out
}

func (s *State) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, v := range s.flags {
		if v {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = make(map[string]bool)
}
