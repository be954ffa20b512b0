// Package session manages per-session conversation state: an injected
// in-memory store of histories plus a manager that appends turns and talks
// to the gateway. Sessions live for the process lifetime; nothing is
// persisted or evicted.
package session

import (
	"sync"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
)

// Store holds all active sessions. Distinct sessions can be created and
// mutated concurrently; traffic within one session is serialized by the
// session's own mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*state
}

type state struct {
	mu      sync.Mutex
	history []core.Turn
}

func NewStore() *Store {
	return &Store{sessions: make(map[core.SessionID]*state)}
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) exists(id core.SessionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[id]

	return ok
}

// ensure returns the session's state, creating it if absent. A newly created
// session starts with the directive as its only turn; an empty directive
// means no leading system turn.
func (s *Store) ensure(id core.SessionID, directive string) *state {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[id]; ok {
		return st
	}

	st := &state{}
	if directive != "" {
		st.history = []core.Turn{{Role: core.RoleSystem, Content: directive}}
	}

	s.sessions[id] = st

	return st
}
