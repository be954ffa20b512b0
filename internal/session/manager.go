package session

import (
	"context"
	"fmt"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/provider"
)

// Manager owns the append/continue contract for chat sessions. Histories only
// grow: one user turn per caller message, one assistant turn per backend
// reply, with the system directive injected exactly once at creation.
type Manager struct {
	store     *Store
	gateway   provider.Gateway
	model     string
	directive string
}

func NewManager(store *Store, gateway provider.Gateway, model, directive string) *Manager {
	return &Manager{
		store:     store,
		gateway:   gateway,
		model:     model,
		directive: directive,
	}
}

// BeginOrContinue resolves a session identifier. An absent or unknown id
// silently starts a fresh session; a known id is returned unchanged. This is
// pure bookkeeping and never fails.
func (m *Manager) BeginOrContinue(id core.SessionID) core.SessionID {
	if id != "" && m.store.exists(id) {
		return id
	}

	newID := core.NewSessionID()
	m.store.ensure(newID, m.directive)

	return newID
}

// Submit appends a user turn, sends the entire history to the gateway, and
// appends the assistant reply. On gateway failure the already-appended user
// turn stays in the history; resubmitting adds a new user turn rather than
// replacing the failed one.
func (m *Manager) Submit(ctx context.Context, id core.SessionID, userText string) (string, error) {
	st := m.store.ensure(id, m.directive)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.history = append(st.history, core.Turn{Role: core.RoleUser, Content: userText})

	turns := make([]core.Turn, len(st.history))
	copy(turns, st.history)

	reply, err := m.gateway.GenerateChat(ctx, turns, m.model)
	if err != nil {
		return "", fmt.Errorf("session %s: %w", id, err)
	}

	st.history = append(st.history, core.Turn{Role: core.RoleAssistant, Content: reply})

	return reply, nil
}

// History returns a copy of the session's turns, or nil for an unknown id.
func (m *Manager) History(id core.SessionID) []core.Turn {
	m.store.mu.RLock()
	st, ok := m.store.sessions[id]
	m.store.mu.RUnlock()

	if !ok {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]core.Turn, len(st.history))
	copy(out, st.history)

	return out
}
