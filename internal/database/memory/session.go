package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/avelins/tapcore/internal/domain"
)

// SessionRepository is an in-memory session store for dev mode and tests.
// It round-trips aggregates through JSON so it exercises the same
// serialization path as the postgres store.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionRepository creates an empty in-memory store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string][]byte)}
}

// Get loads a session aggregate by user ID.
func (r *SessionRepository) Get(_ context.Context, userID string) (*domain.SessionState, error) {
	r.mu.RLock()
	payload, ok := r.sessions[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var state domain.SessionState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save upserts the full aggregate.
func (r *SessionRepository) Save(_ context.Context, state *domain.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sessions[state.UserID] = payload
	r.mu.Unlock()
	return nil
}

// Delete removes a session record.
func (r *SessionRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions (test helper).
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
