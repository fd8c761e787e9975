package repository

import (
	"context"

	"github.com/avelins/tapcore/internal/domain"
)

// Session defines the interface for session state persistence. The engine
// persists the full aggregate after every mutation, so implementations
// should make Save an upsert.
type Session interface {
	// Get loads a session aggregate, returning domain.ErrSessionNotFound
	// for first-run users.
	Get(ctx context.Context, userID string) (*domain.SessionState, error)

	// Save upserts the full aggregate.
	Save(ctx context.Context, state *domain.SessionState) error

	// Delete removes a session (account reset / logout).
	Delete(ctx context.Context, userID string) error
}
