package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelins/tapcore/internal/domain"
)

// SessionRepository implements the session repository for PostgreSQL. The
// aggregate is stored as one JSONB document per user: the engine always
// reads and writes the whole session, so normalizing the sub-state into
// rows would only add write amplification.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get loads a session aggregate by user ID.
func (r *SessionRepository) Get(ctx context.Context, userID string) (*domain.SessionState, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, SQLSelectSession, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf(ErrMsgDecodeSessionFailed, err)
	}
	state.UserID = userID
	return &state, nil
}

// Save upserts the full aggregate.
func (r *SessionRepository) Save(ctx context.Context, state *domain.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeSessionFailed, err)
	}

	if _, err := r.db.Exec(ctx, SQLUpsertSession, state.UserID, payload); err != nil {
		return fmt.Errorf(ErrMsgSaveSessionFailed, err)
	}
	return nil
}

// Delete removes a session record.
func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, SQLDeleteSession, userID); err != nil {
		return fmt.Errorf(ErrMsgDeleteSessionFailed, err)
	}
	return nil
}
