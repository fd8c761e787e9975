package postgres

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLSelectSession retrieves one session aggregate by user ID
	SQLSelectSession = `
		SELECT state
		FROM sessions
		WHERE user_id = $1
	`

	// SQLUpsertSession inserts or replaces the session aggregate
	SQLUpsertSession = `
		INSERT INTO sessions (user_id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
	`

	// SQLDeleteSession removes a session record
	SQLDeleteSession = `DELETE FROM sessions WHERE user_id = $1`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgGetSessionFailed    = "failed to get session: %w"
	ErrMsgSaveSessionFailed   = "failed to save session: %w"
	ErrMsgDeleteSessionFailed = "failed to delete session: %w"
	ErrMsgEncodeSessionFailed = "failed to encode session state: %w"
	ErrMsgDecodeSessionFailed = "failed to decode session state: %w"
)
