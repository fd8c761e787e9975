package ledger

// =============================================================================
// Endpoint Paths
// =============================================================================

const (
	// PathProfile returns the authoritative coin total and energy cap seed
	PathProfile = "/user/profile"

	// PathUpdateCoins applies a pending coin delta; the delta rides in the query string
	PathUpdateCoins = "/update-coins"

	// PathBoosterCatalog lists the purchasable permanent upgrades
	PathBoosterCatalog = "/user/boost/extra_boosters"

	// PathUpgradeBooster triggers a server-side level increment; booster ID is appended
	PathUpgradeBooster = "/user/boost/upgrade/"
)

// =============================================================================
// Header Constants
// =============================================================================

const (
	// HeaderIdempotencyKey carries the per-flush UUID so a retried delta can
	// be deduplicated server-side
	HeaderIdempotencyKey = "X-Idempotency-Key"

	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgBuildRequestFailed  = "failed to build request: %w"
	ErrMsgRequestFailed       = "%w: %v"
	ErrMsgUnexpectedStatus    = "%w: unexpected status %d"
	ErrMsgDecodeFailed        = "failed to decode response: %w"
	ErrMsgUpgradeStatusFailed = "%w: upgrade returned status %d"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCoinSyncApplied  = "Coin sync applied"
	LogMsgCoinSyncFailed   = "Coin sync failed"
	LogMsgCatalogFetched   = "Booster catalog fetched"
	LogMsgUpgradeRequested = "Booster upgrade requested"
)
