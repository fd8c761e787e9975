package engine

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgFlushDeferred is logged when a coin sync fails and the delta stays pending
	LogMsgFlushDeferred = "Coin flush deferred, delta stays pending"

	// LogMsgTeardownFlushFailed is logged when the final flush on teardown fails
	LogMsgTeardownFlushFailed = "Teardown flush failed, pending coins persisted for next load"
)
