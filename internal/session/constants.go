package session

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgStateLoadFailed       = "Failed to load persisted session, starting from defaults"
	LogMsgProfileSeedFailed     = "Failed to fetch remote profile, keeping persisted coin total"
	LogMsgCatalogSeedFailed     = "Failed to fetch booster catalog, keeping persisted upgrades"
	LogMsgCatalogRefreshFailed  = "Failed to refresh booster catalog after upgrade"
	LogMsgPersistFailed         = "Failed to persist session state"
	LogMsgEvictPersistFailed    = "Failed to persist session state on eviction"
	LogMsgSessionStarted        = "Session loaded"
	LogMsgSessionReset          = "Session reset to defaults"
	LogMsgOfflineAutobotCredit  = "Credited offline autobot coins"
	LogMsgShutdownFlushTimedOut = "Shutdown timed out waiting for in-flight flushes"
)
