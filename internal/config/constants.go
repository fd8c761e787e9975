package config

import "time"

const (
	// DefaultServiceName is used in log attributes when SERVICE_NAME is unset
	DefaultServiceName = "tapcore"

	// StoreBackendPostgres selects the durable pgx session store
	StoreBackendPostgres = "postgres"

	// StoreBackendMemory selects the in-memory session store (dev/tests)
	StoreBackendMemory = "memory"

	// DefaultLedgerTimeout bounds every remote ledger call. The upstream API
	// has no SLA, so a sync that exceeds this is treated as deferred, not lost.
	DefaultLedgerTimeout = 10 * time.Second

	// DefaultSessionCacheSize is the maximum number of hot sessions kept in memory
	DefaultSessionCacheSize = 10000

	// DefaultSessionCacheTTL evicts idle sessions from the hot cache
	DefaultSessionCacheTTL = 30 * time.Minute

	// DefaultLogDir receives timestamped session log files
	DefaultLogDir = "logs"
)
