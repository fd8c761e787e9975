package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTapcore     = "Starting tapcore"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is how often a failed publish is retried
	EventDefaultMaxRetries = 3

	// EventDefaultRetryDelay is the base delay between publish retries
	EventDefaultRetryDelay = 500 * time.Millisecond

	// EventDefaultDeadLetterPath receives events that exhausted their retries
	EventDefaultDeadLetterPath = "logs/deadletter.jsonl"
)

// Log messages for the event system
const (
	LogMsgEventSystemInitialized        = "Event system initialized"
	LogMsgMetricsCollectorRegistered    = "Metrics collector registered"
	LogMsgFailedCreateDeadLetterDir     = "failed to create dead-letter directory"
	ErrMsgFailedRegisterMetrics         = "failed to register metrics collector"
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	LogMsgShuttingDownServer      = "Shutting down server..."
	LogMsgServerForcedShutdown    = "Server forced to shutdown"
	LogMsgSchedulerShutdownFailed = "Scheduler shutdown failed"
	LogMsgSessionShutdownFailed   = "Session service shutdown failed"
	LogMsgServerStopped           = "Server stopped"
)
