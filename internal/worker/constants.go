package worker

import "time"

// ============================================================================
// Scheduler Configuration
// ============================================================================

const (
	// DefaultSweepTick drives the booster expiry, energy regen and autobot
	// sweeps. One second matches the finest-grained accrual rate.
	DefaultSweepTick = time.Second

	// FlushSweepInterval is how often the scheduler checks for sessions
	// whose coalescing flush deadline has passed. Finer than the flush
	// delay so a deadline is picked up promptly.
	FlushSweepInterval = 250 * time.Millisecond

	// DefaultPoolWorkers is the default number of sweep workers
	DefaultPoolWorkers = 4

	// DefaultPoolQueueSize is the default sweep job queue depth
	DefaultPoolQueueSize = 64
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Scheduler
// ============================================================================

const (
	LogMsgSchedulerStarted   = "Scheduler started"
	LogMsgSchedulerStopping  = "Shutting down scheduler"
	LogMsgSchedulerStopped   = "Scheduler shutdown complete"
	LogMsgSchedulerTimeout   = "Scheduler shutdown timeout"
	LogMsgSweepQueueSaturted = "Sweep queue saturated, dropping tick"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
