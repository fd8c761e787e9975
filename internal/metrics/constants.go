package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameTapsProcessed     = "taps_processed_total"
	MetricNameCoinsEarned       = "coins_earned_total"
	MetricNameBoostersActivated = "boosters_activated_total"
	MetricNameUpgradesPurchased = "upgrades_purchased_total"
	MetricNameFlushesTotal      = "ledger_flushes_total"
	MetricNameFlushedCoins      = "ledger_flushed_coins_total"
	MetricNameActiveSessions    = "active_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextTapsProcessed     = "Total number of tap events scored"
	HelpTextCoinsEarned       = "Total coins earned, by source"
	HelpTextBoostersActivated = "Total daily booster activations"
	HelpTextUpgradesPurchased = "Total permanent upgrade purchases"
	HelpTextFlushesTotal      = "Total ledger flush attempts, by outcome"
	HelpTextFlushedCoins      = "Total coins confirmed by the remote ledger"
	HelpTextActiveSessions    = "Current number of live game sessions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelSource  = "source"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
)

// Label values
const (
	SourceTap     = "tap"
	SourceAutobot = "autobot"
	SourceOffline = "offline"

	OutcomeConfirmed = "confirmed"
	OutcomeDeferred  = "deferred"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventDecodeFailed = "Failed to decode event payload for metrics"
)
