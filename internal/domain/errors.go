package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Session errors
	ErrMsgSessionNotFound = "session not found"

	// Energy errors
	ErrMsgNoEnergy = "no energy available"

	// Tap errors
	ErrMsgTapDebounced = "tap inside debounce window"

	// Daily booster errors
	ErrMsgBoosterUnavailable = "booster has no uses left"
	ErrMsgBoosterActive      = "booster already active"

	// Upgrade errors
	ErrMsgUnknownUpgrade = "unknown upgrade kind"
	ErrMsgUpgradeFailed  = "upgrade purchase failed"

	// Ledger errors
	ErrMsgLedgerUnavailable = "remote ledger unavailable"
	ErrMsgUnauthorized      = "invalid or missing auth token"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Energy errors
	ErrNoEnergy = errors.New(ErrMsgNoEnergy)

	// Tap errors
	ErrTapDebounced = errors.New(ErrMsgTapDebounced)

	// Daily booster errors
	ErrBoosterUnavailable = errors.New(ErrMsgBoosterUnavailable)
	ErrBoosterActive      = errors.New(ErrMsgBoosterActive)

	// Upgrade errors
	ErrUnknownUpgrade = errors.New(ErrMsgUnknownUpgrade)
	ErrUpgradeFailed  = errors.New(ErrMsgUpgradeFailed)

	// Ledger errors
	ErrLedgerUnavailable = errors.New(ErrMsgLedgerUnavailable)
	ErrUnauthorized      = errors.New(ErrMsgUnauthorized)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
