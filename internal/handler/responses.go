package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avelins/tapcore/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgNoEnergyError       = "Not enough energy"
	ErrMsgTapDebouncedError   = "Tap ignored, too soon after the last one"
	ErrMsgBoosterUnavailable  = "Booster is not available right now"
	ErrMsgBoosterActiveError  = "Booster is already active"
	ErrMsgUnknownUpgradeError = "Unknown upgrade"
	ErrMsgUpgradeFailedError  = "Upgrade could not be purchased"
	ErrMsgLedgerUnavailable   = "Game server is temporarily unavailable. Please try again later."
	ErrMsgAuthFailedError     = "Authentication failed. Please sign in again."
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgSessionNotFoundErr  = "Session not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal detail never reaches the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNoEnergy):
		return http.StatusConflict, ErrMsgNoEnergyError
	case errors.Is(err, domain.ErrTapDebounced):
		return http.StatusTooManyRequests, ErrMsgTapDebouncedError
	case errors.Is(err, domain.ErrBoosterUnavailable):
		return http.StatusConflict, ErrMsgBoosterUnavailable
	case errors.Is(err, domain.ErrBoosterActive):
		return http.StatusConflict, ErrMsgBoosterActiveError
	case errors.Is(err, domain.ErrUnknownUpgrade):
		return http.StatusBadRequest, ErrMsgUnknownUpgradeError
	case errors.Is(err, domain.ErrUpgradeFailed):
		return http.StatusBadGateway, ErrMsgUpgradeFailedError
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusBadGateway, ErrMsgLedgerUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundErr
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
