package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/session"
	"github.com/avelins/tapcore/internal/upgrade"
)

// SessionHandler exposes the game session operations over HTTP.
type SessionHandler struct {
	svc session.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// TapRequest is the body of POST /session/tap.
type TapRequest struct {
	UserID     string `json:"user_id" validate:"required,max=64"`
	InputCount int    `json:"input_count" validate:"min=0,max=10"`
}

// TapResponse reports one scored tap.
type TapResponse struct {
	CoinsEarned  int64   `json:"coins_earned"`
	Multiplier   int     `json:"multiplier"`
	EnergyLeft   float64 `json:"energy_left"`
	DisplayTotal int64   `json:"display_total"`
}

// HandleTap scores one tap event.
func (h *SessionHandler) HandleTap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req TapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode tap request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	res, err := h.svc.Tap(r.Context(), req.UserID, req.InputCount)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		// Energy exhaustion and debounce rejections are routine; keep
		// them out of the warn stream.
		log.Debug("Tap rejected", "user_id", req.UserID, "error", err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, TapResponse{
		CoinsEarned:  res.CoinsEarned,
		Multiplier:   res.Multiplier,
		EnergyLeft:   res.EnergyLeft,
		DisplayTotal: res.DisplayTotal,
	})
}

// DailyBoosterRequest is the body of POST /session/booster/daily.
type DailyBoosterRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Kind   string `json:"kind" validate:"required,booster_kind"`
}

// DailyBoosterResponse reports the booster state after an activation attempt.
type DailyBoosterResponse struct {
	Activated bool       `json:"activated"`
	State     *StateView `json:"state"`
}

// HandleActivateBooster consumes one use of a daily booster. A failed
// precondition is not an error: activated=false with the current state.
func (h *SessionHandler) HandleActivateBooster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req DailyBoosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode booster request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	state, activated, err := h.svc.ActivateBooster(r.Context(), req.UserID, domain.DailyBoosterKind(req.Kind))
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, DailyBoosterResponse{
		Activated: activated,
		State:     NewStateView(state),
	})
}

// UpgradeRequest is the body of POST /session/booster/upgrade.
type UpgradeRequest struct {
	UserID    string `json:"user_id" validate:"required,max=64"`
	BoosterID int    `json:"booster_id" validate:"required,min=1"`
}

// HandlePurchaseUpgrade forwards a permanent upgrade purchase to the remote
// ledger and refreshes the local tracks from the catalog.
func (h *SessionHandler) HandlePurchaseUpgrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode upgrade request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	state, err := h.svc.PurchaseUpgrade(r.Context(), req.UserID, req.BoosterID)
	if err != nil {
		log.Warn("Upgrade purchase failed", "user_id", req.UserID, "booster_id", req.BoosterID, "error", err)
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, NewStateView(state))
}

// HandleGetState returns the full session view for ?user_id=.
func (h *SessionHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingUserID)
		return
	}

	state, err := h.svc.GetState(r.Context(), userID)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, NewStateView(state))
}

// FlushRequest is the body of POST /session/flush.
type FlushRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// HandleFlush forces an immediate sync of pending coins. A deferred flush is
// reported with the still-pending state, not as a hard failure: the coins
// remain safe locally and retry on the next trigger.
func (h *SessionHandler) HandleFlush(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req FlushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode flush request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	state, err := h.svc.Flush(r.Context(), req.UserID)
	if err != nil {
		log.Warn("Flush deferred", "user_id", req.UserID, "error", err)
		respondJSON(w, http.StatusAccepted, NewStateView(state))
		return
	}

	respondJSON(w, http.StatusOK, NewStateView(state))
}

// HandleReset wipes a session back to defaults.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req FlushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode reset request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	state, err := h.svc.Reset(r.Context(), req.UserID)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	log.Info("Session reset", "user_id", req.UserID)
	respondJSON(w, http.StatusOK, NewStateView(state))
}

// StateView is the wire shape of a session aggregate.
type StateView struct {
	UserID       string            `json:"user_id"`
	Energy       EnergyView        `json:"energy"`
	Boosters     []BoosterView     `json:"daily_boosters"`
	Upgrades     []UpgradeView     `json:"upgrades"`
	DisplayTotal int64             `json:"display_total"`
	Unsynced     int64             `json:"unsynced_coins"`
	TotalTaps    int64             `json:"total_taps"`
	Autobot      bool              `json:"autobot_active"`
	LastActive   time.Time         `json:"last_active"`
}

// EnergyView is the wire shape of the energy pool.
type EnergyView struct {
	Current            float64 `json:"current"`
	Max                int     `json:"max"`
	RechargeIntervalMs int64   `json:"recharge_interval_ms"`
}

// BoosterView is the wire shape of one daily booster.
type BoosterView struct {
	Kind      string     `json:"kind"`
	UsesLeft  int        `json:"uses_left"`
	IsActive  bool       `json:"is_active"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	ResetTime *time.Time `json:"reset_time,omitempty"`
}

// UpgradeView is the wire shape of one permanent upgrade track.
type UpgradeView struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	Status      string `json:"status"`
}

// NewStateView flattens a session aggregate for the wire. Maps become
// stably ordered slices so clients and tests see deterministic JSON.
func NewStateView(state *domain.SessionState) *StateView {
	if state == nil {
		return nil
	}

	view := &StateView{
		UserID: state.UserID,
		Energy: EnergyView{
			Current:            state.Energy.Current,
			Max:                state.Energy.Max,
			RechargeIntervalMs: state.Energy.RechargeInterval.Milliseconds(),
		},
		DisplayTotal: state.Ledger.DisplayTotal(),
		Unsynced:     state.Ledger.UnsyncedCoins,
		TotalTaps:    state.TotalTaps,
		Autobot:      state.AutobotUnlocked(),
		LastActive:   state.LastActive,
	}

	for _, kind := range domain.DailyBoosterKinds {
		b := state.DailyBoosters[kind]
		if b == nil {
			continue
		}
		view.Boosters = append(view.Boosters, BoosterView{
			Kind:      string(kind),
			UsesLeft:  b.UsesLeft,
			IsActive:  b.IsActive,
			EndTime:   b.EndTime,
			ResetTime: b.ResetTime,
		})
	}

	for _, kind := range domain.UpgradeKinds {
		up := state.Upgrades[kind]
		if up == nil {
			continue
		}
		view.Upgrades = append(view.Upgrades, UpgradeView{
			Kind:        string(kind),
			DisplayName: upgrade.DisplayName(kind),
			Level:       up.Level,
			Status:      string(up.Status),
		})
	}

	return view
}
