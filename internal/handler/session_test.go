package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/engine"
)

// fakeSessionService is a hand-written fake for the session service.
type fakeSessionService struct {
	tapResult *engine.TapResult
	tapErr    error

	state        *domain.SessionState
	stateErr     error
	activated    bool
	activateErr  error
	upgradeErr   error
	flushErr     error
	resetErr     error
	lastUserID   string
	lastKind     domain.DailyBoosterKind
	lastBooster  int
	lastInputCnt int
}

func (f *fakeSessionService) Tap(_ context.Context, userID string, inputCount int) (*engine.TapResult, error) {
	f.lastUserID = userID
	f.lastInputCnt = inputCount
	return f.tapResult, f.tapErr
}

func (f *fakeSessionService) ActivateBooster(_ context.Context, userID string, kind domain.DailyBoosterKind) (*domain.SessionState, bool, error) {
	f.lastUserID = userID
	f.lastKind = kind
	return f.state, f.activated, f.activateErr
}

func (f *fakeSessionService) PurchaseUpgrade(_ context.Context, userID string, boosterID int) (*domain.SessionState, error) {
	f.lastUserID = userID
	f.lastBooster = boosterID
	return f.state, f.upgradeErr
}

func (f *fakeSessionService) GetState(_ context.Context, userID string) (*domain.SessionState, error) {
	f.lastUserID = userID
	return f.state, f.stateErr
}

func (f *fakeSessionService) Flush(_ context.Context, userID string) (*domain.SessionState, error) {
	f.lastUserID = userID
	return f.state, f.flushErr
}

func (f *fakeSessionService) Reset(_ context.Context, userID string) (*domain.SessionState, error) {
	f.lastUserID = userID
	return f.state, f.resetErr
}

func (f *fakeSessionService) RegenSweep(context.Context)   {}
func (f *fakeSessionService) BoosterSweep(context.Context) {}
func (f *fakeSessionService) AutobotSweep(context.Context) {}
func (f *fakeSessionService) FlushSweep(context.Context)   {}
func (f *fakeSessionService) ActiveSessions() int          { return 0 }
func (f *fakeSessionService) Shutdown(context.Context) error {
	return nil
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleTap(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeSessionService{
			tapResult: &engine.TapResult{CoinsEarned: 6, Multiplier: 3, EnergyLeft: 997, DisplayTotal: 106},
		}
		h := NewSessionHandler(svc)

		w := postJSON(t, h.HandleTap, "/api/v1/session/tap", TapRequest{UserID: "user-1", InputCount: 2})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"coins_earned":6,"multiplier":3,"energy_left":997,"display_total":106}`, w.Body.String())
		assert.Equal(t, "user-1", svc.lastUserID)
		assert.Equal(t, 2, svc.lastInputCnt)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		h := NewSessionHandler(&fakeSessionService{})
		w := postJSON(t, h.HandleTap, "/api/v1/session/tap", TapRequest{InputCount: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "userid")
	})

	t.Run("Malformed body", func(t *testing.T) {
		h := NewSessionHandler(&fakeSessionService{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session/tap", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		h.HandleTap(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("No energy", func(t *testing.T) {
		svc := &fakeSessionService{tapErr: domain.ErrNoEnergy}
		h := NewSessionHandler(svc)
		w := postJSON(t, h.HandleTap, "/api/v1/session/tap", TapRequest{UserID: "user-1", InputCount: 1})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNoEnergyError)
	})

	t.Run("Debounced", func(t *testing.T) {
		svc := &fakeSessionService{tapErr: domain.ErrTapDebounced}
		h := NewSessionHandler(svc)
		w := postJSON(t, h.HandleTap, "/api/v1/session/tap", TapRequest{UserID: "user-1", InputCount: 1})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestHandleActivateBooster(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Activated", func(t *testing.T) {
		svc := &fakeSessionService{state: domain.NewSessionState("user-1", now), activated: true}
		h := NewSessionHandler(svc)

		w := postJSON(t, h.HandleActivateBooster, "/api/v1/session/booster/daily",
			DailyBoosterRequest{UserID: "user-1", Kind: "tapper_boost"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"activated":true`)
		assert.Equal(t, domain.DailyBoosterTapper, svc.lastKind)
	})

	t.Run("Silent no-op still returns state", func(t *testing.T) {
		svc := &fakeSessionService{state: domain.NewSessionState("user-1", now), activated: false}
		h := NewSessionHandler(svc)

		w := postJSON(t, h.HandleActivateBooster, "/api/v1/session/booster/daily",
			DailyBoosterRequest{UserID: "user-1", Kind: "full_energy"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"activated":false`)
	})

	t.Run("Unknown kind rejected by validation", func(t *testing.T) {
		h := NewSessionHandler(&fakeSessionService{})
		w := postJSON(t, h.HandleActivateBooster, "/api/v1/session/booster/daily",
			DailyBoosterRequest{UserID: "user-1", Kind: "mega_boost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown booster kind")
	})
}

func TestHandlePurchaseUpgrade(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		state := domain.NewSessionState("user-1", now)
		state.Upgrades[domain.UpgradeTapBoost].Level = 1
		state.Upgrades[domain.UpgradeTapBoost].Status = domain.UpgradeOwned
		svc := &fakeSessionService{state: state}
		h := NewSessionHandler(svc)

		w := postJSON(t, h.HandlePurchaseUpgrade, "/api/v1/session/booster/upgrade",
			UpgradeRequest{UserID: "user-1", BoosterID: 2})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, svc.lastBooster)
		assert.Contains(t, w.Body.String(), `"level":1`)
	})

	t.Run("Remote rejection", func(t *testing.T) {
		svc := &fakeSessionService{upgradeErr: domain.ErrUpgradeFailed}
		h := NewSessionHandler(svc)
		w := postJSON(t, h.HandlePurchaseUpgrade, "/api/v1/session/booster/upgrade",
			UpgradeRequest{UserID: "user-1", BoosterID: 2})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("Missing booster_id", func(t *testing.T) {
		h := NewSessionHandler(&fakeSessionService{})
		w := postJSON(t, h.HandlePurchaseUpgrade, "/api/v1/session/booster/upgrade",
			UpgradeRequest{UserID: "user-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		state := domain.NewSessionState("user-1", now)
		state.Ledger.AuthoritativeTotal = 100
		state.Ledger.UnsyncedCoins = 7
		svc := &fakeSessionService{state: state}
		h := NewSessionHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/session/state?user_id=user-1", nil)
		w := httptest.NewRecorder()
		h.HandleGetState(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"display_total":107`)
		assert.Contains(t, w.Body.String(), `"unsynced_coins":7`)

		var view StateView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Len(t, view.Boosters, len(domain.DailyBoosterKinds))
		assert.Len(t, view.Upgrades, len(domain.UpgradeKinds))

		// Upgrade rows carry a title-cased name alongside the raw kind.
		assert.Equal(t, string(domain.UpgradeRechargeSpeed), view.Upgrades[2].Kind)
		assert.Equal(t, "Recharging Speed", view.Upgrades[2].DisplayName)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		h := NewSessionHandler(&fakeSessionService{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/session/state", nil)
		w := httptest.NewRecorder()
		h.HandleGetState(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgMissingUserID)
	})
}

func TestHandleFlush(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Confirmed", func(t *testing.T) {
		svc := &fakeSessionService{state: domain.NewSessionState("user-1", now)}
		h := NewSessionHandler(svc)
		w := postJSON(t, h.HandleFlush, "/api/v1/session/flush", FlushRequest{UserID: "user-1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Deferred flush responds 202 with pending state", func(t *testing.T) {
		state := domain.NewSessionState("user-1", now)
		state.Ledger.UnsyncedCoins = 12
		svc := &fakeSessionService{state: state, flushErr: domain.ErrLedgerUnavailable}
		h := NewSessionHandler(svc)

		w := postJSON(t, h.HandleFlush, "/api/v1/session/flush", FlushRequest{UserID: "user-1"})

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"unsynced_coins":12`)
	})
}

func TestHandleReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := &fakeSessionService{state: domain.NewSessionState("user-1", now)}
	h := NewSessionHandler(svc)

	w := postJSON(t, h.HandleReset, "/api/v1/session/reset", FlushRequest{UserID: "user-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_taps":0`)
	assert.Equal(t, "user-1", svc.lastUserID)
}
