package ledger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelins/tapcore/internal/domain"
)

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathProfile, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get(HeaderAuthorization))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_coins": 1234, "power_limit": 1500, "level": 3, "streak": 7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	profile, err := client.GetProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1234), profile.TotalCoins)
	assert.Equal(t, 1500, profile.PowerLimit)
	assert.Equal(t, 3, profile.Level)
}

func TestSyncCoins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathUpdateCoins, r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("coins"))
		assert.Equal(t, "key-123", r.Header.Get(HeaderIdempotencyKey))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_coins": 1284}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	total, err := client.SyncCoins(context.Background(), 50, "key-123")

	require.NoError(t, err)
	assert.Equal(t, int64(1284), total)
}

func TestSyncCoinsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	_, err := client.SyncCoins(context.Background(), 50, "key-123")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLedgerUnavailable))
}

func TestSyncCoinsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 20*time.Millisecond)
	_, err := client.SyncCoins(context.Background(), 50, "key-123")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLedgerUnavailable))
}

func TestUnauthorizedMapsToDomainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "expired", time.Second)

	_, err := client.GetProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = client.GetBoosterCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = client.UpgradeBooster(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetBoosterCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathBoosterCatalog, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"booster_id": 1, "name": "Boost", "level": "2", "status": "owned", "upgrade_cost": 500, "effect": "boost"},
			{"booster_id": 4, "name": "Auto-bot Tapping", "level": "-", "status": "not-owned", "upgrade_cost": 20000, "effect": "auto-bot tapping"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	entries, err := client.GetBoosterCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].BoosterID)
	assert.Equal(t, "-", entries[1].Level)
	assert.Equal(t, int64(20000), entries[1].UpgradeCost)
}

func TestUpgradeBooster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, PathUpgradeBooster+"3", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)

	assert.NoError(t, client.UpgradeBooster(context.Background(), 3))
}

func TestUpgradeBoosterRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not enough coins", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)

	err := client.UpgradeBooster(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrUpgradeFailed)
}
