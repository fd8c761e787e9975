package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/logger"
)

// Client talks to the remote game API that owns the authoritative coin
// ledger and the permanent booster catalog. Every call is a single
// best-effort attempt with a bounded timeout; retries are the caller's
// decision (the tap engine simply leaves pending coins for the next flush).
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a ledger client. timeout bounds every request; a sync
// that exceeds it is reported as deferred, never as lost coins.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetProfile fetches the authoritative user snapshot.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, PathProfile, "")
	if err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := c.do(req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SyncCoins posts a pending coin delta and returns the confirmed total.
// The idempotency key lets the server deduplicate a delta that was applied
// but whose response was lost.
func (c *Client) SyncCoins(ctx context.Context, delta int64, idempotencyKey string) (int64, error) {
	path := PathUpdateCoins + "?coins=" + url.QueryEscape(strconv.FormatInt(delta, 10))
	req, err := c.newRequest(ctx, http.MethodPost, path, idempotencyKey)
	if err != nil {
		return 0, err
	}

	var resp struct {
		TotalCoins int64 `json:"total_coins"`
	}
	if err := c.do(req, &resp); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCoinSyncFailed, "delta", delta, "error", err)
		return 0, err
	}

	logger.FromContext(ctx).Debug(LogMsgCoinSyncApplied, "delta", delta, "total", resp.TotalCoins)
	return resp.TotalCoins, nil
}

// GetBoosterCatalog lists the purchasable permanent upgrades that seed the
// upgrade tracker.
func (c *Client) GetBoosterCatalog(ctx context.Context) ([]domain.BoosterCatalogEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, PathBoosterCatalog, "")
	if err != nil {
		return nil, err
	}

	var entries []domain.BoosterCatalogEntry
	if err := c.do(req, &entries); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgCatalogFetched, "count", len(entries))
	return entries, nil
}

// UpgradeBooster asks the server to increment one booster's level. The
// caller re-fetches the catalog afterwards instead of trusting an optimistic
// local increment.
func (c *Client) UpgradeBooster(ctx context.Context, boosterID int) error {
	path := PathUpgradeBooster + strconv.Itoa(boosterID)
	req, err := c.newRequest(ctx, http.MethodPut, path, "")
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(ErrMsgRequestFailed, domain.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode >= 300:
		return fmt.Errorf(ErrMsgUpgradeStatusFailed, domain.ErrUpgradeFailed, resp.StatusCode)
	}

	logger.FromContext(ctx).Info(LogMsgUpgradeRequested, "booster_id", boosterID)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, idempotencyKey string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBuildRequestFailed, err)
	}
	if c.token != "" {
		req.Header.Set(HeaderAuthorization, BearerPrefix+c.token)
	}
	if idempotencyKey != "" {
		req.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(ErrMsgRequestFailed, domain.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode >= 300:
		return fmt.Errorf(ErrMsgUnexpectedStatus, domain.ErrLedgerUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(ErrMsgDecodeFailed, err)
	}
	return nil
}
