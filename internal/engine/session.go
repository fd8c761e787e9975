package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelins/tapcore/internal/booster"
	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/energy"
	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/upgrade"
)

// CoinSyncer is the slice of the remote ledger the engine needs to flush
// pending coins.
type CoinSyncer interface {
	SyncCoins(ctx context.Context, delta int64, idempotencyKey string) (int64, error)
}

// Session is the tap/sync engine for one user: it consumes the energy store
// and both trackers to score taps and autobot ticks, accumulates unsynced
// coins and reconciles them with the remote ledger. All methods are safe for
// concurrent use; the network call in Flush runs outside the lock so taps
// keep landing mid-flight.
type Session struct {
	mu    sync.Mutex
	state *domain.SessionState

	energy   *energy.Store
	boosters *booster.Tracker
	upgrades *upgrade.Tracker
	syncer   CoinSyncer

	lastTap  time.Time
	flushDue time.Time // zero when no flush is armed
	flushKey string    // idempotency key, kept until the delta is confirmed
	inFlight bool      // a flush network call is running
}

// NewSession builds the engine over a session aggregate. Upgrade changes
// immediately recompute the energy cap and recharge tier.
func NewSession(state *domain.SessionState, syncer CoinSyncer) *Session {
	energyStore := energy.NewStore(&state.Energy)
	upgrades := upgrade.NewTracker(state.Upgrades)

	s := &Session{
		state:    state,
		energy:   energyStore,
		boosters: booster.NewTracker(state.DailyBoosters, energyStore),
		upgrades: upgrades,
		syncer:   syncer,
	}

	upgrades.OnChange(func(kind domain.UpgradeKind) {
		switch kind {
		case domain.UpgradeMaxEnergy, domain.UpgradeRechargeSpeed:
			energyStore.Recompute(upgrades.MaxEnergy(), upgrades.RechargeInterval())
		}
	})

	return s
}

// UserID identifies the session owner.
func (s *Session) UserID() string {
	return s.state.UserID
}

// TapResult reports one scored tap.
type TapResult struct {
	CoinsEarned  int64   `json:"coins_earned"`
	Multiplier   int     `json:"multiplier"`
	EnergyLeft   float64 `json:"energy_left"`
	DisplayTotal int64   `json:"display_total"`
}

// Tap scores one tap event. inputCount is the number of simultaneous touch
// points (minimum 1). Taps are rejected with ErrNoEnergy when the pool is
// empty and with ErrTapDebounced inside the duplicate-event window; both
// leave all state untouched. Each accepted tap re-arms the coalescing flush
// deadline so bursts become one network call.
func (s *Session) Tap(inputCount int, now time.Time) (*TapResult, error) {
	if inputCount < 1 {
		inputCount = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.energy.Units() <= 0 {
		return nil, domain.ErrNoEnergy
	}
	if !s.lastTap.IsZero() && now.Sub(s.lastTap) < domain.TapDebounceWindow {
		return nil, domain.ErrTapDebounced
	}

	multiplier := s.boosters.Multiplier(now) + s.upgrades.TapLevel()
	coins := int64(inputCount) * int64(multiplier)

	s.state.Ledger.UnsyncedCoins += coins
	s.state.TotalTaps += int64(inputCount)
	s.energy.Debit(inputCount, now)
	s.state.LastActive = now

	s.lastTap = now
	s.armFlushLocked(now, true)

	return &TapResult{
		CoinsEarned:  coins,
		Multiplier:   multiplier,
		EnergyLeft:   s.state.Energy.Current,
		DisplayTotal: s.state.Ledger.DisplayTotal(),
	}, nil
}

// AutobotTick scores one background tap while the autobot is unlocked. It
// uses the same multiplier math as Tap with inputCount=1 but bypasses the
// debounce and never re-arms an already pending flush, so autobot accrual
// cannot starve the coalescing path. Returns the coins earned (0 when the
// autobot is locked).
func (s *Session) AutobotTick(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.upgrades.AutobotUnlocked() {
		return 0
	}

	multiplier := s.boosters.Multiplier(now) + s.upgrades.TapLevel()
	coins := int64(multiplier)
	s.state.Ledger.UnsyncedCoins += coins
	s.armFlushLocked(now, false)
	return coins
}

// RegenTick credits one tick of energy regeneration.
func (s *Session) RegenTick(tick time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.energy.Regen(tick, now)
}

// BoosterTick expires boost windows and applies due daily resets, returning
// true when state changed.
func (s *Session) BoosterTick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boosters.Tick(now)
}

// ActivateDailyBooster consumes one use of a daily booster, reporting
// whether state changed. Failed preconditions are a silent no-op.
func (s *Session) ActivateDailyBooster(kind domain.DailyBoosterKind, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.boosters.Activate(kind, now)
	if changed {
		s.state.LastActive = now
	}
	return changed
}

// ApplyUpgrade updates one permanent upgrade track; derived quantities
// (multiplier, cap, recharge tier, autobot) recompute immediately.
func (s *Session) ApplyUpgrade(kind domain.UpgradeKind, level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upgrades.Apply(kind, level)
}

// ApplyCatalogOnLoad seeds the upgrade tracks from the remote catalog and
// recomputes the energy envelope without change notifications.
func (s *Session) ApplyCatalogOnLoad(entries []domain.BoosterCatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upgrades.ApplyOnLoad(entries)
	s.energy.Recompute(s.upgrades.MaxEnergy(), s.upgrades.RechargeInterval())
}

// CatchUp replays the offline gap since the last persisted update: energy
// regeneration, booster deadlines that passed, and autobot accrual for the
// elapsed seconds. Returns the coins the autobot earned offline.
func (s *Session) CatchUp(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := now.Sub(s.state.Energy.LastUpdate)
	s.energy.CatchUp(now)
	s.boosters.Rehydrate(now)

	var coins int64
	if s.upgrades.AutobotUnlocked() && elapsed > 0 {
		// the boost window never survives an offline gap long enough to
		// matter, so offline accrual uses the permanent multiplier only
		multiplier := int64(1 + s.upgrades.TapLevel())
		coins = int64(elapsed/domain.TickInterval) * multiplier
		if coins > 0 {
			s.state.Ledger.UnsyncedCoins += coins
			s.armFlushLocked(now, false)
		}
	}
	s.state.LastActive = now
	return coins
}

// FlushDue reports the armed flush deadline, if any.
func (s *Session) FlushDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushDue, !s.flushDue.IsZero()
}

// PendingCoins is the locally earned delta not yet confirmed by the ledger.
func (s *Session) PendingCoins() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Ledger.UnsyncedCoins
}

// Flush sends the pending coin delta to the remote ledger. On success the
// confirmed total absorbs the flushed delta; coins earned while the call was
// in flight stay pending. On failure the delta is left intact and the
// deadline re-arms, so the next trigger (or teardown) retries with the same
// idempotency key. A no-op at zero pending.
func (s *Session) Flush(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil
	}
	pending := s.state.Ledger.UnsyncedCoins
	if pending == 0 {
		s.flushDue = time.Time{}
		s.mu.Unlock()
		return nil
	}
	if s.flushKey == "" {
		s.flushKey = uuid.NewString()
	}
	key := s.flushKey
	s.inFlight = true
	s.mu.Unlock()

	total, err := s.syncer.SyncCoins(ctx, pending, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		// coins stay pending; the worker retries on the next sweep
		s.flushDue = now.Add(domain.FlushDelay)
		logger.FromContext(ctx).Warn(LogMsgFlushDeferred, "user_id", s.state.UserID, "pending", pending, "error", err)
		return err
	}

	s.state.Ledger.AuthoritativeTotal = total
	s.state.Ledger.UnsyncedCoins -= pending
	if s.state.Ledger.UnsyncedCoins < 0 {
		s.state.Ledger.UnsyncedCoins = 0
	}
	s.flushKey = ""
	if s.state.Ledger.UnsyncedCoins == 0 {
		s.flushDue = time.Time{}
	} else {
		s.flushDue = now.Add(domain.FlushDelay)
	}
	return nil
}

// Teardown performs the final best-effort flush when a session is evicted
// or the service shuts down.
func (s *Session) Teardown(ctx context.Context, now time.Time) {
	if s.PendingCoins() == 0 {
		return
	}
	if err := s.Flush(ctx, now); err != nil {
		logger.FromContext(ctx).Warn(LogMsgTeardownFlushFailed, "user_id", s.state.UserID, "error", err)
	}
}

// Snapshot returns a deep copy of the aggregate for persistence.
func (s *Session) Snapshot() *domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotState(s.state)
}

// armFlushLocked schedules the coalescing flush. rearm moves an existing
// deadline forward (the tap path); the autobot path only arms when nothing
// is pending yet.
func (s *Session) armFlushLocked(now time.Time, rearm bool) {
	if rearm || s.flushDue.IsZero() {
		s.flushDue = now.Add(domain.FlushDelay)
	}
}

func snapshotState(st *domain.SessionState) *domain.SessionState {
	out := *st
	out.DailyBoosters = make(map[domain.DailyBoosterKind]*domain.DailyBooster, len(st.DailyBoosters))
	for kind, b := range st.DailyBoosters {
		cp := *b
		if b.EndTime != nil {
			end := *b.EndTime
			cp.EndTime = &end
		}
		if b.ResetTime != nil {
			reset := *b.ResetTime
			cp.ResetTime = &reset
		}
		out.DailyBoosters[kind] = &cp
	}
	out.Upgrades = make(map[domain.UpgradeKind]*domain.PermanentUpgrade, len(st.Upgrades))
	for kind, up := range st.Upgrades {
		cp := *up
		out.Upgrades[kind] = &cp
	}
	return &out
}
