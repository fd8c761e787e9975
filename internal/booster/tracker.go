package booster

import (
	"time"

	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/energy"
)

// Tracker owns the two limited-use daily boosts for one session: the timed
// tapper multiplier and the instant full-energy refill. Activation is a
// user-facing affordance, so failed preconditions are a silent no-op rather
// than an error. Expiry and the 24h refill are applied by Tick, which the
// scheduler drives once per second; both transitions are idempotent so a
// regen tick and an expiry landing in the same second can run in either order.
type Tracker struct {
	boosters map[domain.DailyBoosterKind]*domain.DailyBooster
	energy   *energy.Store
}

// NewTracker wraps the daily booster state held by a session aggregate.
func NewTracker(boosters map[domain.DailyBoosterKind]*domain.DailyBooster, energyStore *energy.Store) *Tracker {
	return &Tracker{boosters: boosters, energy: energyStore}
}

// Get returns the tracked booster for kind, or nil for unknown kinds.
func (t *Tracker) Get(kind domain.DailyBoosterKind) *domain.DailyBooster {
	return t.boosters[kind]
}

// Activate consumes one use of the given booster. It reports whether state
// changed; preconditions failing (no uses left, tapper already active,
// unknown kind) leave all state untouched.
func (t *Tracker) Activate(kind domain.DailyBoosterKind, now time.Time) bool {
	b := t.boosters[kind]
	if b == nil || b.UsesLeft <= 0 {
		return false
	}

	switch kind {
	case domain.DailyBoosterTapper:
		if b.IsActive {
			// no re-entrancy inside the active window
			return false
		}
		end := now.Add(domain.TapperBoostDuration)
		b.IsActive = true
		b.EndTime = &end
	case domain.DailyBoosterFullEnergy:
		t.energy.Fill(now)
	default:
		return false
	}

	b.UsesLeft--
	if b.UsesLeft == 0 && b.ResetTime == nil {
		reset := now.Add(domain.DailyResetInterval)
		b.ResetTime = &reset
	}
	return true
}

// TapperActive reports whether the tapper multiplier window covers now.
func (t *Tracker) TapperActive(now time.Time) bool {
	b := t.boosters[domain.DailyBoosterTapper]
	return b != nil && b.IsActive && b.EndTime != nil && now.Before(*b.EndTime)
}

// Multiplier is the daily-booster contribution to the tap multiplier:
// 2 while the tapper window is active, 1 otherwise.
func (t *Tracker) Multiplier(now time.Time) int {
	if t.TapperActive(now) {
		return domain.TapperBoostMultiplier
	}
	return 1
}

// Tick expires finished boost windows and applies due daily resets. It
// returns true when any state changed, so the caller knows to persist.
// Each transition fires exactly once: expiry clears EndTime and the reset
// clears ResetTime.
func (t *Tracker) Tick(now time.Time) bool {
	changed := false
	for _, b := range t.boosters {
		if b.IsActive && b.EndTime != nil && !now.Before(*b.EndTime) {
			b.IsActive = false
			b.EndTime = nil
			changed = true
		}
		if b.UsesLeft == 0 && b.ResetTime != nil && !now.Before(*b.ResetTime) {
			b.UsesLeft = domain.DailyBoosterMaxUses
			b.ResetTime = nil
			changed = true
		}
	}
	return changed
}

// Rehydrate corrects state loaded from the store: deadlines that passed
// while the session was offline are applied once instead of scheduling
// negative-delay timers, and an active flag without a deadline is cleared.
func (t *Tracker) Rehydrate(now time.Time) bool {
	changed := t.Tick(now)
	for _, b := range t.boosters {
		if b.IsActive && b.EndTime == nil {
			b.IsActive = false
			changed = true
		}
	}
	return changed
}
