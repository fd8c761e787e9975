package domain

import "time"

// =============================================================================
// Energy Constants
// =============================================================================

const (
	// BaseMaxEnergy is the energy cap for a fresh session with no upgrades
	BaseMaxEnergy = 1000

	// MaxEnergyPerLevel is the cap increase granted by each max-energy upgrade level
	MaxEnergyPerLevel = 500

	// MaxRechargeLevel is the highest recharge-speed tier
	MaxRechargeLevel = 5
)

// RechargeIntervals maps recharge-speed tier to the time needed to regenerate
// one unit of energy. Index 0 is the slowest (unupgraded) tier.
var RechargeIntervals = [MaxRechargeLevel + 1]time.Duration{
	3000 * time.Millisecond,
	2500 * time.Millisecond,
	2000 * time.Millisecond,
	1500 * time.Millisecond,
	1000 * time.Millisecond,
	500 * time.Millisecond,
}

// =============================================================================
// Daily Booster Constants
// =============================================================================

const (
	// DailyBoosterMaxUses is the number of activations refilled at each daily reset
	DailyBoosterMaxUses = 3

	// TapperBoostDuration is how long the tapper multiplier window stays active
	TapperBoostDuration = 20 * time.Second

	// DailyResetInterval is the delay before exhausted uses refill
	DailyResetInterval = 24 * time.Hour

	// TapperBoostMultiplier is the base multiplier while the tapper window is active
	TapperBoostMultiplier = 2
)

// =============================================================================
// Tap Engine Constants
// =============================================================================

const (
	// TapDebounceWindow rejects duplicate tap events arriving closer together than this
	TapDebounceWindow = 200 * time.Millisecond

	// FlushDelay is how long the engine coalesces taps before flushing pending coins
	FlushDelay = 1 * time.Second

	// TickInterval is the cadence of the regen, booster and autobot tickers
	TickInterval = 1 * time.Second
)
