package domain

import "time"

// EnergyState is the consumable resource gating taps.
// Current is fractional because regeneration credits continuously; display
// code floors it. Invariant: 0 <= Current <= Max.
type EnergyState struct {
	Current          float64       `json:"current"`
	Max              int           `json:"max"`
	RechargeInterval time.Duration `json:"recharge_interval"`
	LastUpdate       time.Time     `json:"last_update"`
}

// NewEnergyState returns a full energy pool at the base cap.
func NewEnergyState(now time.Time) EnergyState {
	return EnergyState{
		Current:          BaseMaxEnergy,
		Max:              BaseMaxEnergy,
		RechargeInterval: RechargeIntervals[0],
		LastUpdate:       now,
	}
}

// RechargeIntervalForLevel maps a recharge-speed upgrade level to its interval.
// Levels above the top tier clamp to the fastest interval.
func RechargeIntervalForLevel(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level > MaxRechargeLevel {
		level = MaxRechargeLevel
	}
	return RechargeIntervals[level]
}

// MaxEnergyForLevel maps a max-energy upgrade level to the energy cap.
func MaxEnergyForLevel(level int) int {
	if level < 0 {
		level = 0
	}
	return BaseMaxEnergy + level*MaxEnergyPerLevel
}
