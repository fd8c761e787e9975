package domain

import "time"

// CoinLedger is the two-phase reconciliation state between locally earned
// coins and the remote ledger. UnsyncedCoins accumulates optimistically and
// is absorbed into AuthoritativeTotal when a flush is confirmed.
type CoinLedger struct {
	AuthoritativeTotal int64 `json:"authoritative_total"`
	UnsyncedCoins      int64 `json:"unsynced_coins"`
}

// DisplayTotal is the optimistic total shown to the user while a sync is pending.
func (l CoinLedger) DisplayTotal() int64 {
	return l.AuthoritativeTotal + l.UnsyncedCoins
}

// Absorb applies a confirmed server total, clearing the pending delta.
func (l *CoinLedger) Absorb(serverTotal int64) {
	l.AuthoritativeTotal = serverTotal
	l.UnsyncedCoins = 0
}

// SessionState is the full persisted aggregate for one user's game session.
// Every mutation is followed by a store write so a reload reconstructs the
// same state plus elapsed-time catch-up.
type SessionState struct {
	UserID        string                             `json:"user_id"`
	Energy        EnergyState                        `json:"energy"`
	DailyBoosters map[DailyBoosterKind]*DailyBooster `json:"daily_boosters"`
	Upgrades      map[UpgradeKind]*PermanentUpgrade  `json:"upgrades"`
	Ledger        CoinLedger                         `json:"ledger"`
	TotalTaps     int64                              `json:"total_taps"`
	LastActive    time.Time                          `json:"last_active"`
}

// NewSessionState returns a fresh session with default energy, full daily
// booster uses and no upgrades.
func NewSessionState(userID string, now time.Time) *SessionState {
	boosters := make(map[DailyBoosterKind]*DailyBooster, len(DailyBoosterKinds))
	for _, kind := range DailyBoosterKinds {
		boosters[kind] = NewDailyBooster(kind)
	}
	upgrades := make(map[UpgradeKind]*PermanentUpgrade, len(UpgradeKinds))
	for _, kind := range UpgradeKinds {
		upgrades[kind] = NewPermanentUpgrade(kind)
	}
	return &SessionState{
		UserID:        userID,
		Energy:        NewEnergyState(now),
		DailyBoosters: boosters,
		Upgrades:      upgrades,
		LastActive:    now,
	}
}

// Normalize fills in any entries missing from a rehydrated session, so state
// persisted by an older build keeps working after new kinds are introduced.
func (s *SessionState) Normalize(now time.Time) {
	if s.DailyBoosters == nil {
		s.DailyBoosters = make(map[DailyBoosterKind]*DailyBooster, len(DailyBoosterKinds))
	}
	for _, kind := range DailyBoosterKinds {
		if s.DailyBoosters[kind] == nil {
			s.DailyBoosters[kind] = NewDailyBooster(kind)
		}
	}
	if s.Upgrades == nil {
		s.Upgrades = make(map[UpgradeKind]*PermanentUpgrade, len(UpgradeKinds))
	}
	for _, kind := range UpgradeKinds {
		if s.Upgrades[kind] == nil {
			s.Upgrades[kind] = NewPermanentUpgrade(kind)
		}
	}
	if s.Energy.Max == 0 {
		s.Energy = NewEnergyState(now)
	}
	if s.Energy.RechargeInterval <= 0 {
		s.Energy.RechargeInterval = RechargeIntervals[0]
	}
	if s.Energy.LastUpdate.IsZero() {
		s.Energy.LastUpdate = now
	}
	if s.LastActive.IsZero() {
		s.LastActive = now
	}
}

// AutobotUnlocked reports whether the background tap generator is purchased.
func (s *SessionState) AutobotUnlocked() bool {
	up := s.Upgrades[UpgradeAutobot]
	return up != nil && up.Status == UpgradeOwned
}

// Profile is the authoritative user snapshot returned by the remote ledger.
type Profile struct {
	TotalCoins int64  `json:"total_coins"`
	PowerLimit int    `json:"power_limit"`
	Level      int    `json:"level"`
	Streak     int    `json:"streak"`
	Username   string `json:"username,omitempty"`
}
