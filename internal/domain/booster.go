package domain

import "time"

// DailyBoosterKind identifies one of the limited-use daily boosters.
type DailyBoosterKind string

const (
	// DailyBoosterTapper doubles the tap multiplier for a fixed window
	DailyBoosterTapper DailyBoosterKind = "tapper_boost"

	// DailyBoosterFullEnergy instantly refills the energy pool
	DailyBoosterFullEnergy DailyBoosterKind = "full_energy"
)

// DailyBoosterKinds lists every daily booster in a stable order.
var DailyBoosterKinds = []DailyBoosterKind{DailyBoosterTapper, DailyBoosterFullEnergy}

// KnownDailyBoosterKind reports whether kind is a recognized daily booster.
func KnownDailyBoosterKind(kind DailyBoosterKind) bool {
	for _, k := range DailyBoosterKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DailyBooster tracks the use counter and timers for one daily booster.
// Invariants: IsActive implies EndTime is set and in the future; UsesLeft == 0
// implies ResetTime is set; the daily reset fires exactly once, refilling
// UsesLeft and clearing ResetTime.
type DailyBooster struct {
	Kind      DailyBoosterKind `json:"kind"`
	UsesLeft  int              `json:"uses_left"`
	IsActive  bool             `json:"is_active"`
	EndTime   *time.Time       `json:"end_time,omitempty"`
	ResetTime *time.Time       `json:"reset_time,omitempty"`
}

// NewDailyBooster returns a booster with all daily uses available.
func NewDailyBooster(kind DailyBoosterKind) *DailyBooster {
	return &DailyBooster{
		Kind:     kind,
		UsesLeft: DailyBoosterMaxUses,
	}
}

// BoosterCatalogEntry is one row of the remote extra-boosters catalog that
// seeds the permanent upgrade tracker. Level is a string because the remote
// API reports "-" for binary unlocks.
type BoosterCatalogEntry struct {
	BoosterID   int    `json:"booster_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level"`
	Status      string `json:"status"`
	UpgradeCost int64  `json:"upgrade_cost"`
	Effect      string `json:"effect"`
}
