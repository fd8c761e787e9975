package upgrade

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/logger"
)

// Tracker owns the four purchasable, persistent upgrade tracks and translates
// a level into its effect magnitude. Levels only move upward; the tracker
// trusts the upgrade source and does not enforce monotonicity itself.
type Tracker struct {
	upgrades  map[domain.UpgradeKind]*domain.PermanentUpgrade
	listeners []func(domain.UpgradeKind)
}

// NewTracker wraps the upgrade state held by a session aggregate.
func NewTracker(upgrades map[domain.UpgradeKind]*domain.PermanentUpgrade) *Tracker {
	return &Tracker{upgrades: upgrades}
}

// OnChange registers a listener invoked after Apply changes a track.
// Listeners are not invoked by ApplyOnLoad.
func (t *Tracker) OnChange(fn func(domain.UpgradeKind)) {
	t.listeners = append(t.listeners, fn)
}

// Apply updates one track and notifies listeners. Unknown kinds are logged
// and ignored so forward-compatible server-side additions cannot break
// initialization of the known tracks.
func (t *Tracker) Apply(kind domain.UpgradeKind, level int) {
	if !t.apply(kind, level) {
		return
	}
	for _, fn := range t.listeners {
		fn(kind)
	}
}

// ApplyOnLoad seeds every track from the remote booster catalog without
// emitting notifications. Used once at startup before listeners exist.
func (t *Tracker) ApplyOnLoad(entries []domain.BoosterCatalogEntry) {
	for _, entry := range entries {
		kind, level, ok := parseCatalogEntry(entry)
		if !ok {
			logger.Warn("Ignoring unknown booster catalog entry", "name", entry.Name, "effect", entry.Effect)
			continue
		}
		t.apply(kind, level)
	}
}

func (t *Tracker) apply(kind domain.UpgradeKind, level int) bool {
	up := t.upgrades[kind]
	if up == nil || !domain.KnownUpgradeKind(kind) {
		logger.Warn("Ignoring unknown upgrade kind", "kind", string(kind), "level", level)
		return false
	}
	up.Level = level
	if level > 0 {
		up.Status = domain.UpgradeOwned
	}
	return true
}

// Level returns the current level of a track, 0 for unknown kinds.
func (t *Tracker) Level(kind domain.UpgradeKind) int {
	if up := t.upgrades[kind]; up != nil {
		return up.Level
	}
	return 0
}

// TapLevel is the permanent addition to the tap multiplier.
func (t *Tracker) TapLevel() int {
	return t.Level(domain.UpgradeTapBoost)
}

// MaxEnergy is the energy cap derived from the max-energy track.
func (t *Tracker) MaxEnergy() int {
	return domain.MaxEnergyForLevel(t.Level(domain.UpgradeMaxEnergy))
}

// RechargeInterval is the per-unit regeneration interval derived from the
// recharge-speed track.
func (t *Tracker) RechargeInterval() time.Duration {
	return domain.RechargeIntervalForLevel(t.Level(domain.UpgradeRechargeSpeed))
}

// AutobotUnlocked reports whether the background tap generator is purchased.
func (t *Tracker) AutobotUnlocked() bool {
	up := t.upgrades[domain.UpgradeAutobot]
	return up != nil && up.Status == domain.UpgradeOwned
}

var titleCaser = cases.Title(language.English)

// DisplayName normalizes an upgrade kind for user-facing catalog rows.
func DisplayName(kind domain.UpgradeKind) string {
	return titleCaser.String(string(kind))
}

// parseCatalogEntry maps a remote catalog row onto a known upgrade track.
// The remote API reports the effect name with arbitrary casing and uses "-"
// as the level of binary unlocks.
func parseCatalogEntry(entry domain.BoosterCatalogEntry) (domain.UpgradeKind, int, bool) {
	name := strings.ToLower(strings.TrimSpace(entry.Effect))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(entry.Name))
	}
	kind := domain.UpgradeKind(name)
	if !domain.KnownUpgradeKind(kind) {
		return "", 0, false
	}

	if entry.Level == "-" || entry.Level == "" {
		// binary unlock: owned means level 1
		if strings.EqualFold(entry.Status, string(domain.UpgradeOwned)) {
			return kind, 1, true
		}
		return kind, 0, true
	}

	level, err := strconv.Atoi(strings.TrimSpace(entry.Level))
	if err != nil || level < 0 {
		return "", 0, false
	}
	return kind, level, true
}
