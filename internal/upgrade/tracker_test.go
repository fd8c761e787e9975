package upgrade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelins/tapcore/internal/domain"
)

func newTestTracker() *Tracker {
	upgrades := make(map[domain.UpgradeKind]*domain.PermanentUpgrade, len(domain.UpgradeKinds))
	for _, kind := range domain.UpgradeKinds {
		upgrades[kind] = domain.NewPermanentUpgrade(kind)
	}
	return NewTracker(upgrades)
}

func TestApplyUpdatesDerivedEffects(t *testing.T) {
	tracker := newTestTracker()

	tracker.Apply(domain.UpgradeTapBoost, 3)
	tracker.Apply(domain.UpgradeMaxEnergy, 2)
	tracker.Apply(domain.UpgradeRechargeSpeed, 4)
	tracker.Apply(domain.UpgradeAutobot, 1)

	assert.Equal(t, 3, tracker.TapLevel())
	assert.Equal(t, 2000, tracker.MaxEnergy())
	assert.Equal(t, 1000*time.Millisecond, tracker.RechargeInterval())
	assert.True(t, tracker.AutobotUnlocked())
}

func TestRechargeIntervalClampsAtTopTier(t *testing.T) {
	tracker := newTestTracker()

	tracker.Apply(domain.UpgradeRechargeSpeed, 99)

	assert.Equal(t, 500*time.Millisecond, tracker.RechargeInterval())
}

func TestApplyNotifiesListeners(t *testing.T) {
	tracker := newTestTracker()
	var seen []domain.UpgradeKind
	tracker.OnChange(func(kind domain.UpgradeKind) {
		seen = append(seen, kind)
	})

	tracker.Apply(domain.UpgradeMaxEnergy, 1)
	tracker.Apply(domain.UpgradeTapBoost, 2)

	assert.Equal(t, []domain.UpgradeKind{domain.UpgradeMaxEnergy, domain.UpgradeTapBoost}, seen)
}

func TestApplyUnknownKindIgnored(t *testing.T) {
	tracker := newTestTracker()
	notified := false
	tracker.OnChange(func(domain.UpgradeKind) { notified = true })

	tracker.Apply(domain.UpgradeKind("jetpack"), 5)

	assert.False(t, notified)
	assert.Equal(t, 0, tracker.TapLevel())
}

func TestApplyOnLoadSeedsWithoutNotifying(t *testing.T) {
	tracker := newTestTracker()
	notified := false
	tracker.OnChange(func(domain.UpgradeKind) { notified = true })

	tracker.ApplyOnLoad([]domain.BoosterCatalogEntry{
		{BoosterID: 1, Name: "Boost", Effect: "boost", Level: "2", Status: "owned"},
		{BoosterID: 2, Name: "Multiplier", Effect: "multiplier", Level: "1", Status: "owned"},
		{BoosterID: 3, Name: "Auto-Bot Tapping", Effect: "Auto-Bot Tapping", Level: "-", Status: "owned"},
		{BoosterID: 4, Name: "Warp Drive", Effect: "warp drive", Level: "9", Status: "owned"},
	})

	assert.False(t, notified)
	assert.Equal(t, 2, tracker.TapLevel())
	assert.Equal(t, 1500, tracker.MaxEnergy())
	assert.True(t, tracker.AutobotUnlocked())
}

func TestParseCatalogEntry(t *testing.T) {
	tests := []struct {
		name      string
		entry     domain.BoosterCatalogEntry
		wantKind  domain.UpgradeKind
		wantLevel int
		wantOK    bool
	}{
		{
			name:      "levelled track",
			entry:     domain.BoosterCatalogEntry{Effect: "recharging speed", Level: "3", Status: "owned"},
			wantKind:  domain.UpgradeRechargeSpeed,
			wantLevel: 3,
			wantOK:    true,
		},
		{
			name:      "binary unlock owned",
			entry:     domain.BoosterCatalogEntry{Effect: "auto-bot tapping", Level: "-", Status: "owned"},
			wantKind:  domain.UpgradeAutobot,
			wantLevel: 1,
			wantOK:    true,
		},
		{
			name:      "binary unlock not owned",
			entry:     domain.BoosterCatalogEntry{Effect: "auto-bot tapping", Level: "-", Status: "not-owned"},
			wantKind:  domain.UpgradeAutobot,
			wantLevel: 0,
			wantOK:    true,
		},
		{
			name:   "falls back to name when effect is empty",
			entry:  domain.BoosterCatalogEntry{Name: "Boost", Level: "1", Status: "owned"},
			wantOK: true, wantKind: domain.UpgradeTapBoost, wantLevel: 1,
		},
		{
			name:   "unknown effect",
			entry:  domain.BoosterCatalogEntry{Effect: "teleport", Level: "1"},
			wantOK: false,
		},
		{
			name:   "garbage level",
			entry:  domain.BoosterCatalogEntry{Effect: "boost", Level: "three"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, level, ok := parseCatalogEntry(tt.entry)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantKind, kind)
				assert.Equal(t, tt.wantLevel, level)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Recharging Speed", DisplayName(domain.UpgradeRechargeSpeed))
	assert.Equal(t, "Boost", DisplayName(domain.UpgradeTapBoost))
}
