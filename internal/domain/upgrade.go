package domain

// UpgradeKind identifies one of the purchasable permanent upgrade tracks.
// The string values mirror the effect names reported by the remote booster
// catalog, so unknown kinds can be tolerated on decode.
type UpgradeKind string

const (
	// UpgradeTapBoost adds its level to the tap multiplier
	UpgradeTapBoost UpgradeKind = "boost"

	// UpgradeMaxEnergy raises the energy cap by 500 per level
	UpgradeMaxEnergy UpgradeKind = "multiplier"

	// UpgradeRechargeSpeed selects a faster regeneration tier per level
	UpgradeRechargeSpeed UpgradeKind = "recharging speed"

	// UpgradeAutobot unlocks the background tap generator
	UpgradeAutobot UpgradeKind = "auto-bot tapping"
)

// UpgradeKinds lists every known upgrade track in a stable order.
var UpgradeKinds = []UpgradeKind{UpgradeTapBoost, UpgradeMaxEnergy, UpgradeRechargeSpeed, UpgradeAutobot}

// UpgradeStatus reports whether a capped or binary upgrade has been purchased.
type UpgradeStatus string

const (
	UpgradeOwned    UpgradeStatus = "owned"
	UpgradeNotOwned UpgradeStatus = "not-owned"
)

// PermanentUpgrade is one persistent, levelled improvement. Levels only ever
// go up from the user's perspective; the tracker trusts the upgrade source.
type PermanentUpgrade struct {
	Kind   UpgradeKind   `json:"kind"`
	Level  int           `json:"level"`
	Status UpgradeStatus `json:"status"`
}

// NewPermanentUpgrade returns an unpurchased upgrade track.
func NewPermanentUpgrade(kind UpgradeKind) *PermanentUpgrade {
	return &PermanentUpgrade{Kind: kind, Status: UpgradeNotOwned}
}

// KnownUpgradeKind reports whether kind is one of the four tracked effects.
func KnownUpgradeKind(kind UpgradeKind) bool {
	switch kind {
	case UpgradeTapBoost, UpgradeMaxEnergy, UpgradeRechargeSpeed, UpgradeAutobot:
		return true
	}
	return false
}
