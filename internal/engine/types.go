package engine

import "time"

type ItemType string

const (
	ItemTypeWeapon      ItemType = "weapon"
	ItemTypeArmour      ItemType = "armour"
	ItemTypePotion      ItemType = "potion"
	ItemTypeNameChange  ItemType = "name_change"
	ItemTypeNameRestore ItemType = "name_restore"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmour, ItemTypePotion, ItemTypeNameChange, ItemTypeNameRestore:
		return true
	default:
		return false
	}
}

// Restricted reports whether purchasing this item type requires elite status.
func (t ItemType) Restricted() bool {
	return t == ItemTypeWeapon || t == ItemTypeNameChange
}

const (
	// TaskRewardGold and TaskRewardXP are granted per completed task while
	// under the daily cap.
	TaskRewardGold = 10
	TaskRewardXP   = 5

	// DailyTaskCap bounds rewarded completions per day independently of how
	// many tasks the player lists.
	DailyTaskCap = 10

	// EliteSlots is the number of first-to-finish elite positions.
	EliteSlots = 3

	// StartingGold is credited at signup.
	StartingGold = 100

	// ArmourLifetime is how long a purchased armour piece protects. Buying
	// the same piece again restarts the clock.
	ArmourLifetime = 14 * 24 * time.Hour

	// DailyResetHour is the wall-clock hour of the daily boundary in
	// DefaultResetZone.
	DailyResetHour   = 17
	DefaultResetZone = "Europe/Berlin"
)
