package engine

import (
	"fmt"

	"dailyquest/internal/storage"
)

// EliteGateError indicates an item type that only elite players may buy.
type EliteGateError struct {
	Item ItemType
}

func (e *EliteGateError) Error() string {
	return fmt.Sprintf("item type '%s' requires elite status", e.Item)
}

// eliteGate returns the purchase refusal for restricted items when the buyer
// has not earned elite status, nil otherwise.
func eliteGate(item *storage.Item, p *storage.Player) *EliteGateError {
	if ItemType(item.Type).Restricted() && p.EliteAwardedAt == nil {
		return &EliteGateError{Item: ItemType(item.Type)}
	}
	return nil
}
