package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dailyquest/internal/storage"
)

type AttackResult struct {
	Applied           bool
	Damage            int
	BlockedByImmunity bool
}

type PotionResult struct {
	ImmunityExpiresAt time.Time
}

// ResolveAttack is the pure combat formula: protection soaks damage with a
// floor of zero, and an immune defender blocks the attack entirely.
func ResolveAttack(weaponDamage, defenderProtection int, defenderImmune bool) (applied int, blocked bool) {
	if defenderImmune {
		return 0, true
	}
	applied = weaponDamage - defenderProtection
	if applied < 0 {
		applied = 0
	}
	return applied, false
}

// Attack resolves one weapon use against a defender. The attacker chooses a
// specific inventory entry; the formula uses that weapon's damage, not the
// attacker's best one. Damage lands as a guarded decrement on the defender's
// lifetime XP (floor zero), with the immunity timestamp re-checked inside the
// same statement so a potion drunk mid-flight still blocks.
func (s *Service) Attack(ctx context.Context, attackerID, defenderID, entryID int64) (*AttackResult, error) {
	item, _, err := s.requireOwnedItem(ctx, attackerID, entryID, ItemTypeWeapon)
	if err != nil {
		return nil, err
	}
	defender, err := s.requirePlayer(ctx, defenderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	immune := defender.ImmunityExpiresAt != nil && now.Before(*defender.ImmunityExpiresAt)

	protection, err := s.EffectiveProtection(ctx, defenderID, now)
	if err != nil {
		return nil, err
	}
	damage := ParseEffect(item.Effect).WeaponDamage()
	applied, blocked := ResolveAttack(damage, protection, immune)
	if blocked {
		return &AttackResult{BlockedByImmunity: true}, nil
	}

	landed, err := s.players.ApplyDamage(ctx, defenderID, applied, now)
	if err != nil {
		return nil, err
	}
	if !landed {
		return &AttackResult{BlockedByImmunity: true}, nil
	}
	return &AttackResult{Applied: true, Damage: applied}, nil
}

// UsePotion consumes one immunity potion and stamps the expiry. No "active"
// flag exists anywhere; immunity is only ever the stored timestamp compared
// against now.
func (s *Service) UsePotion(ctx context.Context, playerID, entryID int64) (*PotionResult, error) {
	item, _, err := s.requireOwnedItem(ctx, playerID, entryID, ItemTypePotion)
	if err != nil {
		return nil, err
	}

	hours := ParseEffect(item.Effect).ImmunityHours()
	until := s.now().Add(time.Duration(hours) * time.Hour)

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		consumed, err := s.inventory.ConsumeOne(ctx, tx, entryID, playerID)
		if err != nil {
			return err
		}
		if !consumed {
			return fmt.Errorf("inventory entry %d has no charges", entryID)
		}
		return s.players.SetImmunity(ctx, tx, playerID, until)
	})
	if err != nil {
		return nil, err
	}
	return &PotionResult{ImmunityExpiresAt: until}, nil
}

// EffectiveProtection returns the defender's damage soak: the single best
// protection among armour entries that have not expired. Pieces do not stack.
func (s *Service) EffectiveProtection(ctx context.Context, playerID int64, now time.Time) (int, error) {
	entries, err := s.inventory.ListByPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}

	best := 0
	for _, entry := range entries {
		if entry.ExpiresAt != nil && !entry.ExpiresAt.After(now) {
			continue
		}
		item, err := s.items.Get(ctx, entry.ItemID)
		if err != nil {
			return 0, err
		}
		if item == nil || ItemType(item.Type) != ItemTypeArmour {
			continue
		}
		if p := ParseEffect(item.Effect).ArmourProtection(); p > best {
			best = p
		}
	}
	return best, nil
}

// BestWeapon returns the player's highest-damage weapon for display. Combat
// never uses it implicitly; attacks name a specific entry.
func (s *Service) BestWeapon(ctx context.Context, playerID int64) (*storage.Item, int, error) {
	entries, err := s.inventory.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, 0, err
	}

	var best *storage.Item
	bestDamage := -1
	for _, entry := range entries {
		item, err := s.items.Get(ctx, entry.ItemID)
		if err != nil {
			return nil, 0, err
		}
		if item == nil || ItemType(item.Type) != ItemTypeWeapon {
			continue
		}
		if d := ParseEffect(item.Effect).WeaponDamage(); d > bestDamage {
			best = item
			bestDamage = d
		}
	}
	if best == nil {
		return nil, 0, nil
	}
	return best, bestDamage, nil
}

func (s *Service) requireOwnedItem(ctx context.Context, playerID, entryID int64, want ItemType) (*storage.Item, *storage.InventoryEntry, error) {
	entry, err := s.inventory.Get(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return nil, nil, fmt.Errorf("inventory entry %d not found", entryID)
	}
	if entry.PlayerID != playerID {
		return nil, nil, fmt.Errorf("inventory entry %d does not belong to player %d", entryID, playerID)
	}
	item, err := s.items.Get(ctx, entry.ItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, fmt.Errorf("item %d not found", entry.ItemID)
	}
	if ItemType(item.Type) != want {
		return nil, nil, fmt.Errorf("item %q is not a %s", item.Name, want)
	}
	return item, entry, nil
}
