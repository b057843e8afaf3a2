package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dailyquest/internal/storage"
)

type PurchaseResult struct {
	Player *storage.Player
	Item   *storage.Item
	// InsufficientFunds and NotEligible are pre-mutation checks; when either
	// is set nothing was charged or credited.
	InsufficientFunds bool
	NotEligible       bool
	// Gate carries the refusal when NotEligible is set.
	Gate *EliteGateError
}

type RenameResult struct {
	Player *storage.Player
}

// Purchase buys one unit of a catalog item. Restricted types (weapons, name
// changes) require elite status; both gates run before any mutation. The
// charge is a guarded gold decrement, so two racing purchases cannot
// overdraw. Armour entries get a fresh 14-day expiry on every purchase.
func (s *Service) Purchase(ctx context.Context, playerID, itemID int64) (*PurchaseResult, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d not found", itemID)
	}
	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if gate := eliteGate(item, p); gate != nil {
		return &PurchaseResult{Player: p, Item: item, NotEligible: true, Gate: gate}, nil
	}

	now := s.now()
	insufficient := false
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		paid, err := s.players.SpendGold(ctx, tx, playerID, item.Cost)
		if err != nil {
			return err
		}
		if !paid {
			insufficient = true
			return nil
		}
		var expiresAt *time.Time
		if ItemType(item.Type) == ItemTypeArmour {
			e := now.Add(ArmourLifetime)
			expiresAt = &e
		}
		return s.inventory.Add(ctx, tx, playerID, item.ID, 1, expiresAt)
	})
	if err != nil {
		return nil, err
	}

	p, err = s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &PurchaseResult{Player: p, Item: item, InsufficientFunds: insufficient}, nil
}

// UseNameScroll consumes a name_change or name_restore item. A change sets
// the given name; a restore returns the player to their signup name.
func (s *Service) UseNameScroll(ctx context.Context, playerID, entryID int64, newName string) (*RenameResult, error) {
	entry, err := s.inventory.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.PlayerID != playerID {
		return nil, fmt.Errorf("inventory entry %d not found", entryID)
	}
	item, err := s.items.Get(ctx, entry.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d not found", entry.ItemID)
	}
	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var name string
	switch ItemType(item.Type) {
	case ItemTypeNameChange:
		name = strings.TrimSpace(newName)
		if name == "" {
			return nil, errors.New("new name is required")
		}
	case ItemTypeNameRestore:
		name = p.SignupName
	default:
		return nil, fmt.Errorf("item %q is not a name scroll", item.Name)
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		consumed, err := s.inventory.ConsumeOne(ctx, tx, entryID, playerID)
		if err != nil {
			return err
		}
		if !consumed {
			return fmt.Errorf("inventory entry %d has no charges", entryID)
		}
		return s.players.Rename(ctx, tx, playerID, name)
	})
	if err != nil {
		return nil, err
	}

	p, err = s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &RenameResult{Player: p}, nil
}
