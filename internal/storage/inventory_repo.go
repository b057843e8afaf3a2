package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Add credits quantity of an item to the player, creating the entry if
// needed. When expiresAt is non-nil (armour) the expiry is refreshed on every
// additional purchase of the same item.
func (r *InventoryRepo) Add(ctx context.Context, e Execer, playerID, itemID int64, quantity int, expiresAt *time.Time) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO inventory (player_id, item_id, quantity, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id, item_id) DO UPDATE SET
			quantity = quantity + excluded.quantity,
			expires_at = excluded.expires_at
	`, playerID, itemID, quantity, expiresAt)
	if err != nil {
		return fmt.Errorf("inventory add: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Get(ctx context.Context, id int64) (*InventoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, player_id, item_id, quantity, expires_at FROM inventory WHERE id = ?
	`, id)
	return scanInventory(row)
}

func (r *InventoryRepo) ListByPlayer(ctx context.Context, playerID int64) ([]InventoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, item_id, quantity, expires_at
		FROM inventory
		WHERE player_id = ?
		ORDER BY id ASC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	var out []InventoryEntry
	for rows.Next() {
		entry, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory list rows: %w", err)
	}
	return out, nil
}

// ConsumeOne decrements a consumable entry and removes it when it hits zero.
// Reports false when the entry was missing, not owned by the player, or
// already empty.
func (r *InventoryRepo) ConsumeOne(ctx context.Context, e Execer, id, playerID int64) (bool, error) {
	res, err := e.ExecContext(ctx, `
		UPDATE inventory SET quantity = quantity - 1
		WHERE id = ? AND player_id = ? AND quantity > 0
	`, id, playerID)
	if err != nil {
		return false, fmt.Errorf("inventory consume: %w", err)
	}
	ok, err := rowsChanged(res, "inventory consume")
	if err != nil || !ok {
		return ok, err
	}
	if _, err := e.ExecContext(ctx, `DELETE FROM inventory WHERE id = ? AND quantity <= 0`, id); err != nil {
		return false, fmt.Errorf("inventory remove empty: %w", err)
	}
	return true, nil
}

func scanInventory(row scanner) (*InventoryEntry, error) {
	var (
		entry     InventoryEntry
		expiresAt sql.NullTime
	)
	if err := row.Scan(&entry.ID, &entry.PlayerID, &entry.ItemID, &entry.Quantity, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("inventory scan: %w", err)
	}
	if expiresAt.Valid {
		v := expiresAt.Time
		entry.ExpiresAt = &v
	}
	return &entry, nil
}
