package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ItemRepo reads the shop catalog. Item definitions are managed outside the
// engine; the engine only ever reads them.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, item_type, cost, effect FROM items WHERE id = ?
	`, id)
	return scanItem(row)
}

func (r *ItemRepo) GetByName(ctx context.Context, name string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, item_type, cost, effect FROM items WHERE name = ?
	`, name)
	return scanItem(row)
}

func (r *ItemRepo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, item_type, cost, effect FROM items ORDER BY cost ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("item list: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item list rows: %w", err)
	}
	return out, nil
}

// Upsert inserts a catalog item or updates it in place, keyed by name.
// Used by the seed step.
func (r *ItemRepo) Upsert(ctx context.Context, name, itemType string, cost int, effect string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (name, item_type, cost, effect) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET item_type = excluded.item_type,
			cost = excluded.cost, effect = excluded.effect
	`, name, itemType, cost, effect)
	if err != nil {
		return fmt.Errorf("item upsert: %w", err)
	}
	return nil
}

func scanItem(row scanner) (*Item, error) {
	var it Item
	if err := row.Scan(&it.ID, &it.Name, &it.Type, &it.Cost, &it.Effect); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("item scan: %w", err)
	}
	return &it, nil
}
