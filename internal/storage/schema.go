package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			signup_name TEXT NOT NULL,
			gold INTEGER NOT NULL DEFAULT 0,
			lifetime_xp INTEGER NOT NULL DEFAULT 0,
			daily_level INTEGER NOT NULL DEFAULT 0,
			tasks_done_today INTEGER NOT NULL DEFAULT 0,
			immunity_expires_at DATETIME,
			elite_awarded_at DATETIME,
			reset_checkpoint DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			is_done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,

			FOREIGN KEY(player_id) REFERENCES players(id)
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			item_type TEXT NOT NULL,
			cost INTEGER NOT NULL,
			effect TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			expires_at DATETIME,

			UNIQUE(player_id, item_id),
			FOREIGN KEY(player_id) REFERENCES players(id),
			FOREIGN KEY(item_id) REFERENCES items(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_player_id ON tasks(player_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_player_id ON inventory(player_id);`,
		`CREATE INDEX IF NOT EXISTS idx_players_elite ON players(elite_awarded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
