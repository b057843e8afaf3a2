package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ResolveDBPath returns the database location, honoring the DQ_DB
// environment variable and falling back to ~/.dailyquest.db.
func ResolveDBPath() (string, error) {
	if p := os.Getenv("DQ_DB"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".dailyquest.db"), nil
}

// Open opens (creating if missing) the SQLite database at path and
// applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	// SQLite allows one writer at a time; a single pooled connection keeps
	// guarded updates serialized without SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
