// Package store implements the persistent Sync-State Store: sync records
// pairing Device and Host task IDs with the last-agreed content hash, an
// append-only audit log, and category/list name mappings.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Store is a durable, single-writer sync-state store backed by SQLite.
// Concurrent access from multiple sync processes is not supported; the
// store assumes a single writer, enforced here by capping the pool to one
// connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the sync-state database at path and applies any
// pending schema migrations. A corrupt database or failed migration is a
// fatal error — this store never silently drops data.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := setPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// setPragmas configures WAL journaling and foreign key enforcement.
func setPragmas(ctx context.Context, db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("store: applying %q: %w", pragma, err)
		}
	}

	return nil
}
