package store

import (
	"context"
	"fmt"
)

// ClearAll deletes every sync record, category mapping, and log entry,
// resetting the store to the state of a freshly migrated, empty database.
// It backs the `clear-state` CLI command: the next sync run
// after a clear treats every Device/Host task as new and re-pairs from
// scratch by title.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: beginning clear transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sync_log", "category_mappings", "sync_records"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("store: clearing %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'sync_log'"); err != nil {
		s.logger.Debug("no sqlite_sequence row to reset for sync_log", "error", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing clear: %w", err)
	}

	s.logger.Info("cleared all sync state")

	return nil
}
