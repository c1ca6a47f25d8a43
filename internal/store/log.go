package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LogEntry is one row of the append-only sync_log audit trail.
type LogEntry struct {
	AutoID       int64
	TimestampSec int64
	Action       string
	SyncID       string // may be empty
	DetailsJSON  string // may be empty
}

// LogAction appends an audit-log row stamped with the current wall-clock
// time in unix seconds; the timestamp is not guaranteed to be monotonic,
// while auto_id gives the append order. syncID and details may be empty.
func (s *Store) LogAction(ctx context.Context, action, syncID, detailsJSON string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sync_log (timestamp_sec, action, sync_id, details_json) VALUES (?, ?, ?, ?)",
		time.Now().Unix(), action, toNullString(syncID), toNullString(detailsJSON))
	if err != nil {
		return fmt.Errorf("store: logging action %q: %w", action, err)
	}

	return nil
}

// RecentLogs returns up to limit log entries, most recent first.
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]*LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT auto_id, timestamp_sec, action, sync_id, details_json FROM sync_log ORDER BY auto_id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("store: reading recent logs: %w", err)
	}
	defer rows.Close()

	var out []*LogEntry

	for rows.Next() {
		var e LogEntry

		var syncID, details sql.NullString

		if err := rows.Scan(&e.AutoID, &e.TimestampSec, &e.Action, &syncID, &details); err != nil {
			return nil, fmt.Errorf("store: scanning log entry: %w", err)
		}

		e.SyncID = syncID.String
		e.DetailsJSON = details.String
		out = append(out, &e)
	}

	return out, rows.Err()
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
