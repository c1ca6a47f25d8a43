package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// Record is a persisted SyncRecord: the triple binding a sync_id to a
// Host ID and a Device ID plus the content hash last agreed upon.
type Record struct {
	SyncID         string
	HostID         string // empty if unpaired on Host
	DeviceID       string // empty if unpaired on Device
	LastSyncedHash string
	LastSyncTime   int64 // unix seconds
	SourceSystem   task.SourceSystem
}

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	var r Record

	var hostID, deviceID sql.NullString

	if err := row.Scan(&r.SyncID, &hostID, &deviceID, &r.LastSyncedHash, &r.LastSyncTime, &r.SourceSystem); err != nil {
		return nil, err
	}

	r.HostID = hostID.String
	r.DeviceID = deviceID.String

	return &r, nil
}

const recordColumns = "sync_id, host_id, device_id, last_synced_hash, last_sync_time, source_system"

// GetBySyncID returns the record with the given sync_id, or nil if none
// exists.
func (s *Store) GetBySyncID(ctx context.Context, syncID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM sync_records WHERE sync_id = ?", syncID)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: get by sync_id: %w", err)
	}

	return r, nil
}

// GetByHostID returns the record paired to the given Host ID, or nil.
func (s *Store) GetByHostID(ctx context.Context, hostID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM sync_records WHERE host_id = ?", hostID)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: get by host_id: %w", err)
	}

	return r, nil
}

// GetByDeviceID returns the record paired to the given Device ID, or nil.
func (s *Store) GetByDeviceID(ctx context.Context, deviceID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM sync_records WHERE device_id = ?", deviceID)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: get by device_id: %w", err)
	}

	return r, nil
}

// Upsert atomically inserts or replaces the record keyed by sync_id.
func (s *Store) Upsert(ctx context.Context, r *Record) error {
	var hostID, deviceID sql.NullString
	if r.HostID != "" {
		hostID = sql.NullString{String: r.HostID, Valid: true}
	}

	if r.DeviceID != "" {
		deviceID = sql.NullString{String: r.DeviceID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_records (sync_id, host_id, device_id, last_synced_hash, last_sync_time, source_system)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(sync_id) DO UPDATE SET
			host_id = excluded.host_id,
			device_id = excluded.device_id,
			last_synced_hash = excluded.last_synced_hash,
			last_sync_time = excluded.last_sync_time,
			source_system = excluded.source_system
	`, r.SyncID, hostID, deviceID, r.LastSyncedHash, r.LastSyncTime, r.SourceSystem)
	if err != nil {
		return fmt.Errorf("store: upsert record %q: %w", r.SyncID, err)
	}

	return nil
}

// Delete removes the record with the given sync_id. Deletion is permitted
// once either indexed field becomes permanently orphaned (both sides gone).
func (s *Store) Delete(ctx context.Context, syncID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sync_records WHERE sync_id = ?", syncID); err != nil {
		return fmt.Errorf("store: delete record %q: %w", syncID, err)
	}

	return nil
}

// AllRecords returns every sync record currently stored.
func (s *Store) AllRecords(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM sync_records")
	if err != nil {
		return nil, fmt.Errorf("store: listing records: %w", err)
	}
	defer rows.Close()

	var out []*Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scanning record: %w", err)
		}

		out = append(out, r)
	}

	return out, rows.Err()
}

// Stats reports how many records are paired on each side only, or both.
type Stats struct {
	HostOnly   int
	DeviceOnly int
	Both       int
}

// Stats computes the current partition of sync records.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.AllRecords(ctx)
	if err != nil {
		return nil, err
	}

	var st Stats

	for _, r := range records {
		switch {
		case r.HostID != "" && r.DeviceID != "":
			st.Both++
		case r.HostID != "":
			st.HostOnly++
		case r.DeviceID != "":
			st.DeviceOnly++
		}
	}

	return &st, nil
}
