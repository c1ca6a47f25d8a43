package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CategoryMapping pairs a Device category with a Host list, tracking the
// last-known shared name so renames on either side can be detected.
type CategoryMapping struct {
	DeviceID string
	HostID   string
	Name     string
}

const categoryColumns = "device_id, host_id, name"

func scanCategory(row interface{ Scan(...any) error }) (*CategoryMapping, error) {
	var m CategoryMapping
	if err := row.Scan(&m.DeviceID, &m.HostID, &m.Name); err != nil {
		return nil, err
	}

	return &m, nil
}

// GetCategoryByDeviceID returns the mapping for a Device category ID, or nil.
func (s *Store) GetCategoryByDeviceID(ctx context.Context, deviceID string) (*CategoryMapping, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM category_mappings WHERE device_id = ?", deviceID)

	m, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: get category by device_id: %w", err)
	}

	return m, nil
}

// GetCategoryByHostID returns the mapping for a Host list ID, or nil.
func (s *Store) GetCategoryByHostID(ctx context.Context, hostID string) (*CategoryMapping, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM category_mappings WHERE host_id = ?", hostID)

	m, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: get category by host_id: %w", err)
	}

	return m, nil
}

// UpsertCategory inserts or replaces the category mapping keyed by the
// (device_id, host_id) pair.
func (s *Store) UpsertCategory(ctx context.Context, m *CategoryMapping) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_mappings (device_id, host_id, name)
		VALUES (?, ?, ?)
		ON CONFLICT(device_id, host_id) DO UPDATE SET name = excluded.name
	`, m.DeviceID, m.HostID, m.Name)
	if err != nil {
		return fmt.Errorf("store: upsert category mapping: %w", err)
	}

	return nil
}

// UpdateCategoryName updates only the tracked name for an existing mapping,
// used after a rename has been propagated to the other side.
func (s *Store) UpdateCategoryName(ctx context.Context, deviceID, hostID, name string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE category_mappings SET name = ? WHERE device_id = ? AND host_id = ?",
		name, deviceID, hostID)
	if err != nil {
		return fmt.Errorf("store: update category name: %w", err)
	}

	return nil
}

// AllCategories returns every stored category mapping.
func (s *Store) AllCategories(ctx context.Context) ([]*CategoryMapping, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM category_mappings")
	if err != nil {
		return nil, fmt.Errorf("store: listing category mappings: %w", err)
	}
	defer rows.Close()

	var out []*CategoryMapping

	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scanning category mapping: %w", err)
		}

		out = append(out, m)
	}

	return out, rows.Err()
}
