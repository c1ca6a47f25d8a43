package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tonimelisma/notesync-go/internal/device"
	"github.com/tonimelisma/notesync-go/internal/host"
	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

// ReconcileCategories runs before task reconciliation. For every stored
// CategoryMapping it detects which side (if either)
// renamed since the mapping was last updated and propagates the rename to
// the other side. Unmapped Device categories and Host lists are then
// paired by case-insensitive name match or mirrored by creating a
// matching entry on the other side.
func ReconcileCategories(ctx context.Context, st *store.Store, dev device.Adapter, hst host.Adapter, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	deviceCats, err := dev.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("sync: listing device categories: %w", err)
	}

	hostLists, err := hst.ListLists(ctx)
	if err != nil {
		return fmt.Errorf("sync: listing host lists: %w", err)
	}

	deviceByID := make(map[string]string, len(deviceCats))
	for _, c := range deviceCats {
		deviceByID[c.ID] = c.Name
	}

	hostByID := make(map[string]string, len(hostLists))
	for _, l := range hostLists {
		hostByID[l.ID] = l.Name
	}

	mappings, err := st.AllCategories(ctx)
	if err != nil {
		return fmt.Errorf("sync: loading category mappings: %w", err)
	}

	mappedDevice := make(map[string]bool, len(mappings))
	mappedHost := make(map[string]bool, len(mappings))

	for _, m := range mappings {
		mappedDevice[m.DeviceID] = true
		mappedHost[m.HostID] = true

		currentDevice, devOK := deviceByID[m.DeviceID]
		currentHost, hostOK := hostByID[m.HostID]

		if !devOK || !hostOK {
			// One side's category/list vanished; leave the mapping as-is,
			// task-level reconciliation handles orphaned pairings.
			continue
		}

		deviceRenamed := currentDevice != m.Name
		hostRenamed := currentHost != m.Name

		switch {
		case deviceRenamed && !hostRenamed:
			if err := hst.RenameList(ctx, currentHost, currentDevice); err != nil {
				return fmt.Errorf("sync: renaming host list %q: %w", currentHost, err)
			}

			if err := st.UpdateCategoryName(ctx, m.DeviceID, m.HostID, currentDevice); err != nil {
				return err
			}
		case hostRenamed && !deviceRenamed:
			if err := dev.RenameCategory(ctx, m.DeviceID, currentHost); err != nil {
				return fmt.Errorf("sync: renaming device category %q: %w", m.DeviceID, err)
			}

			if err := st.UpdateCategoryName(ctx, m.DeviceID, m.HostID, currentHost); err != nil {
				return err
			}
		case deviceRenamed && hostRenamed:
			// Both renamed: Device wins, logged as a conflict.
			logger.Warn("category rename conflict, device wins",
				slog.String("device_id", m.DeviceID), slog.String("host_id", m.HostID),
				slog.String("device_name", currentDevice), slog.String("host_name", currentHost))

			if err := hst.RenameList(ctx, currentHost, currentDevice); err != nil {
				return fmt.Errorf("sync: renaming host list %q: %w", currentHost, err)
			}

			if err := st.LogAction(ctx, "category_rename_conflict", "", fmt.Sprintf(
				`{"device_id":%q,"host_id":%q,"winner":"device"}`, m.DeviceID, m.HostID)); err != nil {
				return err
			}

			if err := st.UpdateCategoryName(ctx, m.DeviceID, m.HostID, currentDevice); err != nil {
				return err
			}
		}
	}

	if err := pairUnmappedCategories(ctx, st, dev, hst, deviceCats, hostLists, mappedDevice, mappedHost); err != nil {
		return err
	}

	return nil
}

// pairUnmappedCategories handles Device categories and Host lists that
// have no existing mapping: case-insensitive name match creates a
// mapping; otherwise a matching entry is created on the other side.
func pairUnmappedCategories(
	ctx context.Context, st *store.Store, dev device.Adapter, hst host.Adapter,
	deviceCats []device.CategoryInfo, hostLists []host.ListInfo,
	mappedDevice, mappedHost map[string]bool,
) error {
	hostByFoldedName := make(map[string]host.ListInfo, len(hostLists))
	for _, l := range hostLists {
		if !mappedHost[l.ID] {
			hostByFoldedName[task.FoldTrim(l.Name)] = l
		}
	}

	for _, c := range deviceCats {
		if mappedDevice[c.ID] {
			continue
		}

		if match, ok := hostByFoldedName[task.FoldTrim(c.Name)]; ok {
			if err := st.UpsertCategory(ctx, &store.CategoryMapping{DeviceID: c.ID, HostID: match.ID, Name: c.Name}); err != nil {
				return err
			}

			mappedHost[match.ID] = true

			continue
		}

		// No matching list exists yet. The Host adapter has no explicit
		// create-list operation: Host lists
		// are created implicitly the first time a reminder targets a
		// new list name. Host list IDs and names coincide in this
		// adapter (rename_list itself takes names, not opaque IDs), so
		// the mapping can be recorded immediately using the Device name
		// as the pending Host list identifier; the list comes into
		// existence on the first create_reminder call that targets it.
		if err := st.UpsertCategory(ctx, &store.CategoryMapping{DeviceID: c.ID, HostID: c.Name, Name: c.Name}); err != nil {
			return err
		}
	}

	for _, l := range hostLists {
		if mappedHost[l.ID] {
			continue
		}

		newID, err := dev.CreateCategory(ctx, l.Name)
		if err != nil {
			return fmt.Errorf("sync: creating device category %q: %w", l.Name, err)
		}

		if err := st.UpsertCategory(ctx, &store.CategoryMapping{DeviceID: newID, HostID: l.ID, Name: l.Name}); err != nil {
			return err
		}
	}

	return nil
}
