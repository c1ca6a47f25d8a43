package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/tonimelisma/notesync-go/internal/device"
	"github.com/tonimelisma/notesync-go/internal/host"
	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

// execute dispatches one action to the appropriate adapter, then upserts
// the sync record with the new content hash and current timestamp. Record
// upserts happen immediately after the store mutation for that single
// task, never batched across tasks, so a crash mid-run leaves the store
// consistent with actions actually performed.
//
// Category names are not translated here: ReconcileCategories runs before
// any task action and guarantees Device category names and Host list
// names already agree for every mapped pair, so t.Category is already
// correct for the target store.
func execute(ctx context.Context, st *store.Store, dev device.Adapter, hst host.Adapter, a Action, now time.Time) error {
	t := a.Task

	switch a.Target {
	case TargetDevice:
		return executeOnDevice(ctx, st, dev, a, t, now)
	case TargetHost:
		return executeOnHost(ctx, st, hst, a, t, now)
	default:
		return fmt.Errorf("sync: unknown action target %q", a.Target)
	}
}

func executeOnDevice(ctx context.Context, st *store.Store, dev device.Adapter, a Action, t *task.Task, now time.Time) error {
	switch a.Kind {
	case ActionCreate:
		id, err := dev.CreateTask(ctx, t)
		if err != nil {
			return err
		}

		t.DeviceID = id
	case ActionUpdate:
		if err := dev.UpdateTask(ctx, t); err != nil {
			return err
		}
	case ActionDelete:
		if err := dev.DeleteTask(ctx, t.DeviceID, true); err != nil {
			return err
		}

		return st.Delete(ctx, a.SyncID)
	}

	return st.Upsert(ctx, &store.Record{
		SyncID:         a.SyncID,
		HostID:         t.HostID,
		DeviceID:       t.DeviceID,
		LastSyncedHash: task.ContentHash(t),
		LastSyncTime:   now.Unix(),
		SourceSystem:   sourceSystemFor(t),
	})
}

func executeOnHost(ctx context.Context, st *store.Store, hst host.Adapter, a Action, t *task.Task, now time.Time) error {
	switch a.Kind {
	case ActionCreate:
		id, err := hst.CreateReminder(ctx, t)
		if err != nil {
			return err
		}

		t.HostID = id
	case ActionUpdate:
		if err := hst.UpdateReminder(ctx, t); err != nil {
			return err
		}
	case ActionDelete:
		if err := hst.DeleteReminder(ctx, t.HostID); err != nil {
			return err
		}

		return st.Delete(ctx, a.SyncID)
	}

	return st.Upsert(ctx, &store.Record{
		SyncID:         a.SyncID,
		HostID:         t.HostID,
		DeviceID:       t.DeviceID,
		LastSyncedHash: task.ContentHash(t),
		LastSyncTime:   now.Unix(),
		SourceSystem:   sourceSystemFor(t),
	})
}

func sourceSystemFor(t *task.Task) task.SourceSystem {
	switch {
	case t.HostID != "" && t.DeviceID != "":
		return task.SourceBoth
	case t.HostID != "":
		return task.SourceHost
	default:
		return task.SourceDevice
	}
}
