package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tonimelisma/notesync-go/internal/device"
	"github.com/tonimelisma/notesync-go/internal/host"
	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

// Engine orchestrates one sync run: category reconciliation, task fetch,
// deduplication, pairing, conflict resolution, and action execution. It
// is single-threaded and synchronous: there are no suspension points
// beyond blocking I/O to the two external stores.
type Engine struct {
	store  *store.Store
	device device.Adapter
	host   host.Adapter
	cfg    Config
	logger *slog.Logger

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

// NewEngine creates an Engine. cfg is validated before use.
func NewEngine(st *store.Store, dev device.Adapter, hst host.Adapter, cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", task.ErrConfiguration, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{store: st, device: dev, host: hst, cfg: cfg, logger: logger, now: time.Now}, nil
}

// RunOnce executes a single synchronous sync pipeline: categories → tasks
// fetch → dedup → pair → resolve → execute → persist. When dryRun is true,
// no mutation reaches either store or the sync-state store; the returned
// Result reports what would have happened.
func (e *Engine) RunOnce(ctx context.Context, dryRun bool) (*Result, error) {
	now := e.now()

	if !dryRun {
		if err := ReconcileCategories(ctx, e.store, e.device, e.host, e.logger); err != nil {
			return nil, fmt.Errorf("sync: category reconciliation: %w", err)
		}
	}

	hostTasks, err := e.host.ListReminders(ctx, e.cfg.SyncCompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("sync: loading host reminders: %w", err)
	}

	deviceTasks, err := e.device.ListTasks(ctx, "", e.cfg.SyncCompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("sync: loading device tasks: %w", err)
	}

	result := &Result{DryRun: dryRun}

	if e.cfg.DedupeRepeatingTasks {
		var deduped int

		hostTasks, deduped = DedupHostTasks(hostTasks)
		result.Deduped = deduped
	}

	records, err := e.store.AllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync: loading sync records: %w", err)
	}

	pairResult := Pair(hostTasks, deviceTasks, records, e.cfg, now)
	result.NoChange += pairResult.NoChange
	result.ConflictsResolved += pairResult.ConflictsResolved

	if !dryRun {
		for _, r := range pairResult.ImmediateRecords {
			if err := e.store.Upsert(ctx, r); err != nil {
				return nil, fmt.Errorf("sync: persisting bootstrap record: %w", err)
			}
		}
	}

	for _, a := range pairResult.Actions {
		// Cancellation takes effect between actions, never mid-action, so
		// the record upsert paired with each store mutation always lands.
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if dryRun {
			tally(result, a)
			continue
		}

		if err := execute(ctx, e.store, e.device, e.host, a, now); err != nil {
			result.Errors = append(result.Errors, ActionError{Action: a, Err: err})
			continue
		}

		tally(result, a)
	}

	if !dryRun {
		details, _ := json.Marshal(summaryOf(result))
		if err := e.store.LogAction(ctx, "sync_complete", "", string(details)); err != nil {
			e.logger.Warn("failed to log sync_complete", slog.String("error", err.Error()))
		}
	}

	return result, nil
}

func tally(result *Result, a Action) {
	switch {
	case a.Kind == ActionCreate && a.Target == TargetHost:
		result.CreatedHost++
	case a.Kind == ActionUpdate && a.Target == TargetHost:
		result.UpdatedHost++
	case a.Kind == ActionDelete && a.Target == TargetHost:
		result.DeletedHost++
	case a.Kind == ActionCreate && a.Target == TargetDevice:
		result.CreatedDevice++
	case a.Kind == ActionUpdate && a.Target == TargetDevice:
		result.UpdatedDevice++
	case a.Kind == ActionDelete && a.Target == TargetDevice:
		result.DeletedDevice++
	}
}

func summaryOf(r *Result) map[string]int {
	return map[string]int{
		"created_host":       r.CreatedHost,
		"updated_host":       r.UpdatedHost,
		"deleted_host":       r.DeletedHost,
		"created_device":     r.CreatedDevice,
		"updated_device":     r.UpdatedDevice,
		"deleted_device":     r.DeletedDevice,
		"conflicts_resolved": r.ConflictsResolved,
		"no_change":          r.NoChange,
		"deduped":            r.Deduped,
		"errors":             len(r.Errors),
	}
}
