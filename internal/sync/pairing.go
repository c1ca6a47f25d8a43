package sync

import (
	"time"

	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

// PairResult is the output of the three-step pairing algorithm: the
// actions to execute, plus sync records that must be written immediately
// rather than deferred to the executor (title-bootstrap matches that
// resolved to no-op still need a fresh record so the next run is
// record-matched instead of re-bootstrapping).
type PairResult struct {
	Actions           []Action
	ImmediateRecords  []*store.Record
	ConflictsResolved int
	NoChange          int
}

// Pair runs record-based pairing, title-bootstrap matching for the
// remainder, then creation of new items for whatever is
// still unmatched. hostTasks and deviceTasks are the already
// deduplicated/filtered task lists for this run.
func Pair(hostTasks, deviceTasks []*task.Task, records []*store.Record, cfg Config, now time.Time) *PairResult {
	hostByID := indexByHostID(hostTasks)
	deviceByID := indexByDeviceID(deviceTasks)

	matchedHost := make(map[string]bool)
	matchedDevice := make(map[string]bool)

	result := &PairResult{}

	for _, r := range records {
		hostTask, hostExists := hostByID[r.HostID]
		deviceTask, deviceExists := deviceByID[r.DeviceID]

		switch {
		case hostExists && deviceExists:
			matchedHost[r.HostID] = true
			matchedDevice[r.DeviceID] = true
			applyDecision(result, r.SyncID, hostTask, deviceTask, r.LastSyncedHash, cfg, now)
		case hostExists && !deviceExists:
			// Device side vanished: the Host task must be removed too.
			matchedHost[r.HostID] = true
			result.Actions = append(result.Actions, Action{
				Kind: ActionDelete, Target: TargetHost, Task: hostTask,
				Reason: "Deleted from Device", SyncID: r.SyncID,
			})
		case !hostExists && deviceExists:
			// Host side vanished: the Device task must be removed too.
			matchedDevice[r.DeviceID] = true
			result.Actions = append(result.Actions, Action{
				Kind: ActionDelete, Target: TargetDevice, Task: deviceTask,
				Reason: "Deleted from Host", SyncID: r.SyncID,
			})
		default:
			// Both sides gone: no action is emitted and the record
			// stays in the store.
		}
	}

	bootstrapPair(hostTasks, deviceTasks, matchedHost, matchedDevice, cfg, now, result)

	for _, t := range hostTasks {
		if matchedHost[t.HostID] {
			continue
		}

		if isOldCompleted(t, false, cfg.CompletedTaskMaxAgeDays, now) {
			continue
		}

		result.Actions = append(result.Actions, Action{
			Kind: ActionCreate, Target: TargetDevice, Task: t,
			Reason: "New on Host", SyncID: task.NewSyncID(),
		})
	}

	for _, t := range deviceTasks {
		if matchedDevice[t.DeviceID] {
			continue
		}

		result.Actions = append(result.Actions, Action{
			Kind: ActionCreate, Target: TargetHost, Task: t,
			Reason: "New on Device", SyncID: task.NewSyncID(),
		})
	}

	return result
}

// bootstrapPair matches remaining unmatched tasks by unique
// case-insensitive trimmed title.
func bootstrapPair(hostTasks, deviceTasks []*task.Task, matchedHost, matchedDevice map[string]bool, cfg Config, now time.Time, result *PairResult) {
	hostByTitle := make(map[string][]*task.Task)

	for _, t := range hostTasks {
		if matchedHost[t.HostID] {
			continue
		}

		key := task.FoldTrim(t.Title)
		hostByTitle[key] = append(hostByTitle[key], t)
	}

	deviceByTitle := make(map[string][]*task.Task)

	for _, t := range deviceTasks {
		if matchedDevice[t.DeviceID] {
			continue
		}

		key := task.FoldTrim(t.Title)
		deviceByTitle[key] = append(deviceByTitle[key], t)
	}

	for key, hostGroup := range hostByTitle {
		if len(hostGroup) != 1 {
			continue
		}

		deviceGroup, ok := deviceByTitle[key]
		if !ok || len(deviceGroup) != 1 {
			continue
		}

		hostTask := hostGroup[0]
		deviceTask := deviceGroup[0]

		matchedHost[hostTask.HostID] = true
		matchedDevice[deviceTask.DeviceID] = true

		syncID := task.NewSyncID()

		decision := Resolve(hostTask, deviceTask, "", cfg, now)
		if decision.NoOp {
			result.NoChange++
			result.ImmediateRecords = append(result.ImmediateRecords, &store.Record{
				SyncID:         syncID,
				HostID:         hostTask.HostID,
				DeviceID:       deviceTask.DeviceID,
				LastSyncedHash: task.ContentHash(hostTask),
				LastSyncTime:   now.Unix(),
				SourceSystem:   task.SourceBoth,
			})

			continue
		}

		if decision.Ambiguous {
			result.ConflictsResolved++
		}

		result.Actions = append(result.Actions, Action{
			Kind: ActionUpdate, Target: decision.Target, Task: decision.Merged,
			Reason: "Title-bootstrap pairing", SyncID: syncID,
		})
	}
}

// applyDecision runs the conflict resolver for a record-matched pair and
// either counts it as no-change or appends an update action.
func applyDecision(result *PairResult, syncID string, hostTask, deviceTask *task.Task, lastHash string, cfg Config, now time.Time) {
	decision := Resolve(hostTask, deviceTask, lastHash, cfg, now)
	if decision.NoOp {
		result.NoChange++
		return
	}

	if decision.Ambiguous {
		result.ConflictsResolved++
	}

	result.Actions = append(result.Actions, Action{
		Kind: ActionUpdate, Target: decision.Target, Task: decision.Merged,
		Reason: "Conflict resolution", SyncID: syncID,
	})
}

func indexByHostID(tasks []*task.Task) map[string]*task.Task {
	m := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		if t.HostID != "" {
			m[t.HostID] = t
		}
	}

	return m
}

func indexByDeviceID(tasks []*task.Task) map[string]*task.Task {
	m := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		if t.DeviceID != "" {
			m[t.DeviceID] = t
		}
	}

	return m
}
