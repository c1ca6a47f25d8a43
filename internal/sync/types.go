// Package sync implements the sync engine: category reconciliation,
// repeating-task deduplication, old-completed filtering, three-step
// pairing, conflict resolution, and action execution against the Device
// and Host adapters, using the Sync-State Store to remember pairings
// across runs.
package sync

import (
	"github.com/tonimelisma/notesync-go/internal/task"
)

// ActionKind is the kind of mutation a SyncAction performs.
type ActionKind string

// Recognised action kinds.
const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

// ActionTarget is which store a SyncAction is applied to.
type ActionTarget string

// Recognised action targets.
const (
	TargetDevice ActionTarget = "device"
	TargetHost   ActionTarget = "host"
)

// Action is a pure value describing one mutation to apply to one store.
type Action struct {
	Kind   ActionKind
	Target ActionTarget
	Task   *task.Task
	Reason string

	// SyncID is the pairing this action belongs to; assigned before
	// execution so the executor can upsert the record immediately after
	// the store mutation succeeds.
	SyncID string
}

// ActionError records a single action's failure without aborting the run.
type ActionError struct {
	Action Action
	Err    error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return e.Err.Error()
}

// Result reports the outcome of one sync run: action counts per
// direction, conflicts resolved, no-change pairs, and errors.
type Result struct {
	CreatedHost   int
	UpdatedHost   int
	DeletedHost   int
	CreatedDevice int
	UpdatedDevice int
	DeletedDevice int

	ConflictsResolved int
	NoChange          int
	Deduped           int

	Errors []ActionError

	DryRun bool
}

// TotalChanges sums the create, update and delete counts for both sides
// (updates made by conflict resolution included); failed actions are not
// counted.
func (r *Result) TotalChanges() int {
	return r.CreatedHost + r.UpdatedHost + r.DeletedHost +
		r.CreatedDevice + r.UpdatedDevice + r.DeletedDevice
}
