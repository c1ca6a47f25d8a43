// Package task defines the normalised to-do item shared by the Device and
// Host adapters and the sync engine, along with the pure transformation
// helpers (content hashing, priority mapping, emoji encoding) that keep
// both stores convergent.
package task

import "errors"

// Status mirrors a task's completion state in the two values the engine
// cares about; Host and Device both collapse to one of these on read.
type Status string

// Recognised status values.
const (
	StatusNeedsAction Status = "needsAction"
	StatusCompleted   Status = "completed"
)

// Priority is the normalised priority scale shared by both stores.
type Priority int

// Normalised priority levels. Only these four values are valid.
const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 5
	PriorityHigh   Priority = 9
)

// SourceSystem identifies which store(s) a SyncRecord currently pairs.
type SourceSystem string

// Recognised source systems for a SyncRecord.
const (
	SourceHost   SourceSystem = "host"
	SourceDevice SourceSystem = "device"
	SourceBoth   SourceSystem = "both"
)

// Sentinel errors matching the error kinds an adapter may report
// per-operation (NotFound and InvalidInput are recorded at the action
// level by the engine rather than aborting the run; ConfigError and
// ConnectionError are returned directly and abort the run).
var (
	ErrNotFound      = errors.New("task: not found")
	ErrInvalidInput  = errors.New("task: invalid input")
	ErrConnection    = errors.New("task: connection error")
	ErrConfiguration = errors.New("task: configuration error")
)

// DocumentLink points from a Device task to a page within a Device
// document. Host has no native slot for this; it is projected into the
// Host notes field as a readable suffix and stripped back out on ingress.
type DocumentLink struct {
	AppName  string `json:"app_name"`
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
	Page     int    `json:"page"`
	PageID   string `json:"page_id"`
}

// Task is the engine's normalised representation of a single to-do item.
// It is ephemeral per sync run: adapters construct it from store-native
// rows, the engine's conflict resolver may mutate it, and it is never
// persisted in this form — only its content hash and store-native IDs
// survive in a SyncRecord.
type Task struct {
	SyncID string

	Title     string
	Notes     string
	Category  string
	Completed bool

	CompletionDate *int64 // unix seconds, absent if nil
	DueDate        *int64
	CreatedAt      *int64
	ModifiedAt     *int64

	Priority Priority

	DeviceID string
	HostID   string

	DocumentLink *DocumentLink
}

// Status derives the {needsAction, completed} status from Completed.
func (t *Task) Status() Status {
	if t.Completed {
		return StatusCompleted
	}

	return StatusNeedsAction
}

// HasDevice reports whether this task has a known Device-native ID.
func (t *Task) HasDevice() bool { return t.DeviceID != "" }

// HasHost reports whether this task has a known Host-native ID.
func (t *Task) HasHost() bool { return t.HostID != "" }
