// Package device implements the Device Adapter: the interface to the
// tablet's local task database, reached through a container shell, plus
// the concrete transformation rules (emoji encoding, notes truncation,
// document-link preservation, soft delete) required on that path.
package device

import (
	"context"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// CategoryInfo is a Device category as returned by ListCategories.
type CategoryInfo struct {
	ID   string
	Name string
}

// Adapter is the engine-facing contract for the Device task store.
// None of these methods return an error for "not found" — absence is
// represented by a nil task.Task / zero value, matching the adapter
// contract's "none may throw for not found" rule.
type Adapter interface {
	ListTasks(ctx context.Context, category string, includeCompleted bool) ([]*task.Task, error)
	GetTask(ctx context.Context, id string) (*task.Task, error)
	CreateTask(ctx context.Context, t *task.Task) (deviceID string, err error)
	UpdateTask(ctx context.Context, t *task.Task) error
	DeleteTask(ctx context.Context, id string, soft bool) error

	ListCategories(ctx context.Context) ([]CategoryInfo, error)
	CreateCategory(ctx context.Context, name string) (id string, err error)
	RenameCategory(ctx context.Context, id, newName string) error

	TestConnection(ctx context.Context) (bool, error)
}
