// Package host implements the Host Adapter: the interface to the desktop
// operating system's reminders service, reached through command-line
// binaries, plus the concrete transformation rules (priority mapping, ID
// normalisation, document-link notes suffix, legacy tag stripping)
// required on that path.
package host

import (
	"context"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// ListInfo is a Host list as returned by ListLists.
type ListInfo struct {
	ID   string
	Name string
}

// Adapter is the engine-facing contract for the Host reminders service.
type Adapter interface {
	ListLists(ctx context.Context) ([]ListInfo, error)
	ListReminders(ctx context.Context, includeCompleted bool) ([]*task.Task, error)
	ListRemindersIn(ctx context.Context, list string, includeCompleted bool) ([]*task.Task, error)
	GetByID(ctx context.Context, id string) (*task.Task, error)
	CreateReminder(ctx context.Context, t *task.Task) (hostID string, err error)
	UpdateReminder(ctx context.Context, t *task.Task) error
	DeleteReminder(ctx context.Context, id string) error
	RenameList(ctx context.Context, oldName, newName string) error
	TestConnection(ctx context.Context) (bool, error)
}
