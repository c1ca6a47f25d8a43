package sync

import (
	"time"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// isOldCompleted reports whether t is a completed Host task with no
// existing sync record and a completion_date older than maxAgeDays. Such
// tasks are excluded from the actions list entirely: not synced to
// Device, not deleted from Host.
func isOldCompleted(t *task.Task, hasRecord bool, maxAgeDays int, now time.Time) bool {
	if hasRecord || !t.Completed || t.CompletionDate == nil {
		return false
	}

	cutoff := now.AddDate(0, 0, -maxAgeDays).Unix()

	return *t.CompletionDate < cutoff
}
