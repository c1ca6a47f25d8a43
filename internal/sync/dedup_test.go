package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tonimelisma/notesync-go/internal/task"
)

func TestDedupHostTasks_NoGroupsUnchanged(t *testing.T) {
	tasks := []*task.Task{{HostID: "a", Title: "Alpha"}, {HostID: "b", Title: "Beta"}}

	kept, deduped := DedupHostTasks(tasks)
	assert.Len(t, kept, 2)
	assert.Equal(t, 0, deduped)
}

func TestDedupHostTasks_RetainsIncompleteOverCompleted(t *testing.T) {
	tasks := []*task.Task{
		{HostID: "a", Title: "Bread", Completed: true},
		{HostID: "b", Title: "Bread", Completed: false},
	}

	kept, deduped := DedupHostTasks(tasks)
	assert.Len(t, kept, 1)
	assert.Equal(t, 1, deduped)
	assert.Equal(t, "b", kept[0].HostID)
}

func TestDedupHostTasks_RetainsLatestDateAmongSameStatus(t *testing.T) {
	earlier := time.Now().AddDate(0, 0, -5).Unix()
	later := time.Now().AddDate(0, 0, -1).Unix()

	tasks := []*task.Task{
		{HostID: "a", Title: "Bread", Completed: true, DueDate: &earlier},
		{HostID: "b", Title: "Bread", Completed: true, DueDate: &later},
	}

	kept, deduped := DedupHostTasks(tasks)
	assert.Len(t, kept, 1)
	assert.Equal(t, 1, deduped)
	assert.Equal(t, "b", kept[0].HostID)
}

func TestDedupHostTasks_NoDateSortsLast(t *testing.T) {
	dated := time.Now().Unix()

	tasks := []*task.Task{
		{HostID: "a", Title: "Bread", Completed: true},
		{HostID: "b", Title: "Bread", Completed: true, ModifiedAt: &dated},
	}

	kept, _ := DedupHostTasks(tasks)
	assert.Equal(t, "b", kept[0].HostID)
}

func TestDedupHostTasks_IsCaseAndWhitespaceInsensitive(t *testing.T) {
	tasks := []*task.Task{
		{HostID: "a", Title: "  Bread  "},
		{HostID: "b", Title: "bread"},
	}

	kept, deduped := DedupHostTasks(tasks)
	assert.Len(t, kept, 1)
	assert.Equal(t, 1, deduped)
}
