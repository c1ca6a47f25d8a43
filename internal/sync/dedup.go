package sync

import (
	"sort"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// DedupHostTasks collapses Host-side repeating-title duplicates. Host may
// contain many instances of the same repeating reminder (same title,
// different due dates/completion states); for any title-group with more
// than one member, exactly one is retained using the ordered key:
// incomplete before completed, then within the same status the member
// with the latest date (due_date, falling back to modified_at), with
// no-date instances sorting last. Returns the retained tasks (one per
// title group, in the order each group first appears) and the count of
// tasks dropped.
func DedupHostTasks(tasks []*task.Task) ([]*task.Task, int) {
	groups := make(map[string][]*task.Task)
	order := make([]string, 0)

	for _, t := range tasks {
		key := task.FoldTrim(t.Title)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], t)
	}

	var kept []*task.Task

	deduped := 0

	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			kept = append(kept, group[0])
			continue
		}

		kept = append(kept, bestOfGroup(group))
		deduped += len(group) - 1
	}

	return kept, deduped
}

// bestOfGroup selects the single member of a duplicate-title group to
// retain, per the ordered key in DedupHostTasks's doc comment.
func bestOfGroup(group []*task.Task) *task.Task {
	sorted := make([]*task.Task, len(group))
	copy(sorted, group)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed != b.Completed {
			return !a.Completed // incomplete sorts first
		}

		return dedupDate(a) > dedupDate(b) // later date sorts first
	})

	return sorted[0]
}

// dedupDate returns the sort date for a task: due_date, falling back to
// modified_at, with no-date instances sorting last (as if -infinity).
func dedupDate(t *task.Task) int64 {
	if t.DueDate != nil {
		return *t.DueDate
	}

	if t.ModifiedAt != nil {
		return *t.ModifiedAt
	}

	return -1 << 62
}
