package sync

import (
	"context"

	"github.com/tonimelisma/notesync-go/internal/device"
	"github.com/tonimelisma/notesync-go/internal/host"
	"github.com/tonimelisma/notesync-go/internal/task"
)

// fakeDevice is an in-memory device.Adapter for engine tests. Task slots
// are keyed by device_id; IDs are assigned sequentially on create.
type fakeDevice struct {
	tasks      map[string]*task.Task
	categories map[string]string // id -> name
	nextID     int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{tasks: make(map[string]*task.Task), categories: make(map[string]string)}
}

func (f *fakeDevice) ListTasks(_ context.Context, category string, includeCompleted bool) ([]*task.Task, error) {
	var out []*task.Task

	for _, t := range f.tasks {
		if !includeCompleted && t.Completed {
			continue
		}

		if category != "" && t.Category != category {
			continue
		}

		out = append(out, t)
	}

	return out, nil
}

func (f *fakeDevice) GetTask(_ context.Context, id string) (*task.Task, error) {
	return f.tasks[id], nil
}

func (f *fakeDevice) CreateTask(_ context.Context, t *task.Task) (string, error) {
	f.nextID++
	id := deviceIDFor(f.nextID)
	clone := *t
	clone.DeviceID = id
	f.tasks[id] = &clone

	return id, nil
}

func (f *fakeDevice) UpdateTask(_ context.Context, t *task.Task) error {
	if _, ok := f.tasks[t.DeviceID]; !ok {
		return task.ErrNotFound
	}

	clone := *t
	f.tasks[t.DeviceID] = &clone

	return nil
}

func (f *fakeDevice) DeleteTask(_ context.Context, id string, _ bool) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeDevice) ListCategories(_ context.Context) ([]device.CategoryInfo, error) {
	out := make([]device.CategoryInfo, 0, len(f.categories))
	for id, name := range f.categories {
		out = append(out, device.CategoryInfo{ID: id, Name: name})
	}

	return out, nil
}

func (f *fakeDevice) CreateCategory(_ context.Context, name string) (string, error) {
	f.nextID++
	id := deviceIDFor(f.nextID)
	f.categories[id] = name

	return id, nil
}

func (f *fakeDevice) RenameCategory(_ context.Context, id, newName string) error {
	f.categories[id] = newName
	return nil
}

func (f *fakeDevice) TestConnection(_ context.Context) (bool, error) {
	return true, nil
}

func deviceIDFor(n int) string {
	return "dev-" + string(rune('a'+n))
}

var _ device.Adapter = (*fakeDevice)(nil)

// fakeHost is an in-memory host.Adapter for engine tests.
type fakeHost struct {
	tasks  map[string]*task.Task
	lists  map[string]string // id -> name (id == name in this fake)
	nextID int
}

func newFakeHost() *fakeHost {
	return &fakeHost{tasks: make(map[string]*task.Task), lists: make(map[string]string)}
}

func (f *fakeHost) ListLists(_ context.Context) ([]host.ListInfo, error) {
	out := make([]host.ListInfo, 0, len(f.lists))
	for id, name := range f.lists {
		out = append(out, host.ListInfo{ID: id, Name: name})
	}

	return out, nil
}

func (f *fakeHost) ListReminders(_ context.Context, includeCompleted bool) ([]*task.Task, error) {
	var out []*task.Task

	for _, t := range f.tasks {
		if !includeCompleted && t.Completed {
			continue
		}

		out = append(out, t)
	}

	return out, nil
}

func (f *fakeHost) ListRemindersIn(ctx context.Context, list string, includeCompleted bool) ([]*task.Task, error) {
	all, _ := f.ListReminders(ctx, includeCompleted)

	var out []*task.Task

	for _, t := range all {
		if t.Category == list {
			out = append(out, t)
		}
	}

	return out, nil
}

func (f *fakeHost) GetByID(_ context.Context, id string) (*task.Task, error) {
	return f.tasks[id], nil
}

func (f *fakeHost) CreateReminder(_ context.Context, t *task.Task) (string, error) {
	f.nextID++
	id := hostIDFor(f.nextID)
	clone := *t
	clone.HostID = id
	f.tasks[id] = &clone

	if t.Category != "" {
		f.lists[t.Category] = t.Category
	}

	return id, nil
}

func (f *fakeHost) UpdateReminder(_ context.Context, t *task.Task) error {
	if _, ok := f.tasks[t.HostID]; !ok {
		return task.ErrNotFound
	}

	clone := *t
	f.tasks[t.HostID] = &clone

	return nil
}

func (f *fakeHost) DeleteReminder(_ context.Context, id string) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeHost) RenameList(_ context.Context, oldName, newName string) error {
	delete(f.lists, oldName)
	f.lists[newName] = newName

	for _, t := range f.tasks {
		if t.Category == oldName {
			t.Category = newName
		}
	}

	return nil
}

func (f *fakeHost) TestConnection(_ context.Context) (bool, error) {
	return true, nil
}

func hostIDFor(n int) string {
	return "host-" + string(rune('a'+n))
}

var _ host.Adapter = (*fakeHost)(nil)
