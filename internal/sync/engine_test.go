package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

func newTestEngine(t *testing.T, dev *fakeDevice, hst *fakeHost, cfg Config) (*Engine, *store.Store) {
	t.Helper()

	ctx := context.Background()

	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "state.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e, err := NewEngine(st, dev, hst, cfg, nil)
	require.NoError(t, err)

	return e, st
}

// Scenario 1: Create on Host -> Device.
func TestRunOnce_CreateOnHostPropagatesToDevice(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	hst.nextID++
	hst.tasks[hostIDFor(hst.nextID)] = &task.Task{
		HostID: hostIDFor(hst.nextID), Title: "Buy milk", Notes: "", Category: "Groceries", Completed: false,
	}

	engine, _ := newTestEngine(t, dev, hst, DefaultConfig())

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedDevice)
	assert.Len(t, dev.tasks, 1)

	for _, dt := range dev.tasks {
		assert.Equal(t, "Buy milk", dt.Title)
	}

	// Second run: zero actions (invariant 6, no loops).
	result2, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result2.TotalChanges())
	assert.Equal(t, 0, result2.ConflictsResolved)
}

// Scenario 2: Title-bootstrap pairing, then a later edit propagates.
func TestRunOnce_TitleBootstrapThenPropagate(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	hst.tasks["h1"] = &task.Task{HostID: "h1", Title: "Call Alice"}
	dev.tasks["d1"] = &task.Task{DeviceID: "d1", Title: "Call Alice"}

	engine, _ := newTestEngine(t, dev, hst, DefaultConfig())

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalChanges())
	assert.Equal(t, 1, result.NoChange)

	// Mutate Host notes; the paired Device task should pick it up.
	hst.tasks["h1"].Notes = "10am"
	hst.tasks["h1"].ModifiedAt = unixPtr(time.Now().Unix())

	result2, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result2.UpdatedDevice)
	assert.Equal(t, "10am", dev.tasks["d1"].Notes)
}

// Scenario 3: conflict, Device edited 5 minutes after Host; Device wins.
func TestRunOnce_ConflictDeviceNewerWins(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	hst.tasks["h1"] = &task.Task{HostID: "h1", DeviceID: "d1", Title: "Original"}
	dev.tasks["d1"] = &task.Task{HostID: "h1", DeviceID: "d1", Title: "Original"}

	engine, st := newTestEngine(t, dev, hst, DefaultConfig())

	_, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)

	rec, err := st.GetByHostID(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	baseTime := time.Now().Add(-time.Hour).Unix()
	hostTime := baseTime
	deviceTime := baseTime + 300

	hst.tasks["h1"].Title = "Host edit"
	hst.tasks["h1"].ModifiedAt = unixPtr(hostTime)

	dev.tasks["d1"].Title = "Device edit"
	dev.tasks["d1"].ModifiedAt = unixPtr(deviceTime)

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConflictsResolved)
	assert.Equal(t, 1, result.UpdatedHost)
	assert.Equal(t, "Device edit", hst.tasks["h1"].Title)
}

// Scenario 5: repeating collapse.
func TestRunOnce_RepeatingTaskDedup(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	for i := 0; i < 8; i++ {
		id := hostIDFor(1000 + i)
		hst.tasks[id] = &task.Task{HostID: id, Title: "Bread", Completed: true, CompletionDate: unixPtr(time.Now().AddDate(0, -6, 0).Unix())}
	}

	dueTomorrow := time.Now().AddDate(0, 0, 1).Unix()
	hst.tasks[hostIDFor(2000)] = &task.Task{HostID: hostIDFor(2000), Title: "Bread", Completed: false, DueDate: &dueTomorrow}

	engine, _ := newTestEngine(t, dev, hst, DefaultConfig())

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Deduped)
	assert.Equal(t, 1, result.CreatedDevice)
	require.Len(t, dev.tasks, 1)

	for _, dt := range dev.tasks {
		assert.Equal(t, "Bread", dt.Title)
		assert.False(t, dt.Completed)
	}
}

// Scenario 6: old completed Host task with no record is filtered out.
func TestRunOnce_OldCompletedTaskFiltered(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	completedLongAgo := time.Now().AddDate(0, 0, -200).Unix()
	hst.tasks["h1"] = &task.Task{HostID: "h1", Title: "Pay rent", Completed: true, CompletionDate: &completedLongAgo}

	engine, st := newTestEngine(t, dev, hst, DefaultConfig())

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalChanges())
	assert.Empty(t, dev.tasks)

	records, err := st.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// Invariant 8: deletion propagates once one side's task disappears.
func TestRunOnce_DeletionPropagates(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	hst.tasks["h1"] = &task.Task{HostID: "h1", Title: "Gone soon"}
	dev.tasks["d1"] = &task.Task{DeviceID: "d1", Title: "Gone soon"}

	engine, _ := newTestEngine(t, dev, hst, DefaultConfig())

	_, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)

	// Remove from Host directly (simulating external deletion).
	delete(hst.tasks, "h1")

	result, err := engine.RunOnce(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedDevice)
	assert.Empty(t, dev.tasks)
}

// Dry-run never mutates either adapter or the store.
func TestRunOnce_DryRunDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()

	hst.tasks["h1"] = &task.Task{HostID: "h1", Title: "Buy milk"}

	engine, st := newTestEngine(t, dev, hst, DefaultConfig())

	result, err := engine.RunOnce(ctx, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.CreatedDevice)
	assert.Empty(t, dev.tasks)

	records, err := st.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func unixPtr(sec int64) *int64 {
	return &sec
}
