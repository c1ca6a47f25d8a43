package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

func TestExecute_CreateOnDeviceAssignsIDAndUpsertsRecord(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()
	st := newTestStore(t)

	tk := &task.Task{HostID: "h1", Title: "Buy milk"}
	action := Action{Kind: ActionCreate, Target: TargetDevice, Task: tk, SyncID: "s1"}

	err := execute(ctx, st, dev, hst, action, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, tk.DeviceID)

	rec, err := st.GetBySyncID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "h1", rec.HostID)
	assert.Equal(t, tk.DeviceID, rec.DeviceID)
}

func TestExecute_CreateOnHostAssignsIDAndUpsertsRecord(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()
	st := newTestStore(t)

	tk := &task.Task{DeviceID: "d1", Title: "Buy milk"}
	action := Action{Kind: ActionCreate, Target: TargetHost, Task: tk, SyncID: "s1"}

	err := execute(ctx, st, dev, hst, action, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, tk.HostID)

	rec, err := st.GetBySyncID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "d1", rec.DeviceID)
}

func TestExecute_UpdateOnDeviceMutatesFake(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()
	st := newTestStore(t)

	dev.tasks["dev-a"] = &task.Task{DeviceID: "dev-a", Title: "Old"}

	tk := &task.Task{DeviceID: "dev-a", HostID: "h1", Title: "New"}
	action := Action{Kind: ActionUpdate, Target: TargetDevice, Task: tk, SyncID: "s1"}

	err := execute(ctx, st, dev, hst, action, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "New", dev.tasks["dev-a"].Title)
}

func TestExecute_DeleteOnHostRemovesRecord(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	hst := newFakeHost()
	st := newTestStore(t)

	hst.tasks["host-a"] = &task.Task{HostID: "host-a", Title: "Gone"}
	require.NoError(t, st.Upsert(ctx, &store.Record{SyncID: "s1", HostID: "host-a", SourceSystem: task.SourceHost}))

	tk := &task.Task{HostID: "host-a", Title: "Gone"}
	action := Action{Kind: ActionDelete, Target: TargetHost, Task: tk, SyncID: "s1"}

	err := execute(ctx, st, dev, hst, action, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, hst.tasks, "host-a")

	rec, err := st.GetBySyncID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSourceSystemFor(t *testing.T) {
	assert.Equal(t, task.SourceBoth, sourceSystemFor(&task.Task{HostID: "h", DeviceID: "d"}))
	assert.Equal(t, task.SourceHost, sourceSystemFor(&task.Task{HostID: "h"}))
	assert.Equal(t, task.SourceDevice, sourceSystemFor(&task.Task{DeviceID: "d"}))
}
