package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/notesync-go/internal/task"
)

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, &Record{SyncID: "a", HostID: "h1", DeviceID: "d1", SourceSystem: task.SourceBoth}))
	require.NoError(t, s.UpsertCategory(ctx, &CategoryMapping{DeviceID: "dc1", HostID: "hl1", Name: "Groceries"}))
	require.NoError(t, s.LogAction(ctx, "sync_complete", "", `{"created":1}`))

	require.NoError(t, s.ClearAll(ctx))

	records, err := s.AllRecords(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	cats, err := s.AllCategories(ctx)
	require.NoError(t, err)
	require.Empty(t, cats)

	logs, err := s.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, logs)
}
