package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/notesync-go/internal/config"
	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/task"
)

func testCLIContext(t *testing.T) (*CLIContext, context.Context) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Sync.StatePath = filepath.Join(t.TempDir(), "state.db")

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cc := &CLIContext{Cfg: cfg, Logger: logger}

	ctx := context.WithValue(context.Background(), cliContextKey{}, cc)

	return cc, ctx
}

func TestRunCategories_EmptyStorePrintsPlaceholder(t *testing.T) {
	resetGlobalFlags()
	cc, ctx := testCLIContext(t)

	cmd := newCategoriesCmd()
	cmd.SetContext(ctx)

	err := runCategories(cmd, nil)
	require.NoError(t, err)
	_ = cc
}

func TestRunCategories_ListsMappings(t *testing.T) {
	resetGlobalFlags()
	cc, ctx := testCLIContext(t)

	st, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	require.NoError(t, err)
	require.NoError(t, st.UpsertCategory(ctx, &store.CategoryMapping{DeviceID: "d1", HostID: "h1", Name: "Groceries"}))
	require.NoError(t, st.Close())

	cmd := newCategoriesCmd()
	cmd.SetContext(ctx)

	err = runCategories(cmd, nil)
	require.NoError(t, err)
}

func TestRunClearState_SkipsWithoutConfirmation(t *testing.T) {
	resetGlobalFlags()
	flagClearStateYes = false
	defer func() { flagClearStateYes = false }()

	_, ctx := testCLIContext(t)

	cmd := newClearStateCmd()
	cmd.SetContext(ctx)

	// confirmClearState reads stdin; with no input available it returns
	// false, so the command should abort without error.
	err := runClearState(cmd, nil)
	require.NoError(t, err)
}

func TestRunClearState_YesFlagClearsStore(t *testing.T) {
	resetGlobalFlags()
	flagClearStateYes = true
	defer func() { flagClearStateYes = false }()

	cc, ctx := testCLIContext(t)

	st, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	require.NoError(t, err)
	require.NoError(t, st.Upsert(ctx, &store.Record{SyncID: "s1", HostID: "h1", SourceSystem: task.SourceHost}))
	require.NoError(t, st.Close())

	cmd := newClearStateCmd()
	cmd.SetContext(ctx)

	err = runClearState(cmd, nil)
	require.NoError(t, err)

	st2, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	require.NoError(t, err)
	defer st2.Close()

	records, err := st2.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunStatus_EmptyStoreReportsZeroCounts(t *testing.T) {
	resetGlobalFlags()
	_, ctx := testCLIContext(t)

	cmd := newStatusCmd()
	cmd.SetContext(ctx)

	err := runStatus(cmd, nil)
	require.NoError(t, err)
}

func TestRunConfigShow_PrintsWithoutError(t *testing.T) {
	resetGlobalFlags()
	_, ctx := testCLIContext(t)

	cmd := newConfigShowCmd()
	cmd.SetContext(ctx)

	err := runConfigShow(cmd, nil)
	require.NoError(t, err)
}

func TestConnectionStatus_Formatting(t *testing.T) {
	assert.Equal(t, "OK", connectionStatus(true, nil))
	assert.Contains(t, connectionStatus(false, assert.AnError), "FAILED")
	assert.Equal(t, "FAILED", connectionStatus(false, nil))
}

func TestRunInit_WritesConfigFile(t *testing.T) {
	resetGlobalFlags()
	defer resetGlobalFlags()

	path := filepath.Join(t.TempDir(), "config.toml")
	flagConfigPath = path

	cmd := newInitCmd()
	err := runInit(cmd, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRunInit_RefusesOverwriteWithoutForce(t *testing.T) {
	resetGlobalFlags()
	defer resetGlobalFlags()

	path := filepath.Join(t.TempDir(), "config.toml")
	flagConfigPath = path
	flagInitForce = false

	cmd := newInitCmd()
	require.NoError(t, runInit(cmd, nil))

	err := runInit(cmd, nil)
	require.Error(t, err)
}

func TestEngineConfig_TranslatesSyncSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sync.ConflictResolution = "prefer_host"
	cfg.Sync.ConflictWindowSeconds = 120

	ec := engineConfig(cfg)
	assert.EqualValues(t, "prefer_host", ec.ConflictResolution)
	assert.Equal(t, int64(120), ec.ConflictWindowSeconds)
}

func TestPidFilePath_AppendsLockSuffix(t *testing.T) {
	assert.Equal(t, "/tmp/state.db.lock", pidFilePath("/tmp/state.db"))
}
