package main

import (
	"log/slog"

	"github.com/tonimelisma/notesync-go/internal/config"
	"github.com/tonimelisma/notesync-go/internal/device"
	"github.com/tonimelisma/notesync-go/internal/host"
	"github.com/tonimelisma/notesync-go/internal/sync"
)

// buildDeviceAdapter constructs the shell-backed Device adapter from the
// resolved configuration.
func buildDeviceAdapter(cfg *config.Config, logger *slog.Logger) *device.ShellAdapter {
	runner := &device.ExecRunner{Container: cfg.Device.Container, Database: cfg.Device.Database}

	return device.NewShellAdapter(runner, logger)
}

// buildHostAdapter constructs the CLI-backed Host adapter from the
// resolved configuration.
func buildHostAdapter(cfg *config.Config, logger *slog.Logger) *host.CLIAdapter {
	runner := &host.ExecRunner{BinaryPath: cfg.Host.BinaryPath}

	return host.NewCLIAdapter(runner, logger)
}

// engineConfig translates the resolved configuration's Sync section into
// the sync engine's Config value.
func engineConfig(cfg *config.Config) sync.Config {
	return sync.Config{
		ConflictResolution:      sync.ConflictResolution(cfg.Sync.ConflictResolution),
		ConflictWindowSeconds:   cfg.Sync.ConflictWindowSeconds,
		SyncCompletedTasks:      cfg.Sync.SyncCompletedTasks,
		CompletedTaskMaxAgeDays: cfg.Sync.CompletedTaskMaxAgeDays,
		DedupeRepeatingTasks:    cfg.Sync.DedupeRepeatingTasks,
	}
}
