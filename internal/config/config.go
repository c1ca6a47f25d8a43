// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for notesync-go.
package config

// Config is the top-level configuration structure, decoded from a single
// TOML file. Unlike a multi-account client, this tool talks to exactly one
// Device and one Host, so there is no per-account/per-drive section layer —
// one flat set of sections covers the whole configuration surface.
type Config struct {
	Device  DeviceConfig  `toml:"device"`
	Host    HostConfig    `toml:"host"`
	Sync    SyncConfig    `toml:"sync"`
	Logging LoggingConfig `toml:"logging"`
}

// DeviceConfig describes how to reach the tablet's task database through a
// container shell.
type DeviceConfig struct {
	Container string `toml:"container"`
	Database  string `toml:"database"`
}

// HostConfig describes how to reach the desktop reminders service.
type HostConfig struct {
	BinaryPath string `toml:"binary_path"`
}

// SyncConfig holds the engine tunables enumerated in the configuration
// surface: conflict resolution strategy and window, whether to sync
// completed tasks at all, the age filter for unpaired completed Host
// tasks, and whether to collapse same-title Host duplicates. StatePath
// is the sync-state database location, defaulting under DefaultDataDir.
type SyncConfig struct {
	ConflictResolution      string `toml:"conflict_resolution"`
	ConflictWindowSeconds   int64  `toml:"conflict_window_seconds"`
	SyncCompletedTasks      bool   `toml:"sync_completed_tasks"`
	CompletedTaskMaxAgeDays int    `toml:"completed_task_max_age_days"`
	DedupeRepeatingTasks    bool   `toml:"dedupe_repeating_tasks"`
	StatePath               string `toml:"state_path"`
}

// LoggingConfig controls the slog handler built in root.go's buildLogger.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	LogFormat string `toml:"log_format"`
}
