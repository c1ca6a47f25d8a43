package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the TOML skeleton written by `init`. Values are filled
// in from the Config passed to WriteInitialConfig.
const configTemplate = `# notesync-go configuration
# Generated by 'notesync-go init'. Edit values below, or delete a line to
# fall back to its default.

[device]
container = %q
database  = %q

[host]
binary_path = %q

[sync]
conflict_resolution         = %q
conflict_window_seconds     = %d
sync_completed_tasks        = %t
completed_task_max_age_days = %d
dedupe_repeating_tasks      = %t

[logging]
log_level  = %q
log_format = %q
`

// WriteInitialConfig renders cfg into the config file template and writes
// it atomically to path, creating parent directories as needed. It refuses
// to overwrite an existing file unless force is true.
func WriteInitialConfig(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	contents := fmt.Sprintf(configTemplate,
		cfg.Device.Container, cfg.Device.Database,
		cfg.Host.BinaryPath,
		cfg.Sync.ConflictResolution, cfg.Sync.ConflictWindowSeconds,
		cfg.Sync.SyncCompletedTasks, cfg.Sync.CompletedTaskMaxAgeDays,
		cfg.Sync.DedupeRepeatingTasks,
		cfg.Logging.LogLevel, cfg.Logging.LogFormat,
	)

	return atomicWriteFile(path, []byte(contents), 0o600)
}

// atomicWriteFile writes data to a temp file in the same directory as path,
// fsyncs it, then renames it into place, so a crash mid-write never leaves
// a truncated config file behind.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".notesync-config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}

	return nil
}
