package config

import (
	"fmt"
	"io"
)

// errWriter accumulates the first write error so a long sequence of
// fmt.Fprintf calls can skip per-call error checks.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// RenderEffective writes a human-readable dump of the fully-resolved
// configuration, grouped by section, for the `config show` command.
func RenderEffective(cfg *Config, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("[device]\n")
	ew.printf("container = %q\n", cfg.Device.Container)
	ew.printf("database  = %q\n", cfg.Device.Database)
	ew.printf("\n")

	ew.printf("[host]\n")
	ew.printf("binary_path = %q\n", cfg.Host.BinaryPath)
	ew.printf("\n")

	ew.printf("[sync]\n")
	ew.printf("conflict_resolution         = %q\n", cfg.Sync.ConflictResolution)
	ew.printf("conflict_window_seconds     = %d\n", cfg.Sync.ConflictWindowSeconds)
	ew.printf("sync_completed_tasks        = %t\n", cfg.Sync.SyncCompletedTasks)
	ew.printf("completed_task_max_age_days = %d\n", cfg.Sync.CompletedTaskMaxAgeDays)
	ew.printf("dedupe_repeating_tasks      = %t\n", cfg.Sync.DedupeRepeatingTasks)
	ew.printf("state_path                  = %q\n", cfg.Sync.StatePath)
	ew.printf("\n")

	ew.printf("[logging]\n")
	ew.printf("log_level  = %q\n", cfg.Logging.LogLevel)
	ew.printf("log_file   = %q\n", cfg.Logging.LogFile)
	ew.printf("log_format = %q\n", cfg.Logging.LogFormat)

	return ew.err
}
