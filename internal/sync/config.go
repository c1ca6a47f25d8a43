package sync

import "fmt"

// ConflictResolution selects which side wins an unresolvable conflict.
type ConflictResolution string

// Recognised conflict-resolution modes.
const (
	ConflictPreferRecent ConflictResolution = "prefer_recent"
	ConflictPreferHost   ConflictResolution = "prefer_host"
	ConflictPreferDevice ConflictResolution = "prefer_device"
)

// Config holds the tunables the engine consults per run.
type Config struct {
	ConflictResolution      ConflictResolution
	ConflictWindowSeconds   int64
	SyncCompletedTasks      bool
	CompletedTaskMaxAgeDays int
	DedupeRepeatingTasks    bool
}

// Validate rejects an unrecognised ConflictResolution loudly at startup
// rather than silently falling back to a default.
func (c *Config) Validate() error {
	switch c.ConflictResolution {
	case ConflictPreferRecent, ConflictPreferHost, ConflictPreferDevice:
	default:
		return fmt.Errorf("sync: unrecognised conflict_resolution %q", c.ConflictResolution)
	}

	if c.ConflictWindowSeconds < 0 {
		return fmt.Errorf("sync: conflict_window_seconds must be >= 0")
	}

	if c.CompletedTaskMaxAgeDays < 0 {
		return fmt.Errorf("sync: completed_task_max_age_days must be >= 0")
	}

	return nil
}

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() Config {
	return Config{
		ConflictResolution:      ConflictPreferRecent,
		ConflictWindowSeconds:   60,
		SyncCompletedTasks:      true,
		CompletedTaskMaxAgeDays: 180,
		DedupeRepeatingTasks:    true,
	}
}
