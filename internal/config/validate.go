package config

import (
	"errors"
	"fmt"
)

// Recognised conflict_resolution values (mirrors internal/sync.ConflictResolution;
// duplicated here rather than imported to keep internal/config free of a
// dependency on internal/sync).
const (
	conflictPreferRecent = "prefer_recent"
	conflictPreferHost   = "prefer_host"
	conflictPreferDevice = "prefer_device"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

var validConflictResolutions = map[string]bool{
	conflictPreferRecent: true,
	conflictPreferHost:   true,
	conflictPreferDevice: true,
}

// Validate checks all configuration values and returns every error found
// rather than stopping at the first, so users see a complete report.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateDevice(&cfg.Device)...)
	errs = append(errs, validateHost(&cfg.Host)...)
	errs = append(errs, validateSync(&cfg.Sync)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	return errors.Join(errs...)
}

func validateDevice(d *DeviceConfig) []error {
	var errs []error

	if d.Container == "" {
		errs = append(errs, errors.New("device.container: must not be empty"))
	}

	if d.Database == "" {
		errs = append(errs, errors.New("device.database: must not be empty"))
	}

	return errs
}

func validateHost(h *HostConfig) []error {
	if h.BinaryPath == "" {
		return []error{errors.New("host.binary_path: must not be empty")}
	}

	return nil
}

// validateSync mirrors sync.Config.Validate's checks so an invalid value is
// rejected at config load time, before any I/O, rather than surfacing later
// from inside the engine.
func validateSync(s *SyncConfig) []error {
	var errs []error

	if !validConflictResolutions[s.ConflictResolution] {
		errs = append(errs, fmt.Errorf(
			"sync.conflict_resolution: must be one of prefer_recent, prefer_host, prefer_device; got %q",
			s.ConflictResolution))
	}

	if s.ConflictWindowSeconds < 0 {
		errs = append(errs, fmt.Errorf(
			"sync.conflict_window_seconds: must be >= 0, got %d", s.ConflictWindowSeconds))
	}

	if s.CompletedTaskMaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf(
			"sync.completed_task_max_age_days: must be >= 0, got %d", s.CompletedTaskMaxAgeDays))
	}

	return errs
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.LogLevel] {
		errs = append(errs, fmt.Errorf(
			"logging.log_level: must be one of debug, info, warn, error; got %q", l.LogLevel))
	}

	if !validLogFormats[l.LogFormat] {
		errs = append(errs, fmt.Errorf(
			"logging.log_format: must be one of auto, text, json; got %q", l.LogFormat))
	}

	return errs
}
