package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// maxLevenshteinDistance is the maximum edit distance for "did you mean?"
// suggestions when unknown config keys are detected.
const maxLevenshteinDistance = 3

// knownSections are the top-level table names a config file may contain.
var knownSections = map[string]bool{
	"device": true, "host": true, "sync": true, "logging": true,
}

// knownKeys maps each known section to its valid field names.
var knownKeys = map[string]map[string]bool{
	"device": {"container": true, "database": true},
	"host":   {"binary_path": true},
	"sync": {
		"conflict_resolution": true, "conflict_window_seconds": true,
		"sync_completed_tasks": true, "completed_task_max_age_days": true,
		"dedupe_repeating_tasks": true, "state_path": true,
	},
	"logging": {"log_level": true, "log_file": true, "log_format": true},
}

// knownSectionsList is the sorted slice form of knownSections for
// Levenshtein matching.
var knownSectionsList = sortedKeys(knownSections)

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// checkUnknownKeys inspects TOML metadata for undecoded keys and returns an
// error with "did you mean?" suggestions for each unknown key.
func checkUnknownKeys(md *toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	var errs []error

	for _, key := range undecoded {
		if err := buildUnknownKeyError(key.String()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// buildUnknownKeyError builds a descriptive error for an unknown key path
// like "device.containre" or "typo_section.key".
func buildUnknownKeyError(keyStr string) error {
	section, field, hasField := strings.Cut(keyStr, ".")

	if !hasField {
		// Bare top-level key with no section — always unknown, since every
		// recognised field lives inside one of the four sections.
		suggestion := closestMatch(section, knownSectionsList)
		if suggestion != "" {
			return fmt.Errorf("unknown config section %q — did you mean %q?", section, suggestion)
		}

		return fmt.Errorf("unknown config section %q", section)
	}

	fields, ok := knownKeys[section]
	if !ok {
		suggestion := closestMatch(section, knownSectionsList)
		if suggestion != "" {
			return fmt.Errorf("unknown config section %q — did you mean %q?", section, suggestion)
		}

		return fmt.Errorf("unknown config section %q", section)
	}

	if fields[field] {
		return nil
	}

	suggestion := closestMatch(field, sortedKeys(fields))
	if suggestion != "" {
		return fmt.Errorf("unknown key %q in [%s] — did you mean %q?", field, section, suggestion)
	}

	return fmt.Errorf("unknown key %q in [%s]", field, section)
}

// closestMatch finds the closest known key by Levenshtein distance.
// Returns empty string if no match is within maxLevenshteinDistance.
func closestMatch(unknown string, known []string) string {
	best := ""
	bestDist := maxLevenshteinDistance + 1

	for _, k := range known {
		d := levenshtein(unknown, k)
		if d < bestDist {
			bestDist = d
			best = k
		}
	}

	if bestDist <= maxLevenshteinDistance {
		return best
	}

	return ""
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == "" {
		return len(b)
	}

	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := range len(a) {
		curr[0] = i + 1

		for j := range len(b) {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}

			curr[j+1] = minOf(curr[j]+1, prev[j+1]+1, prev[j]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// minOf returns the minimum of three integers.
func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}
