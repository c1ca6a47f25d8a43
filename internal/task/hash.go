package task

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ContentHash computes a stable 16-hex-character digest over the
// sync-relevant fields of t: title, notes, category, completed, priority.
//
// due_date is deliberately excluded because of timezone ambiguity between
// the two stores. The practical effect is that a due_date-only edit is
// invisible to hash-based change detection and only propagates once another
// field also changes; that is a known, accepted limitation. Timestamps and
// IDs are excluded generally so the hash is stable across reserialisation
// and timezone shifts.
func ContentHash(t *Task) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"%s\x00%s\x00%s\x00%t\x00%d",
		t.Title, t.Notes, t.Category, t.Completed, t.Priority,
	)))

	return hex.EncodeToString(sum[:])[:16]
}
