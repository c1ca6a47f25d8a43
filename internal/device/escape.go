package device

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// idPattern is the only shape an identifier accepted by this adapter may
// take. Any value composed into a storage command must validate against
// this first — the shell-based command path has no parameter binding, so
// this is the primary defence against injection.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateID returns task.ErrInvalidInput if id does not match the
// required identifier pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: identifier %q contains disallowed characters", task.ErrInvalidInput, id)
	}

	return nil
}

// EscapeText escapes backslash and single quote and removes NUL so a text value is
// safe to compose into the storage shell's SQL command. Applied to every
// free-text field (title, notes, category name) before it is interpolated
// into a command string.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\x00", "")

	return s
}
