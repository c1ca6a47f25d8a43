package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// Runner executes the Host reminders CLI with the given arguments and
// returns its raw stdout, one process per operation. It is the seam that
// lets CLIAdapter be unit tested without a live Host reminders service.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner shells out to the configured reminders-cli binary.
type ExecRunner struct {
	BinaryPath string
}

// Run invokes BinaryPath with args and returns its stdout.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.BinaryPath, args...)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: reminders-cli command failed: %v", task.ErrConnection, err)
	}

	return out, nil
}

// reminderJSON mirrors the reminders-cli's JSON row shape for a single
// reminder.
type reminderJSON struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Notes            string `json:"notes"`
	List             string `json:"list"`
	Completed        bool   `json:"completed"`
	Priority         int    `json:"priority"`
	CompletionDate   string `json:"completionDate"`
	DueDate          string `json:"dueDate"`
	CreationDate     string `json:"creationDate"`
	ModificationDate string `json:"modificationDate"`
}

func parseISO8601(s string) *int64 {
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}

	sec := t.Unix()

	return &sec
}

func formatISO8601(sec *int64) string {
	if sec == nil {
		return ""
	}

	return time.Unix(*sec, 0).UTC().Format(time.RFC3339)
}

func (r *reminderJSON) toTask() *task.Task {
	notes := task.StripIngressMarkers(r.Notes)

	return &task.Task{
		HostID:         NormaliseID(r.ID),
		Title:          r.Title,
		Notes:          notes,
		Category:       r.List,
		Completed:      r.Completed,
		Priority:       task.HostToNormalised(r.Priority),
		CompletionDate: parseISO8601(r.CompletionDate),
		DueDate:        parseISO8601(r.DueDate),
		CreatedAt:      parseISO8601(r.CreationDate),
		ModifiedAt:     parseISO8601(r.ModificationDate),
	}
}

// CLIAdapter is the concrete Adapter talking to the Host reminders service
// through a command-line binary, one invocation per operation.
type CLIAdapter struct {
	runner Runner
	logger *slog.Logger
}

// NewCLIAdapter creates a Host adapter using r to execute commands.
func NewCLIAdapter(r Runner, logger *slog.Logger) *CLIAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &CLIAdapter{runner: r, logger: logger}
}

// TestConnection verifies the reminders CLI is reachable.
func (a *CLIAdapter) TestConnection(ctx context.Context) (bool, error) {
	if _, err := a.runner.Run(ctx, "show-lists", "--format=json"); err != nil {
		return false, nil
	}

	return true, nil
}

// ListLists returns all Host reminder lists.
func (a *CLIAdapter) ListLists(ctx context.Context) ([]ListInfo, error) {
	out, err := a.runner.Run(ctx, "show-lists", "--format=json")
	if err != nil {
		return nil, err
	}

	var raw []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("host: parsing list output: %w", err)
	}

	lists := make([]ListInfo, 0, len(raw))
	for _, l := range raw {
		lists = append(lists, ListInfo{ID: NormaliseID(l.ID), Name: l.Name})
	}

	return lists, nil
}

// ListReminders returns reminders across all lists.
func (a *CLIAdapter) ListReminders(ctx context.Context, includeCompleted bool) ([]*task.Task, error) {
	return a.listReminders(ctx, "", includeCompleted)
}

// ListRemindersIn returns reminders in a single list.
func (a *CLIAdapter) ListRemindersIn(ctx context.Context, list string, includeCompleted bool) ([]*task.Task, error) {
	return a.listReminders(ctx, list, includeCompleted)
}

func (a *CLIAdapter) listReminders(ctx context.Context, list string, includeCompleted bool) ([]*task.Task, error) {
	args := []string{"show-all", "--format=json"}
	if list != "" {
		args = []string{"show", list, "--format=json"}
	}

	if includeCompleted {
		args = append(args, "--include-completed")
	}

	out, err := a.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var raw []reminderJSON
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("host: parsing reminders output: %w", err)
	}

	tasks := make([]*task.Task, 0, len(raw))
	for i := range raw {
		tasks = append(tasks, raw[i].toTask())
	}

	return tasks, nil
}

// GetByID returns a single reminder by its Host ID, or nil if not found.
func (a *CLIAdapter) GetByID(ctx context.Context, id string) (*task.Task, error) {
	out, err := a.runner.Run(ctx, "show-reminder", id, "--format=json")
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, nil
	}

	var raw reminderJSON
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("host: parsing reminder output: %w", err)
	}

	return raw.toTask(), nil
}

// CreateReminder creates a new Host reminder and returns its canonical ID.
func (a *CLIAdapter) CreateReminder(ctx context.Context, t *task.Task) (string, error) {
	notes := task.AppendDocumentLinkSuffix(t.Notes, t.DocumentLink)

	args := []string{
		"add", t.Category, t.Title,
		"--notes", notes,
		"--priority", fmt.Sprintf("%d", task.NormalisedToHost(t.Priority)),
	}

	if t.DueDate != nil {
		args = append(args, "--due-date", formatISO8601(t.DueDate))
	}

	out, err := a.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}

	var raw struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(out, &raw); err != nil {
		return "", fmt.Errorf("host: parsing create output: %w", err)
	}

	return NormaliseID(raw.ID), nil
}

// UpdateReminder reads the current Host state and writes only the
// subfields that differ: completion, title/notes, due date, priority, and
// list membership (moving across lists in-place, keeping the same ID).
func (a *CLIAdapter) UpdateReminder(ctx context.Context, t *task.Task) error {
	current, err := a.GetByID(ctx, t.HostID)
	if err != nil {
		return err
	}

	args := []string{"edit", t.HostID, "--format=json"}

	if current == nil || current.Title != t.Title {
		args = append(args, "--title", t.Title)
	}

	notes := task.AppendDocumentLinkSuffix(t.Notes, t.DocumentLink)
	if current == nil || current.Notes != t.Notes {
		args = append(args, "--notes", notes)
	}

	if current == nil || current.Completed != t.Completed {
		if t.Completed {
			args = append(args, "--complete")
		} else {
			args = append(args, "--incomplete")
		}
	}

	if current == nil || !sameDate(current.DueDate, t.DueDate) {
		args = append(args, "--due-date", formatISO8601(t.DueDate))
	}

	if current == nil || current.Priority != t.Priority {
		args = append(args, "--priority", fmt.Sprintf("%d", task.NormalisedToHost(t.Priority)))
	}

	if current == nil || current.Category != t.Category {
		args = append(args, "--list", t.Category)
	}

	_, err = a.runner.Run(ctx, args...)

	return err
}

func sameDate(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// DeleteReminder removes a Host reminder.
func (a *CLIAdapter) DeleteReminder(ctx context.Context, id string) error {
	_, err := a.runner.Run(ctx, "delete", id)

	return err
}

// RenameList renames a Host list in place.
func (a *CLIAdapter) RenameList(ctx context.Context, oldName, newName string) error {
	_, err := a.runner.Run(ctx, "rename-list", oldName, newName)

	return err
}
