package device

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// Runner executes a single SQL statement against the Device database and
// returns its tab-separated, headered result set (mysql's `-B` batch
// output format). It is the seam that lets ShellAdapter be unit tested
// without a live container.
type Runner interface {
	Run(ctx context.Context, query string) (string, error)
}

// ExecRunner runs queries against the Device database through a container
// shell ("docker exec ... mysql"): one process per statement, batch-mode
// tabular output.
type ExecRunner struct {
	Container string
	Database  string
}

// Run shells out to `docker exec <container> mysql -B -N -e <query> <database>`.
func (r *ExecRunner) Run(ctx context.Context, query string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", "exec", r.Container,
		"mysql", "-B", "-N", "-e", query, r.Database)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: device shell command failed: %v", task.ErrConnection, err)
	}

	return string(out), nil
}

// categoriesTable and tasksTable name the Device schema's tables.
const (
	categoriesTable = "categories"
	tasksTable      = "tasks"
)

// ShellAdapter is the concrete Adapter talking to Device's MySQL-family
// database via a Runner. It composes escaped SQL text rather than using
// parameter binding, since the only transport available is a shell; every
// identifier is validated and every text field escaped before use.
type ShellAdapter struct {
	runner Runner
	logger *slog.Logger

	categoriesByID   map[string]string
	categoriesCached bool
}

// NewShellAdapter creates a Device adapter using r to execute commands.
func NewShellAdapter(r Runner, logger *slog.Logger) *ShellAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &ShellAdapter{runner: r, logger: logger}
}

// TestConnection verifies the Device database is reachable.
func (a *ShellAdapter) TestConnection(ctx context.Context) (bool, error) {
	if _, err := a.runner.Run(ctx, "SELECT 1"); err != nil {
		return false, nil
	}

	return true, nil
}

// ListTasks returns Device tasks, optionally filtered by category and
// completion state.
func (a *ShellAdapter) ListTasks(ctx context.Context, category string, includeCompleted bool) ([]*task.Task, error) {
	query := fmt.Sprintf(
		"SELECT id, title, notes, category, completed, priority, completion_date, due_date, created_at, modified_at, document_link FROM %s WHERE deleted = 0",
		tasksTable,
	)

	if category != "" {
		query += fmt.Sprintf(" AND category = '%s'", EscapeText(category))
	}

	if !includeCompleted {
		query += " AND completed = 0"
	}

	out, err := a.runner.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	return parseTaskRows(out)
}

// GetTask returns a single task by its Device ID, or nil if not found.
func (a *ShellAdapter) GetTask(ctx context.Context, id string) (*task.Task, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT id, title, notes, category, completed, priority, completion_date, due_date, created_at, modified_at, document_link FROM %s WHERE id = '%s' AND deleted = 0",
		tasksTable, id,
	)

	out, err := a.runner.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := parseTaskRows(out)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// CreateTask inserts a new Device task and returns its assigned ID.
func (a *ShellAdapter) CreateTask(ctx context.Context, t *task.Task) (string, error) {
	id := task.NewSyncID()

	link, err := task.EncodeDocumentLink(t.DocumentLink)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, title, notes, category, completed, priority, completion_date, due_date, created_at, modified_at, document_link, deleted) VALUES ('%s', '%s', '%s', '%s', %d, %d, %d, %d, %d, %d, '%s', 0)",
		tasksTable, id,
		EscapeText(task.EncodeNonBMP(t.Title)),
		EscapeText(EncodeNotesForWrite(t.Notes)),
		EscapeText(t.Category),
		boolToInt(t.Completed), t.Priority,
		msFromUnixSeconds(t.CompletionDate), msFromUnixSeconds(t.DueDate),
		msFromUnixSeconds(t.CreatedAt), msFromUnixSeconds(t.ModifiedAt),
		link,
	)

	if _, err := a.runner.Run(ctx, query); err != nil {
		return "", err
	}

	return id, nil
}

// UpdateTask writes t's fields onto its existing Device row, identified by
// t.DeviceID. If t has no document link, the prior link on the row (if
// any) is preserved rather than cleared.
func (a *ShellAdapter) UpdateTask(ctx context.Context, t *task.Task) error {
	if err := ValidateID(t.DeviceID); err != nil {
		return err
	}

	link := t.DocumentLink
	if link == nil {
		existing, err := a.GetTask(ctx, t.DeviceID)
		if err != nil {
			return err
		}

		if existing != nil {
			link = existing.DocumentLink
		}
	}

	encodedLink, err := task.EncodeDocumentLink(link)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		"UPDATE %s SET title='%s', notes='%s', category='%s', completed=%d, priority=%d, completion_date=%d, due_date=%d, modified_at=%d, document_link='%s' WHERE id='%s' AND deleted=0",
		tasksTable,
		EscapeText(task.EncodeNonBMP(t.Title)),
		EscapeText(EncodeNotesForWrite(t.Notes)),
		EscapeText(t.Category),
		boolToInt(t.Completed), t.Priority,
		msFromUnixSeconds(t.CompletionDate), msFromUnixSeconds(t.DueDate),
		msFromUnixSeconds(t.ModifiedAt),
		encodedLink, t.DeviceID,
	)

	_, err = a.runner.Run(ctx, query)

	return err
}

// DeleteTask soft-deletes (default) or hard-deletes a Device task.
func (a *ShellAdapter) DeleteTask(ctx context.Context, id string, soft bool) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	var query string
	if soft {
		query = fmt.Sprintf("UPDATE %s SET deleted=1, modified_at=%d WHERE id='%s'", tasksTable, nowMs(), id)
	} else {
		query = fmt.Sprintf("DELETE FROM %s WHERE id='%s'", tasksTable, id)
	}

	_, err := a.runner.Run(ctx, query)

	return err
}

// ListCategories returns all Device categories.
func (a *ShellAdapter) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	out, err := a.runner.Run(ctx, fmt.Sprintf("SELECT id, name FROM %s", categoriesTable))
	if err != nil {
		return nil, err
	}

	var cats []CategoryInfo

	for _, line := range splitLines(out) {
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			continue
		}

		cats = append(cats, CategoryInfo{ID: cols[0], Name: task.DecodeNonBMP(cols[1])})
	}

	a.categoriesCached = false

	return cats, nil
}

// CreateCategory inserts a new Device category and invalidates the
// category cache.
func (a *ShellAdapter) CreateCategory(ctx context.Context, name string) (string, error) {
	id := task.NewSyncID()

	query := fmt.Sprintf("INSERT INTO %s (id, name) VALUES ('%s', '%s')",
		categoriesTable, id, EscapeText(task.EncodeNonBMP(name)))

	if _, err := a.runner.Run(ctx, query); err != nil {
		return "", err
	}

	a.categoriesCached = false

	return id, nil
}

// RenameCategory updates a category's name and invalidates the cache.
func (a *ShellAdapter) RenameCategory(ctx context.Context, id, newName string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET name='%s' WHERE id='%s'",
		categoriesTable, EscapeText(task.EncodeNonBMP(newName)), id)

	_, err := a.runner.Run(ctx, query)
	a.categoriesCached = false

	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func nowMs() int64 {
	return time.Now().Unix() * 1000
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

func parseTaskRows(out string) ([]*task.Task, error) {
	var tasks []*task.Task

	for _, line := range splitLines(out) {
		cols := strings.Split(line, "\t")
		if len(cols) != 11 {
			continue
		}

		completed, _ := strconv.Atoi(cols[4])
		priority, _ := strconv.Atoi(cols[5])
		completionMs, _ := strconv.ParseInt(cols[6], 10, 64)
		dueMs, _ := strconv.ParseInt(cols[7], 10, 64)
		createdMs, _ := strconv.ParseInt(cols[8], 10, 64)
		modifiedMs, _ := strconv.ParseInt(cols[9], 10, 64)

		link, err := task.DecodeDocumentLink(cols[10])
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, &task.Task{
			DeviceID:       cols[0],
			Title:          task.DecodeNonBMP(cols[1]),
			Notes:          DecodeNotesForRead(cols[2]),
			Category:       cols[3],
			Completed:      completed != 0,
			Priority:       task.Priority(priority),
			CompletionDate: unixSecondsFromMs(completionMs),
			DueDate:        unixSecondsFromMs(dueMs),
			CreatedAt:      unixSecondsFromMs(createdMs),
			ModifiedAt:     unixSecondsFromMs(modifiedMs),
			DocumentLink:   link,
		})
	}

	return tasks, nil
}
