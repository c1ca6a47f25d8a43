package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/notesync-go/internal/task"
)

func taskWithLink() *task.Task {
	return &task.Task{
		Title:    "Pack bag",
		Category: "Trip",
		DocumentLink: &task.DocumentLink{
			FilePath: "/docs/trip.note",
			Page:     2,
		},
	}
}

type fakeRunner struct {
	calls     [][]string
	responses [][]byte
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)

	idx := len(f.calls) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}

	if idx < 0 {
		return []byte("[]"), nil
	}

	return f.responses[idx], nil
}

func TestListRemindersStripsIngressMarkers(t *testing.T) {
	fr := &fakeRunner{responses: [][]byte{
		[]byte(`[{"id":"x-apple-reminder://abc","title":"Call Alice","notes":"10am\n📎 trip.note(page 2)","list":"Errands","completed":false,"priority":1}]`),
	}}
	a := NewCLIAdapter(fr, nil)

	tasks, err := a.ListReminders(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "abc", tasks[0].HostID)
	require.Equal(t, "10am", tasks[0].Notes)
}

func TestNormaliseIDStripsKnownPrefix(t *testing.T) {
	require.Equal(t, "abc", NormaliseID("x-apple-reminder://abc"))
	require.Equal(t, "abc", NormaliseID("abc"))
}

func TestCreateReminderAppendsDocumentLinkSuffix(t *testing.T) {
	fr := &fakeRunner{responses: [][]byte{[]byte(`{"id":"new1"}`)}}
	a := NewCLIAdapter(fr, nil)

	id, err := a.CreateReminder(context.Background(), taskWithLink())
	require.NoError(t, err)
	require.Equal(t, "new1", id)
	require.Len(t, fr.calls, 1)

	found := false
	for i, arg := range fr.calls[0] {
		if arg == "--notes" && i+1 < len(fr.calls[0]) {
			require.Contains(t, fr.calls[0][i+1], "📎")
			found = true
		}
	}
	require.True(t, found, "expected --notes argument with document link suffix")
}
