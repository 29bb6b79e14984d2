package progress

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/melodrama/melodrama/internal/tui"
)

func TestLineReporterWritesOneLinePerEvent(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	r := NewLine(buf)

	r.Start("Fetching Spectacle themes...")
	r.Update("Still fetching...")
	r.Succeed("Spectacle themes fetched.")
	r.Fail("Installation failed!")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Fetching Spectacle themes...")
	require.Contains(t, lines[1], "Still fetching...")
	require.Contains(t, lines[2], tui.SuccessMark)
	require.Contains(t, lines[2], "Spectacle themes fetched.")
	require.Contains(t, lines[3], tui.FailureMark)
}

func TestNewSelectsImplementation(t *testing.T) {
	t.Parallel()

	require.IsType(t, &Spinner{}, New(&bytes.Buffer{}, true))
	require.IsType(t, &Line{}, New(&bytes.Buffer{}, false))
}

func TestSpinnerModelTracksLabelAndCompletion(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("Installing dependencies...")
	require.NotNil(t, m.Init())

	updated, cmd := m.Update(labelMsg("Still installing..."))
	require.Nil(t, cmd)
	m = updated.(spinnerModel)
	require.Contains(t, m.View(), "Still installing...")

	updated, cmd = m.Update(doneMsg{ok: true, label: "Installation complete!"})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	m = updated.(spinnerModel)
	require.True(t, m.done)
	require.Contains(t, m.View(), tui.SuccessMark)
	require.Contains(t, m.View(), "Installation complete!")
}

func TestSpinnerModelFailureView(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("Installing dependencies...")
	updated, _ := m.Update(doneMsg{ok: false, label: "Installation failed!"})
	view := updated.(spinnerModel).View()
	require.Contains(t, view, tui.FailureMark)
	require.Contains(t, view, "Installation failed!")
}

func TestSpinnerFinishWithoutStartFallsBackToLine(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	s := NewSpinner(buf)
	s.Fail("Installation failed!")
	require.Contains(t, buf.String(), "Installation failed!")
}
