package progress

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/melodrama/melodrama/internal/tui"
)

type labelMsg string

type doneMsg struct {
	ok    bool
	label string
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
	ok      bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(tui.ActiveStyle))
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case labelMsg:
		m.label = string(msg)
		return m, nil
	case doneMsg:
		m.done = true
		m.ok = msg.ok
		m.label = msg.label
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		if m.ok {
			return tui.SuccessStyle.Render(tui.SuccessMark) + " " + m.label + "\n"
		}
		return tui.FailureStyle.Render(tui.FailureMark) + " " + m.label + "\n"
	}
	return m.spinner.View() + " " + tui.ActiveStyle.Render(m.label)
}

// Spinner renders an animated single-line spinner on a terminal. Each Start
// runs a small Bubble Tea program that ends on Succeed or Fail.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a Spinner reporter rendering to out.
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Start implements Reporter. Starting while another operation is active
// only replaces the label.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(labelMsg(label))
		return
	}

	program := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(s.out), tea.WithInput(nil))
	done := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(done)
	}()

	s.program = program
	s.done = done
}

// Update implements Reporter.
func (s *Spinner) Update(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(labelMsg(label))
	}
}

// Succeed implements Reporter.
func (s *Spinner) Succeed(label string) {
	s.finish(true, label)
}

// Fail implements Reporter.
func (s *Spinner) Fail(label string) {
	s.finish(false, label)
}

func (s *Spinner) finish(ok bool, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program == nil {
		NewLine(s.out).finish(ok, label)
		return
	}

	s.program.Send(doneMsg{ok: ok, label: label})
	<-s.done
	s.program = nil
	s.done = nil
}

func (l *Line) finish(ok bool, label string) {
	if ok {
		l.Succeed(label)
		return
	}
	l.Fail(label)
}
