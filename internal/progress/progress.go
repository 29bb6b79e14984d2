// Package progress reports the lifecycle of long-running operations to the
// console. Components receive a Reporter instead of writing to stdout so
// output stays serialized and testable.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/melodrama/melodrama/internal/tui"
)

// Reporter reports the status of a single long-running operation at a time.
type Reporter interface {
	Start(label string)
	Update(label string)
	Succeed(label string)
	Fail(label string)
}

// Line writes one line per event. It is used when stdout is not a terminal.
type Line struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLine creates a Line reporter writing to out.
func NewLine(out io.Writer) *Line {
	return &Line{out: out}
}

// Start implements Reporter.
func (l *Line) Start(label string) {
	l.write(tui.ActiveStyle.Render(tui.ActiveMark + " " + label))
}

// Update implements Reporter.
func (l *Line) Update(label string) {
	l.write(tui.ActiveStyle.Render(tui.ActiveMark + " " + label))
}

// Succeed implements Reporter.
func (l *Line) Succeed(label string) {
	l.write(tui.SuccessStyle.Render(tui.SuccessMark) + " " + label)
}

// Fail implements Reporter.
func (l *Line) Fail(label string) {
	l.write(tui.FailureStyle.Render(tui.FailureMark) + " " + label)
}

func (l *Line) write(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// Nop discards all progress events.
type Nop struct{}

// Start implements Reporter.
func (Nop) Start(string) {}

// Update implements Reporter.
func (Nop) Update(string) {}

// Succeed implements Reporter.
func (Nop) Succeed(string) {}

// Fail implements Reporter.
func (Nop) Fail(string) {}

var (
	_ Reporter = (*Line)(nil)
	_ Reporter = Nop{}
	_ Reporter = (*Spinner)(nil)
)

// New returns a Spinner when interactive is true and a Line reporter otherwise.
func New(out io.Writer, interactive bool) Reporter {
	if interactive {
		return NewSpinner(out)
	}
	return NewLine(out)
}
