package bootstrap

import (
	"context"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/melodrama/melodrama/internal/tui"
)

type selectModel struct {
	question string
	options  []string
	cursor   int
	chosen   bool
	aborted  bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(tui.QuestionStyle.Render("? " + m.question))
	if m.chosen {
		b.WriteString(" " + tui.AnswerStyle.Render(m.options[m.cursor]) + "\n")
		return b.String()
	}
	b.WriteString(" " + tui.HintStyle.Render("(use arrow keys)") + "\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(tui.CursorStyle.Render("❯ " + option))
		} else {
			b.WriteString("  " + option)
		}
		b.WriteString("\n")
	}
	return b.String()
}

type confirmModel struct {
	question string
	value    bool
	answered bool
	aborted  bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y":
		m.value = true
		m.answered = true
		return m, tea.Quit
	case "n":
		m.value = false
		m.answered = true
		return m, tea.Quit
	case "enter":
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	q := tui.QuestionStyle.Render("? " + m.question)
	if m.answered {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return q + " " + tui.AnswerStyle.Render(answer) + "\n"
	}
	hint := "(y/N)"
	if m.value {
		hint = "(Y/n)"
	}
	return q + " " + tui.HintStyle.Render(hint)
}

// TUIPrompter asks questions with interactive Bubble Tea widgets.
type TUIPrompter struct {
	In  io.Reader
	Out io.Writer
}

// SelectTheme implements Prompter.
func (t *TUIPrompter) SelectTheme(ctx context.Context, question string, themes ThemeList) (string, error) {
	if len(themes) == 0 {
		return NoTheme, nil
	}

	final, err := t.run(ctx, selectModel{question: question, options: themes})
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.aborted {
		return "", ErrPromptAborted
	}
	return m.options[m.cursor], nil
}

// Confirm implements Prompter.
func (t *TUIPrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	final, err := t.run(ctx, confirmModel{question: question, value: def})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrPromptAborted
	}
	return m.value, nil
}

func (t *TUIPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}
	return tea.NewProgram(model, opts...).Run()
}

var (
	_ Prompter = (*TUIPrompter)(nil)
	_ Prompter = (*LinePrompter)(nil)
	_ Prompter = StaticPrompter{}
)
