package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrPromptAborted is returned when the user cancels a question.
var ErrPromptAborted = errors.New("prompt aborted")

const (
	themeQuestion  = "Choose a theme:"
	syntaxQuestion = "Do you want syntax highlighting?"
)

// Prompter asks the init questions.
type Prompter interface {
	SelectTheme(ctx context.Context, question string, themes ThemeList) (string, error)
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// Ask collects the user's choices. The theme question is only asked when the
// registry returned themes besides NoTheme; the syntax question always is,
// and comes second.
func Ask(ctx context.Context, p Prompter, themes ThemeList) (Choices, error) {
	choices := Choices{Theme: NoTheme}

	if len(themes) > 1 {
		theme, err := p.SelectTheme(ctx, themeQuestion, themes)
		if err != nil {
			return Choices{}, err
		}
		if theme != "" {
			choices.Theme = theme
		}
	}

	syntax, err := p.Confirm(ctx, syntaxQuestion, true)
	if err != nil {
		return Choices{}, err
	}
	choices.Syntax = syntax

	return choices, nil
}

// StaticPrompter answers every question without user interaction.
type StaticPrompter struct {
	Theme  string
	Syntax bool
}

// SelectTheme implements Prompter. An answer not in themes selects the first entry.
func (s StaticPrompter) SelectTheme(_ context.Context, _ string, themes ThemeList) (string, error) {
	for _, theme := range themes {
		if theme == s.Theme {
			return theme, nil
		}
	}
	if len(themes) == 0 {
		return NoTheme, nil
	}
	return themes[0], nil
}

// Confirm implements Prompter.
func (s StaticPrompter) Confirm(context.Context, string, bool) (bool, error) {
	return s.Syntax, nil
}

// LinePrompter asks questions over plain line-oriented streams. It is used
// when stdin is not a terminal.
type LinePrompter struct {
	mu      sync.Mutex
	out     io.Writer
	scanner *bufio.Scanner
}

// NewLinePrompter reads answers from in and writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{out: out, scanner: bufio.NewScanner(in)}
}

// SelectTheme implements Prompter. An empty answer picks the first theme;
// answers may be a list number or a theme name.
func (l *LinePrompter) SelectTheme(ctx context.Context, question string, themes ThemeList) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(themes) == 0 {
		return NoTheme, nil
	}

	for {
		fmt.Fprintln(l.out, question)
		for i, theme := range themes {
			fmt.Fprintf(l.out, "  %d) %s\n", i+1, theme)
		}
		fmt.Fprintf(l.out, "Theme [1]: ")

		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return themes[0], nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(themes) {
			return themes[n-1], nil
		}
		for _, theme := range themes {
			if strings.EqualFold(theme, answer) {
				return theme, nil
			}
		}
		fmt.Fprintf(l.out, "%q is not one of the listed themes.\n", answer)
	}
}

// Confirm implements Prompter.
func (l *LinePrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(l.out, "%s (%s) ", question, hint)

		answer, err := l.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(l.out, "Please answer yes or no.")
	}
}

func (l *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrPromptAborted
	}
	return strings.TrimSpace(l.scanner.Text()), nil
}
