package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var summaryBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// Summary describes a finished bootstrap for the closing message.
type Summary struct {
	Dir          string
	Theme        string
	Syntax       bool
	Dependencies []string
}

// View renders the summary with the commands to run next.
func (s Summary) View() string {
	var lines []string
	lines = append(lines, TitleStyle.Render("Bootstrapping done!"))

	if s.Theme != "" {
		lines = append(lines, fmt.Sprintf("%s %s", SectionStyle.Render("Theme:"), s.Theme))
	}
	syntax := "off"
	if s.Syntax {
		syntax = "on"
	}
	lines = append(lines, fmt.Sprintf("%s %s", SectionStyle.Render("Syntax highlighting:"), syntax))
	if len(s.Dependencies) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", SectionStyle.Render("Installed:"), strings.Join(s.Dependencies, ", ")))
	}

	lines = append(lines, "", DimStyle.Render("Next steps:"))
	lines = append(lines, fmt.Sprintf("  cd %s", s.Dir), "  npm start")

	return summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
