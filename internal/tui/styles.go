// Package tui holds the terminal styles shared by progress output, prompts
// and command summaries.
package tui

import "github.com/charmbracelet/lipgloss"

// Status marks prefixed to progress lines.
const (
	SuccessMark = "✔"
	FailureMark = "✖"
	ActiveMark  = "…"
	InfoMark    = "ℹ"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	FailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	DimStyle     = lipgloss.NewStyle().Faint(true)

	QuestionStyle = lipgloss.NewStyle().Bold(true)
	CursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	AnswerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
