package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorBorder   = lipgloss.Color("8")
	colorAccent   = lipgloss.Color("12")
	colorSuccess  = lipgloss.Color("42")
	colorSelected = lipgloss.Color("62")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSelected)
	doneStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	inputFocusedStyle = inputStyle.BorderForeground(colorAccent)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
	buttonStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	buttonActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
)

// applyColorProfile sets Lip Gloss's color profile for the TUI. Only NO_COLOR
// and the explicit preference turn colors off; otherwise follow the terminal.
func applyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

func panelString(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(inner)
}
