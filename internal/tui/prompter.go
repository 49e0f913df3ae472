package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/screen"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAlert
	modalConfirm
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

const (
	confirmLabel = "Yes"
	cancelLabel  = "No"
)

// modalPrompter is the TUI's screen.Alerter. Prompts are recorded here and
// shown by View; the pending confirmation runs once the user picks "Yes".
type modalPrompter struct {
	kind      modalKind
	title     string
	message   string
	onConfirm func()
	focus     confirmFocus
}

var _ screen.Alerter = (*modalPrompter)(nil)

func (p *modalPrompter) Alert(title, message string) {
	*p = modalPrompter{kind: modalAlert, title: title, message: message}
}

func (p *modalPrompter) Confirm(title, message string, onConfirm func()) {
	*p = modalPrompter{
		kind:      modalConfirm,
		title:     title,
		message:   message,
		onConfirm: onConfirm,
		focus:     confirmFocusCancel,
	}
}

func (p *modalPrompter) active() bool { return p.kind != modalNone }

func (p *modalPrompter) close() { *p = modalPrompter{} }

// handleKey consumes a key while a modal is open. It reports whether the
// task collection may have changed.
func (p *modalPrompter) handleKey(msg tea.KeyMsg) (changed bool) {
	switch p.kind {
	case modalAlert:
		switch msg.String() {
		case "enter", "esc", " ", "q":
			p.close()
		}
	case modalConfirm:
		switch msg.String() {
		case "tab", "shift+tab", "left", "right", "h", "l":
			if p.focus == confirmFocusCancel {
				p.focus = confirmFocusConfirm
			} else {
				p.focus = confirmFocusCancel
			}
		case "y", "Y":
			return p.accept()
		case "n", "N", "esc", "q":
			p.close()
		case "enter":
			if p.focus == confirmFocusConfirm {
				return p.accept()
			}
			p.close()
		}
	}
	return false
}

func (p *modalPrompter) accept() bool {
	fn := p.onConfirm
	p.close()
	if fn != nil {
		fn()
	}
	return true
}

func (p *modalPrompter) view(width int) string {
	if !p.active() {
		return ""
	}
	var controls, help string
	switch p.kind {
	case modalAlert:
		controls = buttonActiveStyle.Render("OK")
		help = "enter: dismiss"
	case modalConfirm:
		cancel := buttonStyle.Render(cancelLabel)
		confirm := buttonStyle.Render(confirmLabel)
		if p.focus == confirmFocusCancel {
			cancel = buttonActiveStyle.Render(cancelLabel)
		} else {
			confirm = buttonActiveStyle.Render(confirmLabel)
		}
		controls = lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm)
		help = "y/n   tab: focus   enter: select   esc: cancel"
	}

	bodyW := min(max(width-10, 20), 60)
	content := strings.Join([]string{
		titleStyle.Render(p.title),
		"",
		lipgloss.NewStyle().Width(bodyW).Render(p.message),
		"",
		controls,
		"",
		helpStyle.Width(bodyW).Render(help),
	}, "\n")
	return modalStyle.Render(content)
}
