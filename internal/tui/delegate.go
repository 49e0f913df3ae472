package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/ui"
)

// taskItem adapts model.Task to bubbles/list.Item.
type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

func toItems(tasks []model.Task) []list.Item {
	out := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskItem{task: t})
	}
	return out
}

// rowDelegate renders one task per line. Edit state comes from the row
// controllers; the editing row shows the shared edit input instead of its title.
type rowDelegate struct {
	rows *screen.Rows
	edit *textinput.Model
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	th := ui.Current()
	editing := false
	if c, ok := d.rows.Get(it.task.ID); ok {
		editing = c.IsEditing()
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	box := mutedStyle.Render(th.BoxUnchecked)
	title := it.task.Title
	if it.task.Done {
		box = successStyle.Render(th.BoxChecked)
		title = doneStyle.Render(title)
	}
	if editing && d.edit != nil {
		title = d.edit.View()
	}

	editGlyph := mutedStyle.Render(th.SymEdit)
	trash := errorStyle.Render(th.SymTrash)
	if editing {
		editGlyph = mutedStyle.Render(th.SymCancel)
		trash = disabledStyle.Render(th.SymTrash)
	}

	left := fmt.Sprintf("%s%s %s", prefix, box, title)
	right := fmt.Sprintf("%s %s %s", editGlyph, mutedStyle.Render("│"), trash)
	gap := m.Width() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	fmt.Fprint(w, left+strings.Repeat(" ", gap)+right)
}
