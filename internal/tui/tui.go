// Package tui is the interactive task list screen.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/store/taskstore"
	"github.com/idilsaglam/tasks/internal/ui"
)

type focusArea int

const (
	focusAdd focusArea = iota
	focusList
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	titleLimit    = 200
)

// Options configure Run.
type Options struct {
	Logger    *log.Logger
	AltScreen bool
	NoColor   bool
	Input     io.Reader
	Output    io.Writer
}

type modelTUI struct {
	home   *screen.Home
	rows   *screen.Rows
	alerts *modalPrompter
	log    *log.Logger

	list list.Model
	add  textinput.Model
	edit *textinput.Model // bound to whichever row is editing
	help help.Model
	keys keyMap

	focus         focusArea
	width, height int
}

func newModel(store *taskstore.Store, logger *log.Logger) modelTUI {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	alerts := &modalPrompter{}
	home := screen.NewHome(store, alerts, logger)
	rows := screen.NewRows(home)

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = titleLimit

	add := textinput.New()
	add.Prompt = "+ "
	add.Placeholder = "Add a new task..."
	add.CharLimit = titleLimit
	add.Focus()

	l := list.New(nil, rowDelegate{rows: rows, edit: &edit}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle

	m := modelTUI{
		home:   home,
		rows:   rows,
		alerts: alerts,
		log:    logger,
		list:   l,
		add:    add,
		edit:   &edit,
		help:   h,
		keys:   defaultKeyMap(),
		focus:  focusAdd,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.resize()
	return m
}

// Run starts the Bubble Tea program. The task list lives for the duration of
// the program and is discarded on exit.
func Run(ctx context.Context, opts Options) error {
	applyColorProfile(opts.NoColor)

	m := newModel(taskstore.New(), opts.Logger)
	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}

	m.log.Info("session started")
	finalModel, err := tea.NewProgram(m, popts...).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := finalModel.(modelTUI); ok {
		d, p := ui.Stats(fm.home.Tasks())
		m.log.Info("session ended", "tasks", fm.home.Count(), "done", d, "pending", p)
	}
	return nil
}

func (m modelTUI) Init() tea.Cmd { return textinput.Blink }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	km, isKey := msg.(tea.KeyMsg)
	if isKey && km.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// modal prompts swallow every key until answered
	if m.alerts.active() {
		if isKey && m.alerts.handleKey(km) {
			return m, m.refresh()
		}
		return m, nil
	}

	if c, ok := m.rows.Editing(); ok {
		return m.updateEditing(c, msg)
	}
	if m.focus == focusAdd {
		return m.updateAdding(msg)
	}
	return m.updateList(msg)
}

func (m modelTUI) updateEditing(c *screen.EditController, msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Submit):
			m.rows.SubmitEdit(c.TaskID())
			m.edit.Blur()
			return m, m.refresh()
		case key.Matches(km, m.keys.Cancel):
			m.rows.CancelEdit(c.TaskID())
			m.edit.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	*m.edit, cmd = m.edit.Update(msg)
	m.rows.SetDraft(c.TaskID(), m.edit.Value())
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.add.Value())
			if title == "" {
				return m, nil
			}
			if m.home.AddTask(title) {
				m.add.SetValue("")
				cmd := m.refresh()
				m.list.Select(len(m.list.Items()) - 1)
				return m, cmd
			}
			return m, nil
		case "esc", "tab", "down":
			m.focus = focusList
			m.add.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m modelTUI) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(km, m.keys.AddFocus):
		m.focus = focusAdd
		return m, m.add.Focus()
	case key.Matches(km, m.keys.Up) && m.list.Index() == 0:
		m.focus = focusAdd
		return m, m.add.Focus()
	}

	it, selected := m.list.SelectedItem().(taskItem)
	if selected {
		id := it.task.ID
		switch {
		case key.Matches(km, m.keys.Toggle):
			m.home.ToggleTaskDone(id)
			return m, m.refresh()
		case key.Matches(km, m.keys.Edit):
			m.rows.StartEdit(id)
			c, _ := m.rows.Get(id)
			m.edit.SetValue(c.Draft())
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		case key.Matches(km, m.keys.Remove):
			m.rows.RequestRemove(id)
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refresh re-reads the task collection after a mutation.
func (m *modelTUI) refresh() tea.Cmd {
	tasks := m.home.Tasks()
	m.rows.Reconcile(tasks)
	idx := m.list.Index()
	cmd := m.list.SetItems(toItems(tasks))
	if n := len(tasks); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m *modelTUI) resize() {
	w := max(m.width-4, 20)
	m.add.Width = w - 4
	m.edit.Width = max(w-16, 10)
	m.help.Width = w
	// header, input box, help and panel borders
	chrome := 8 + lipgloss.Height(m.help.View(m.keys))
	m.list.SetSize(w, max(m.height-chrome, 3))
}

func (m modelTUI) header() string {
	d, p := ui.Stats(m.home.Tasks())
	return fmt.Sprintf("%s   %s   %s %d  %s %d",
		titleStyle.Render("to.do"),
		countStyle.Render(ui.CountLabel(m.home.Count())),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
	)
}

func (m modelTUI) View() string {
	if m.alerts.active() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.alerts.view(m.width))
	}

	input := inputStyle
	if m.focus == focusAdd {
		input = inputFocusedStyle
	}
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = mutedStyle.Render("No tasks yet. Type a title above and press enter.")
	}

	content := strings.Join([]string{
		m.header(),
		input.Width(max(m.width-8, 20)).Render(m.add.View()),
		body,
		m.help.View(m.keys),
	}, "\n")
	return panelString(content)
}
