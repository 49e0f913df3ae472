package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Remove   key.Binding
	AddFocus key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		Remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		AddFocus: key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a/tab", "add task")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Remove, k.AddFocus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Edit, k.Submit, k.Cancel},
		{k.Remove, k.AddFocus},
		{k.Help, k.Quit},
	}
}

// KeyHelpMarkdown documents the key map as a Markdown table.
func KeyHelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# tasks\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, col := range defaultKeyMap().FullHelp() {
		for _, kb := range col {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nRemoving a task asks for confirmation: `y`/`n`, or `tab` then `enter`.\n")
	b.WriteString("While a title is being edited the row cannot be removed.\n")
	return b.String()
}
