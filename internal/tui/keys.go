package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Toggle    key.Binding
	Note      key.Binding
	Theme     key.Binding
	Refresh   key.Binding
	Quit      key.Binding

	Save   key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		PrevMonth: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next month")),
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle day")),
		Note:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) browsing() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.PrevDay, k.NextDay, k.Toggle, k.Note, k.Theme, k.Refresh, k.Quit}
}

func (k keyMap) editing() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
