package tui

import "github.com/charmbracelet/bubbles/key"

// projectsKeyMap holds the bindings of the main list. Modal states match keys directly.
type projectsKeyMap struct {
	Quit   key.Binding
	Down   key.Binding
	Up     key.Binding
	Toggle key.Binding
	Add    key.Binding
	Delete key.Binding
	Report key.Binding
	Help   key.Binding
	Escape key.Binding
}

func newProjectsKeyMap() projectsKeyMap {
	return projectsKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "start/stop")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Report: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Escape: key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k projectsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Delete, k.Report, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k projectsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Toggle},
		{k.Add, k.Delete, k.Report},
		{k.Help, k.Quit},
	}
}

// setListEmpty disables bindings that need a selected task.
func (k *projectsKeyMap) setListEmpty(empty bool) {
	k.Toggle.SetEnabled(!empty)
	k.Delete.SetEnabled(!empty)
}
