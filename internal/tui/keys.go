package tui

import (
	"rydscheme/internal/session"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	EditRange   key.Binding
	SelectExci  key.Binding
	AddExci     key.Binding
	SelectFluor key.Binding
	AddFluor    key.Binding
	TogglePath  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		EditRange:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "THz range")),
		SelectExci:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "select exci")),
		AddExci:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add exci")),
		SelectFluor: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "select fluor")),
		AddFluor:    key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "add fluor")),
		TogglePath:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "spon/exci")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditRange, k.SelectExci, k.AddExci, k.SelectFluor, k.AddFluor, k.TogglePath, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.EditRange, k.TogglePath},
		{k.SelectExci, k.AddExci, k.SelectFluor, k.AddFluor},
		{k.Help, k.Quit},
	}
}

type actionBinding struct {
	binding key.Binding
	action  session.Action
}

func (k keyMap) actions() []actionBinding {
	return []actionBinding{
		{k.SelectExci, session.ActionSelectExcitation},
		{k.AddExci, session.ActionAddExcitation},
		{k.SelectFluor, session.ActionSelectFluorescence},
		{k.AddFluor, session.ActionAddFluorescence},
	}
}

// forSession returns a copy with action bindings enabled exactly when the
// session would accept them, so the help line only lists live actions.
func (k keyMap) forSession(s *session.Session) keyMap {
	k.SelectExci.SetEnabled(s.Enabled(session.ActionSelectExcitation))
	k.AddExci.SetEnabled(s.Enabled(session.ActionAddExcitation))
	k.SelectFluor.SetEnabled(s.Enabled(session.ActionSelectFluorescence))
	k.AddFluor.SetEnabled(s.Enabled(session.ActionAddFluorescence))
	return k
}
