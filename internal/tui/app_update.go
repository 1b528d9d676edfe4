package tui

import (
	"fmt"

	"rydscheme/internal/query"
	"rydscheme/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.modal == modalTable {
			m.table.SetHeight(m.tableHeight())
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalTable:
			return m.updateTable(msg)
		case modalHelp:
			return m.updateHelp(msg)
		}
		if m.editing {
			return m.updateRange(msg)
		}
		return m.updateMain(msg)
	}

	if m.editing {
		return m.forwardToInput(msg)
	}
	return m, nil
}

func (m appModel) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "tab", "shift+tab":
		if m.field == fieldLower {
			return m, m.focusField(fieldUpper)
		}
		return m, m.focusField(fieldLower)
	case "enter":
		m.applyRange()
		return m, nil
	}
	return m.forwardToInput(msg)
}

func (m appModel) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.field == fieldLower {
		m.lowerInput, cmd = m.lowerInput.Update(msg)
	} else {
		m.upperInput, cmd = m.upperInput.Update(msg)
	}
	return m, cmd
}

func (m *appModel) applyRange() {
	r, err := query.ParseRange(m.lowerInput.Value(), m.upperInput.Value())
	if err != nil {
		m.setError(err)
		return
	}
	p, err := m.session.ApplyRange(r)
	if err != nil {
		m.setError(err)
		return
	}
	m.stopEditing()
	m.openTable(p)
	m.saveState()
	m.debugEvent("range", nil)
	m.setStatus(fmt.Sprintf("%d THz transitions strictly inside (%g, %g) THz.", p.Selection.Len(), r.Lower, r.Upper))
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveState()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil
	case key.Matches(msg, m.keys.EditRange):
		m.editing = true
		return m, m.focusField(m.field)
	case key.Matches(msg, m.keys.TogglePath):
		if m.tab == tabSpontaneous {
			m.tab = tabExcitation
		} else {
			m.tab = tabSpontaneous
		}
		return m, nil
	}

	for _, ab := range m.keys.actions() {
		if key.Matches(msg, ab.binding) {
			m.begin(ab.action)
			return m, nil
		}
	}
	return m, nil
}

func (m *appModel) begin(a session.Action) {
	p, err := m.session.Begin(a)
	if err != nil {
		m.setError(err)
		return
	}
	m.openTable(p)
	m.debugEvent("begin", nil)
	// The path the user is working on becomes the listed one.
	switch a {
	case session.ActionSelectExcitation, session.ActionAddExcitation:
		m.tab = tabExcitation
	default:
		m.tab = tabSpontaneous
	}
	m.setStatus(fmt.Sprintf("%s %d candidate(s).", a, p.Selection.Len()))
}

func (m *appModel) openTable(p session.Pending) {
	m.pending = p
	m.modal = modalTable
	m.table = newSelectionTable(p.Selection, m.tableHeight())
}

func (m appModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.session.Cancel()
		m.modal = modalNone
		m.debugEvent("cancel", nil)
		m.setStatus("Selection cancelled.")
		return m, nil

	case "enter":
		m.modal = modalNone
		if m.pending.Selection.Len() == 0 {
			m.session.Cancel()
			m.debugEvent("cancel", nil)
			m.setStatus("Nothing to pick.")
			return m, nil
		}
		err := m.session.Pick(m.pending, m.table.Cursor())
		m.debugEvent("pick", err)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(m.pickedStatus())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m appModel) pickedStatus() string {
	sc := m.session.Scheme()
	switch m.session.State() {
	case session.StateTHzReady:
		return sc.THzLabel()
	case session.StateSeekExciFirst, session.StateSeekExci:
		return fmt.Sprintf("Excitation path has %d step(s).", len(sc.Excitation))
	case session.StateSeekSponFirst, session.StateSeekSpon:
		return fmt.Sprintf("Spontaneous path has %d step(s).", len(sc.Spontaneous))
	}
	return ""
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "enter":
		m.modal = modalNone
	}
	return m, nil
}

func (m appModel) tableHeight() int {
	if m.height <= 0 {
		return 12
	}
	return max(m.height-9, 3)
}
