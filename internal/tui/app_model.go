package tui

import (
	"os"
	"strings"

	"rydscheme/internal/config"
	"rydscheme/internal/dataset"
	"rydscheme/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalTable
	modalHelp
)

type rangeField int

const (
	fieldLower rangeField = iota
	fieldUpper
)

type pathTab int

const (
	tabSpontaneous pathTab = iota
	tabExcitation
)

type appModel struct {
	session *session.Session
	opts    Options

	width  int
	height int

	lowerInput textinput.Model
	upperInput textinput.Model
	editing    bool
	field      rangeField

	modal   modalKind
	pending session.Pending
	table   table.Model

	tab  pathTab
	keys keyMap
	help help.Model

	status      string
	statusIsErr bool

	debugLogPath string
	persistState bool
}

func newAppModel(ds *dataset.Dataset, opts Options) appModel {
	m := appModel{
		session:      session.New(ds),
		opts:         opts,
		keys:         newKeyMap(),
		help:         help.New(),
		editing:      true,
		debugLogPath: strings.TrimSpace(os.Getenv("RYDSCHEME_TUI_DEBUG_LOG")),
	}

	m.lowerInput = newRangeInput("lower THz")
	m.upperInput = newRangeInput("upper THz")
	m.lowerInput.Focus()
	m.status = "Enter a THz range and press enter."
	return m
}

func newRangeInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 24
	in.Width = 12
	return in
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *appModel) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusIsErr = true
}

func (m *appModel) focusField(f rangeField) tea.Cmd {
	m.field = f
	if f == fieldLower {
		m.upperInput.Blur()
		return m.lowerInput.Focus()
	}
	m.lowerInput.Blur()
	return m.upperInput.Focus()
}

func (m *appModel) stopEditing() {
	m.editing = false
	m.lowerInput.Blur()
	m.upperInput.Blur()
}

func (m *appModel) restoreState(st *config.TUIState) {
	if st == nil {
		return
	}
	m.lowerInput.SetValue(st.RangeLower)
	m.upperInput.SetValue(st.RangeUpper)
	if st.PathTab == "exci" {
		m.tab = tabExcitation
	}
}

// saveState is best effort; a failed write only costs the restore.
func (m appModel) saveState() {
	if !m.persistState {
		return
	}
	tab := "spon"
	if m.tab == tabExcitation {
		tab = "exci"
	}
	_ = config.SaveTUIState(&config.TUIState{
		RangeLower: m.lowerInput.Value(),
		RangeUpper: m.upperInput.Value(),
		PathTab:    tab,
	})
}
