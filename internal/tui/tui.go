package tui

import (
	"rydscheme/internal/config"
	"rydscheme/internal/dataset"

	tea "github.com/charmbracelet/bubbletea"
)

// Options tune the interactive program. Zero plot sizes follow the window.
type Options struct {
	Source     string
	PlotWidth  int
	PlotHeight int
}

func Run(ds *dataset.Dataset, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ds, opts)
	if st, err := config.LoadTUIState(); err == nil {
		m.restoreState(st)
	}
	m.persistState = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
