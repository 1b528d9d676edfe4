package tui

import (
	"rydscheme/internal/query"
	"rydscheme/internal/session"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// newSelectionTable shows sel row for row, so the cursor position is the
// index Pick expects.
func newSelectionTable(sel query.Selection, height int) table.Model {
	headers := sel.Headers()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = xansi.StringWidth(h)
	}
	rows := make([]table.Row, 0, sel.Len())
	for i := 0; i < sel.Len(); i++ {
		cells := sel.Cells(i)
		for c, v := range cells {
			widths[c] = max(widths[c], xansi.StringWidth(v))
		}
		rows = append(rows, table.Row(cells))
	}

	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i] + 1}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(ac("255", "255")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(st)
	return t
}

func tableTitle(st session.State) string {
	switch st {
	case session.StateInit:
		return "Select THz transition"
	case session.StateSeekExciFirst:
		return "Select excitation path"
	case session.StateSeekExci:
		return "Add excitation step"
	case session.StateSeekSponFirst:
		return "Select fluorescence transition"
	case session.StateSeekSpon:
		return "Add fluorescence step"
	}
	return st.String()
}
