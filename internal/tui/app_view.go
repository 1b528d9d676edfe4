package tui

import (
	"fmt"
	"strings"

	"rydscheme/internal/docs"

	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 100

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}

	if m.modal == modalHelp {
		body, _ := docs.Get("keys")
		return stylePanel().Width(w-2).Render(renderMarkdown(body, w-6)) + "\n" +
			styleMuted().Render("esc close")
	}

	parts := []string{m.viewHeader(w), m.viewRange()}
	if m.modal == modalTable {
		parts = append(parts, m.viewTable())
	} else {
		parts = append(parts, m.viewBody(w))
	}
	parts = append(parts, m.viewStatus(w), m.help.View(m.keys.forSession(m.session)))
	return strings.Join(parts, "\n")
}

func (m appModel) viewHeader(w int) string {
	title := styleTitle().Render("rydscheme")
	src := ""
	if m.opts.Source != "" {
		src = styleMuted().Render("  " + m.opts.Source)
	}
	return fitLine(title+src, w)
}

func (m appModel) viewRange() string {
	label := "THz range"
	if !m.editing {
		label += styleMuted().Render(" (r to edit)")
	}
	return fmt.Sprintf("%s  lower: %s  upper: %s", label, m.lowerInput.View(), m.upperInput.View())
}

func (m appModel) viewTable() string {
	head := fmt.Sprintf("%s  %s",
		styleTitle().Render(tableTitle(m.pending.State)),
		styleMuted().Render(fmt.Sprintf("%d row(s) · enter pick · esc cancel", m.pending.Selection.Len())),
	)
	body := m.table.View()
	if m.pending.Selection.Len() == 0 {
		body = styleMuted().Render("No matching transitions.")
	}
	return head + "\n" + stylePanel().Render(body)
}

func (m appModel) viewBody(w int) string {
	leftW := max(w*45/100, 30)
	rightW := max(w-leftW, 20)

	plotW, plotH := rightW-4, 16
	if m.opts.PlotWidth > 0 {
		plotW = m.opts.PlotWidth
	}
	if m.opts.PlotHeight > 0 {
		plotH = m.opts.PlotHeight
	} else if m.height > 0 {
		plotH = max(m.height-8, 8)
	}

	results := normalizePane(m.viewResults(leftW-4), leftW-4, plotH)
	plot := renderPlot(m.session.Scheme(), plotW, plotH)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stylePanel().Render(results),
		stylePanel().Render(plot),
	)
}

func (m appModel) viewResults(w int) string {
	sc := m.session.Scheme()
	lines := []string{}
	if !sc.HasAnchors() {
		lines = append(lines, styleMuted().Render("No THz transition selected."))
	} else {
		lines = append(lines, sc.THzLabel(), sc.UpperLabel(), sc.LowerLabel())
	}
	lines = append(lines, "",
		styleTab(m.tab == tabSpontaneous).Render("Spon path")+" "+styleTab(m.tab == tabExcitation).Render("Exci path"),
	)

	path := sc.SpontaneousLines()
	if m.tab == tabExcitation {
		path = sc.ExcitationLines()
	}
	if len(path) == 0 {
		lines = append(lines, styleMuted().Render("(empty)"))
	}
	lines = append(lines, path...)

	for i := range lines {
		lines[i] = fitLine(lines[i], w)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewStatus(w int) string {
	if m.status == "" {
		return ""
	}
	st := styleMuted()
	if m.statusIsErr {
		st = styleError()
	}
	return st.Render(fitLine(m.status, w))
}
