package tui

import (
	"fmt"
	"strings"

	"rydscheme/internal/render"
	"rydscheme/internal/scheme"

	"github.com/charmbracelet/lipgloss"
)

// renderPlot draws the level diagram of sc in a w×h box: y-axis title on
// top, then the canvas with energy ticks, then the x axis and its title.
func renderPlot(sc scheme.Scheme, w, h int) string {
	scene := render.Project(sc)

	const tickW = 7
	gw := max(w-tickW-1, 8)
	gh := max(h-4, 4)
	grid := render.Rasterize(scene, gw, gh)

	ticks := make([]string, gh)
	if len(scene.Markers) > 0 {
		_, _, minY, maxY := scene.Bounds()
		ticks[0] = fmt.Sprintf("%.3f", maxY)
		ticks[gh-1] = fmt.Sprintf("%.3f", minY)
	}

	muted := styleMuted()
	var b strings.Builder
	b.WriteString(muted.Render(scene.YLabel))
	b.WriteByte('\n')
	for y, cells := range grid.Cells {
		b.WriteString(muted.Render(fmt.Sprintf("%*s", tickW, ticks[y])))
		b.WriteString(muted.Render("│"))
		for _, c := range cells {
			if !c.Set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(plotStyle(c.Kind).Render(string(c.Rune)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(muted.Render(strings.Repeat(" ", tickW) + "└" + strings.Repeat("─", gw)))
	b.WriteByte('\n')
	b.WriteString(muted.Render(lipgloss.PlaceHorizontal(tickW+1+gw, lipgloss.Center, scene.XLabel)))
	b.WriteByte('\n')
	b.WriteString(plotLegend())
	return b.String()
}

func plotLegend() string {
	return strings.Join([]string{
		plotStyle(render.KindAnchor).Render("─ Rydberg"),
		plotStyle(render.KindExcitation).Render("─ excitation"),
		plotStyle(render.KindSpontaneous).Render("─ spontaneous"),
	}, "  ")
}
