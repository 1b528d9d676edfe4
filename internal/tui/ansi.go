package tui

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines so panes line up under lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	width = max(width, 0)
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates or pads ln to width display columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(ln) > width {
		ln = xansi.Truncate(ln, width, "…")
	}
	if w := xansi.StringWidth(ln); w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func fmtInt(n int) string { return strconv.Itoa(n) }
