package tui

import (
	"os"
	"strconv"
	"strings"

	"rydscheme/internal/render"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Anything that must stay readable on both light and dark terminals
// uses an adaptive colour.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorAccent  lipgloss.TerminalColor = ac("27", "62")
	colorError   lipgloss.TerminalColor = ac("160", "203")
	colorBorder  lipgloss.TerminalColor = ac("250", "240")
	colorTabOnBg lipgloss.TerminalColor = ac("252", "237")

	// Plot colours. "Black" anchors flip to white on dark backgrounds.
	colorAnchor      lipgloss.TerminalColor = ac("0", "15")
	colorExcitation  lipgloss.TerminalColor = ac("1", "9")
	colorSpontaneous lipgloss.TerminalColor = ac("2", "10")
)

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func stylePanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
}

func styleTab(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return st.Bold(true).Background(colorTabOnBg)
	}
	return faintIfDark(st.Foreground(colorMuted))
}

func plotStyle(k render.Kind) lipgloss.Style {
	switch k {
	case render.KindExcitation:
		return lipgloss.NewStyle().Foreground(colorExcitation)
	case render.KindSpontaneous:
		return lipgloss.NewStyle().Foreground(colorSpontaneous)
	default:
		return lipgloss.NewStyle().Foreground(colorAnchor).Bold(true)
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honours CLICOLOR, which tends to switch colours
// off inside a TUI. Only NO_COLOR is respected here; otherwise the terminal's
// reported capabilities win, upgraded when TERM/COLORTERM say more.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference overrides background detection.
//
// Priority:
// 1) RYDSCHEME_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("RYDSCHEME_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
