package publish

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"rydscheme/internal/dataset"
	"rydscheme/internal/scheme"
)

type RenderOptions struct {
	// Source is the dataset location, shown in the Meta section.
	Source    string
	SessionID string
	// Range is the THz range as the user gave it, e.g. "(0.3, 3)".
	Range string
}

// RenderSchemeMarkdown writes sc as a standalone markdown report.
func RenderSchemeMarkdown(sc scheme.Scheme, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Rydberg THz scheme")
	writeLn("")

	meta := [][2]string{
		{"Source", opt.Source},
		{"Session", opt.SessionID},
		{"THz range", opt.Range},
	}
	wroteMeta := false
	for _, kv := range meta {
		if strings.TrimSpace(kv[1]) == "" {
			continue
		}
		if !wroteMeta {
			writeLn("## Meta")
			writeLn("")
			wroteMeta = true
		}
		writeLn("- " + kv[0] + ": " + kv[1])
	}
	if wroteMeta {
		writeLn("")
	}

	if !sc.HasAnchors() {
		writeLn("_No THz transition selected._")
		return buf.String()
	}

	writeLn("## THz transition")
	writeLn("")
	writeLn(sc.THzLabel())
	writeLn("")
	writeLn("| Level | (n, l, j, mj) | Term | Energy (eV) | Decay rate (1/s) |")
	writeLn("|---|---|---|---|---|")
	for _, a := range []struct {
		name string
		at   *scheme.Anchor
	}{{"Upper", sc.Upper}, {"Lower", sc.Lower}} {
		writeLn(fmt.Sprintf("| %s | %s | %s | %s | %s |", a.name, a.at.State, term(a.at.Key()), num(a.at.Energy), num(a.at.Lifetime)))
	}
	writeLn("")

	writeLn("## Excitation path")
	writeLn("")
	if len(sc.Excitation) == 0 {
		writeLn("_Empty._")
	} else {
		writeLn("| Step | From | To | Term | λ (nm) | Dipole | Energy (eV) |")
		writeLn("|---|---|---|---|---|---|---|")
		for i, st := range sc.Excitation {
			writeLn(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s |", i, st.From, st.State, term(st.Key()), num(st.Wavelength), num(st.Dipole), num(st.Energy)))
		}
	}
	writeLn("")

	writeLn("## Spontaneous path")
	writeLn("")
	if len(sc.Spontaneous) == 0 {
		writeLn("_Empty._")
	} else {
		writeLn("| Step | From | To | Term | λ (nm) | Rate (1/s) | Energy (eV) |")
		writeLn("|---|---|---|---|---|---|---|")
		for i, st := range sc.Spontaneous {
			writeLn(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s |", i, st.From, st.Key, term(st.Key), num(st.Wavelength), num(st.Rate), num(st.Energy)))
		}
	}
	return buf.String()
}

func term(k dataset.Key) string {
	return strconv.Itoa(k.N) + dataset.TermSymbol(k.L)
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
