// Package render projects a scheme onto a level diagram: l number on the
// horizontal axis, energy on the vertical one.
package render

import (
	"fmt"

	"rydscheme/internal/dataset"
	"rydscheme/internal/scheme"
)

type Kind int

const (
	KindAnchor Kind = iota
	KindExcitation
	KindSpontaneous
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindExcitation:
		return "excitation"
	default:
		return "spontaneous"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// MarkerHalfWidth is the half length of a level marker in l units.
const MarkerHalfWidth = 0.2

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Marker is a short horizontal bar drawn at a level.
type Marker struct {
	Kind  Kind   `json:"kind"`
	At    Point  `json:"at"`
	Label string `json:"label"`
}

// Segment joins two consecutive levels of a path.
type Segment struct {
	Kind Kind  `json:"kind"`
	From Point `json:"from"`
	To   Point `json:"to"`
}

type Scene struct {
	Markers  []Marker  `json:"markers"`
	Segments []Segment `json:"segments"`
	XLabel   string    `json:"xLabel"`
	YLabel   string    `json:"yLabel"`
}

// Project builds the scene for sc. It never fails; a scheme without anchors
// yields a scene with no markers.
func Project(sc scheme.Scheme) Scene {
	s := Scene{
		Markers:  []Marker{},
		Segments: []Segment{},
		XLabel:   "l number",
		YLabel:   "Energy (eV)",
	}
	if !sc.HasAnchors() {
		return s
	}

	lower := Point{X: float64(sc.Lower.L), Y: sc.Lower.Energy}
	upper := Point{X: float64(sc.Upper.L), Y: sc.Upper.Energy}
	s.Markers = append(s.Markers,
		Marker{Kind: KindAnchor, At: lower, Label: levelLabel(sc.Lower.Key())},
		Marker{Kind: KindAnchor, At: upper, Label: levelLabel(sc.Upper.Key())},
	)

	prev := lower
	for _, st := range sc.Excitation {
		at := Point{X: float64(st.L), Y: st.Energy}
		s.Markers = append(s.Markers, Marker{Kind: KindExcitation, At: at, Label: levelLabel(st.Key())})
		s.Segments = append(s.Segments, Segment{Kind: KindExcitation, From: prev, To: at})
		prev = at
	}

	prev = upper
	for _, st := range sc.Spontaneous {
		at := Point{X: float64(st.L), Y: st.Energy}
		s.Markers = append(s.Markers, Marker{Kind: KindSpontaneous, At: at, Label: levelLabel(st.Key)})
		s.Segments = append(s.Segments, Segment{Kind: KindSpontaneous, From: prev, To: at})
		prev = at
	}
	return s
}

// Bounds returns the data extent including marker widths.
func (s Scene) Bounds() (minX, maxX, minY, maxY float64) {
	for i, m := range s.Markers {
		if i == 0 {
			minX, maxX, minY, maxY = m.At.X, m.At.X, m.At.Y, m.At.Y
			continue
		}
		minX = min(minX, m.At.X)
		maxX = max(maxX, m.At.X)
		minY = min(minY, m.At.Y)
		maxY = max(maxY, m.At.Y)
	}
	return minX - MarkerHalfWidth, maxX + MarkerHalfWidth, minY, maxY
}

func levelLabel(k dataset.Key) string {
	return fmt.Sprintf("%d%s%s", k.N, dataset.TermSymbol(k.L), jLabel(k.J))
}

func jLabel(j float64) string {
	if j2 := int(2 * j); float64(j2) == 2*j && j2%2 == 1 {
		return fmt.Sprintf("%d/2", j2)
	}
	return fmt.Sprintf("%g", j)
}
