package render

import "math"

// Cell is one character of a rasterized scene. Set is false for background.
type Cell struct {
	Rune rune
	Kind Kind
	Set  bool
}

// Grid is a character canvas, row 0 at the top (highest energy).
type Grid struct {
	W, H  int
	Cells [][]Cell
}

const (
	minGridW = 8
	minGridH = 4
)

// Rasterize draws s onto a w×h grid. Segments are drawn first so level
// markers stay visible where they overlap.
func Rasterize(s Scene, w, h int) Grid {
	w = max(w, minGridW)
	h = max(h, minGridH)
	g := Grid{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, w)
	}
	if len(s.Markers) == 0 {
		return g
	}

	minX, maxX, minY, maxY := s.Bounds()
	padX := 0.3
	minX -= padX
	maxX += padX
	if maxY-minY < 1e-12 {
		minY -= 0.1
		maxY += 0.1
	}
	padY := (maxY - minY) * 0.05
	minY -= padY
	maxY += padY

	col := func(x float64) int {
		return clamp(int(math.Round((x-minX)/(maxX-minX)*float64(w-1))), 0, w-1)
	}
	row := func(y float64) int {
		return clamp(int(math.Round((maxY-y)/(maxY-minY)*float64(h-1))), 0, h-1)
	}

	for _, seg := range s.Segments {
		g.line(col(seg.From.X), row(seg.From.Y), col(seg.To.X), row(seg.To.Y), seg.Kind)
	}
	for _, m := range s.Markers {
		x0 := col(m.At.X - MarkerHalfWidth)
		x1 := col(m.At.X + MarkerHalfWidth)
		y := row(m.At.Y)
		for x := x0; x <= x1; x++ {
			g.Cells[y][x] = Cell{Rune: '─', Kind: m.Kind, Set: true}
		}
	}
	return g
}

// line draws with Bresenham's algorithm.
func (g Grid) line(x0, y0, x1, y1 int, k Kind) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.Cells[y0][x0] = Cell{Rune: '·', Kind: k, Set: true}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Lines returns the grid as plain text.
func (g Grid) Lines() []string {
	out := make([]string, g.H)
	for y, cells := range g.Cells {
		rs := make([]rune, g.W)
		for x, c := range cells {
			if c.Set {
				rs[x] = c.Rune
			} else {
				rs[x] = ' '
			}
		}
		out[y] = string(rs)
	}
	return out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
