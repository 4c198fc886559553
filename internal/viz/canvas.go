package viz

import (
	"strings"
	"sync"

	"github.com/san-kum/bonsai/internal/growth"
)

// Cell is one character of the grid.
type Cell struct {
	Rune  rune
	Style growth.Style
	Set   bool
}

// Grid is an in-memory character canvas. It is safe for one writer and
// concurrent readers.
type Grid struct {
	Width, Height int

	mu    sync.RWMutex
	cells [][]Cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{
		Width:  w,
		Height: h,
		cells:  make([][]Cell, h),
	}
	for i := range g.cells {
		g.cells[i] = make([]Cell, w)
	}
	return g
}

func (g *Grid) Bounds() (int, int) { return g.Width, g.Height }

// Write puts text on one row starting at pos. Characters outside the grid
// are dropped.
func (g *Grid) Write(pos growth.Position, text string, style growth.Style) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.write(pos, text, style)
}

func (g *Grid) write(pos growth.Position, text string, style growth.Style) {
	if pos.Y < 0 || pos.Y >= g.Height {
		return
	}
	x := pos.X
	for _, r := range text {
		if x >= 0 && x < g.Width {
			g.cells[pos.Y][x] = Cell{Rune: r, Style: style, Set: true}
		}
		x++
	}
}

func (g *Grid) Flush() {}

// Cell returns the cell at (x, y); the zero Cell outside the grid.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Cell{}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[y][x]
}

// Clear resets every cell.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cells {
		for j := range g.cells[i] {
			g.cells[i][j] = Cell{}
		}
	}
}

// Sub returns a canvas over the top-left w x h corner of the grid.
func (g *Grid) Sub(w, h int) *Region {
	return &Region{grid: g, w: min(w, g.Width), h: min(h, g.Height)}
}

// String renders the grid without styling, trailing blanks trimmed.
func (g *Grid) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b strings.Builder
	for _, row := range g.cells {
		line := make([]rune, len(row))
		for i, c := range row {
			line[i] = ' '
			if c.Set {
				line[i] = c.Rune
			}
		}
		b.WriteString(strings.TrimRight(string(line), " ") + "\n")
	}
	return b.String()
}

// Region is a clipped window onto a Grid. The tree grows in a region that
// leaves room for the base.
type Region struct {
	grid *Grid
	w, h int
}

func (r *Region) Bounds() (int, int) { return r.w, r.h }

func (r *Region) Write(pos growth.Position, text string, style growth.Style) {
	if pos.Y < 0 || pos.Y >= r.h {
		return
	}
	runes := []rune(text)
	if pos.X+len(runes) > r.w {
		keep := r.w - pos.X
		if keep <= 0 {
			return
		}
		runes = runes[:keep]
	}
	r.grid.Write(pos, string(runes), style)
}

func (r *Region) Flush() { r.grid.Flush() }
