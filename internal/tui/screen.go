package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/viz"
)

// Screen is a growth.Canvas drawing straight onto a tcell screen. The tree
// area is the screen minus the rows taken by the base.
type Screen struct {
	screen tcell.Screen
	theme  viz.Theme
	base   string
	styles map[growth.Style]tcell.Style
}

func NewScreen(s tcell.Screen, theme viz.Theme, base string) *Screen {
	return &Screen{
		screen: s,
		theme:  theme,
		base:   base,
		styles: make(map[growth.Style]tcell.Style),
	}
}

func (s *Screen) Bounds() (int, int) {
	w, h := s.screen.Size()
	_, bh := config.BaseSize(s.base)
	return w, h - bh
}

func (s *Screen) Write(pos growth.Position, text string, style growth.Style) {
	w, h := s.Bounds()
	if pos.Y < 0 || pos.Y >= h {
		return
	}
	st := s.style(style)
	x := pos.X
	for _, r := range text {
		if x >= 0 && x < w {
			s.screen.SetContent(x, pos.Y, r, nil, st)
		}
		x++
	}
}

func (s *Screen) Flush() { s.screen.Show() }

func (s *Screen) style(gs growth.Style) tcell.Style {
	st, ok := s.styles[gs]
	if !ok {
		st = tcell.StyleDefault.Foreground(termColor(string(s.theme.Color(gs.Color)))).Bold(gs.Bold)
		s.styles[gs] = st
	}
	return st
}

// termColor maps a theme color, an ANSI index or a hex string, to tcell.
func termColor(c string) tcell.Color {
	if strings.HasPrefix(c, "#") {
		return tcell.GetColor(c)
	}
	n := 0
	for _, d := range c {
		if d < '0' || d > '9' {
			return tcell.ColorDefault
		}
		n = n*10 + int(d-'0')
	}
	return tcell.PaletteColor(n)
}

// Scene clears the screen and draws the base and the message box.
func (s *Screen) Scene(message string) {
	s.screen.Clear()
	w, h := s.screen.Size()
	g := viz.NewGrid(w, h)
	viz.DrawBase(g, s.base)
	s.blit(g)
	if message != "" {
		s.drawMessage(message, w, h)
	}
	s.screen.Show()
}

func (s *Screen) blit(g *viz.Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if c := g.Cell(x, y); c.Set {
				s.screen.SetContent(x, y, c.Rune, nil, s.style(c.Style))
			}
		}
	}
}

// drawMessage puts a rounded box with the wrapped message at 70% of the
// screen in both directions.
func (s *Screen) drawMessage(message string, w, h int) {
	lines := wrap(message, max(w/4, 8))
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	x0 := w * 7 / 10
	y0 := h * 7 / 10
	if x0+inner+4 > w {
		x0 = max(w-inner-4, 0)
	}
	if y0+len(lines)+2 > h {
		y0 = max(h-len(lines)-2, 0)
	}

	border := tcell.StyleDefault.Foreground(termColor(string(s.theme.Base)))
	text := tcell.StyleDefault.Foreground(termColor(string(s.theme.Text)))
	x1 := x0 + inner + 3
	y1 := y0 + len(lines) + 1
	for x := x0 + 1; x < x1; x++ {
		s.screen.SetContent(x, y0, '─', nil, border)
		s.screen.SetContent(x, y1, '─', nil, border)
	}
	for y := y0 + 1; y < y1; y++ {
		s.screen.SetContent(x0, y, '│', nil, border)
		s.screen.SetContent(x1, y, '│', nil, border)
		for x := x0 + 1; x < x1; x++ {
			s.screen.SetContent(x, y, ' ', nil, text)
		}
	}
	s.screen.SetContent(x0, y0, '╭', nil, border)
	s.screen.SetContent(x1, y0, '╮', nil, border)
	s.screen.SetContent(x0, y1, '╰', nil, border)
	s.screen.SetContent(x1, y1, '╯', nil, border)
	for i, l := range lines {
		for j, r := range []rune(l) {
			s.screen.SetContent(x0+2+j, y0+1+i, r, nil, text)
		}
	}
}

// wrap breaks text into lines of at most width runes, splitting on spaces
// and hard-breaking longer words.
func wrap(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		for len(wr) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}
		switch {
		case len(cur) == 0:
			cur = wr
		case len(cur)+1+len(wr) <= width:
			cur = append(append(cur, ' '), wr...)
		default:
			lines = append(lines, string(cur))
			cur = wr
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
