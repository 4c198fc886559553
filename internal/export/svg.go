package export

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/san-kum/bonsai/internal/viz"
)

const (
	cellWidth  = 9.6
	cellHeight = 18.0
	fontSize   = 16.0
)

// GridToSVG renders a grid as SVG text, one <text> element per run of
// cells sharing a style.
func GridToSVG(g *viz.Grid, theme viz.Theme) string {
	if g == nil {
		return ""
	}

	width := float64(g.Width) * cellWidth
	height := float64(g.Height) * cellHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.0f" xml:space="preserve">
`, width, height, width, height, fontSize))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; {
			c := g.Cell(x, y)
			if !c.Set || c.Rune == ' ' {
				x++
				continue
			}
			start := x
			var run strings.Builder
			for x < g.Width {
				n := g.Cell(x, y)
				if !n.Set || n.Style != c.Style {
					break
				}
				run.WriteRune(n.Rune)
				x++
			}
			weight := ""
			if c.Style.Bold {
				weight = ` font-weight="bold"`
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s"%s>%s</text>
`, float64(start)*cellWidth, float64(y+1)*cellHeight-4, hexColor(string(theme.Color(c.Style.Color))), weight, html.EscapeString(run.String())))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

var ansi16 = [16]string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

// hexColor turns a theme color, hex or an xterm 256 index, into #rrggbb.
func hexColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	n, err := strconv.Atoi(c)
	if err != nil || n < 0 || n > 255 {
		return "#c0c0c0"
	}
	switch {
	case n < 16:
		return ansi16[n]
	case n < 232:
		n -= 16
		level := func(v int) int {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		return fmt.Sprintf("#%02x%02x%02x", level(n/36), level(n/6%6), level(n%6))
	default:
		v := 8 + (n-232)*10
		return fmt.Sprintf("#%02x%02x%02x", v, v, v)
	}
}
