package viz

import (
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/growth"
)

type segment struct {
	text  string
	style growth.Style
}

var (
	gray       = growth.Style{Color: growth.ColorGray}
	grayBold   = growth.Style{Color: growth.ColorGray, Bold: true}
	moss       = growth.Style{Color: growth.ColorLeaf}
	mossBold   = growth.Style{Color: growth.ColorLeaf, Bold: true}
	trunkFoot  = growth.Style{Color: growth.ColorBarkBright}
	trunkFootB = growth.Style{Color: growth.ColorBarkBright, Bold: true}
)

var baseArt = map[string][][]segment{
	config.BaseSmall: {
		{{"(", gray}, {"---", moss}, {"./~~~\\.", trunkFoot}, {"---", moss}, {")", gray}},
		{{" (           ) ", gray}},
		{{"  (_________)  ", gray}},
	},
	config.BaseBig: {
		{{":", grayBold}, {"___________", mossBold}, {"./~~~\\.", trunkFootB}, {"___________", mossBold}, {":", grayBold}},
		{{" \\                           / ", grayBold}},
		{{"  \\_________________________/ ", grayBold}},
		{{"  (_)                     (_)", grayBold}},
	},
}

// NewScene allocates a w x h grid with the base drawn bottom-center and
// returns it with the region the tree may grow in.
func NewScene(w, h int, base string) (*Grid, *Region) {
	g := NewGrid(w, h)
	DrawBase(g, base)
	_, bh := config.BaseSize(base)
	return g, g.Sub(w, h-bh)
}

// DrawBase paints the base art centered on the bottom rows of the grid.
func DrawBase(g *Grid, base string) {
	art, ok := baseArt[base]
	if !ok {
		return
	}
	bw, bh := config.BaseSize(base)
	x0 := g.Width/2 - bw/2
	y0 := g.Height - bh
	for i, row := range art {
		x := x0
		for _, seg := range row {
			g.Write(growth.Position{X: x, Y: y0 + i}, seg.text, seg.style)
			x += len([]rune(seg.text))
		}
	}
}

// ClearTree blanks the tree region and redraws the base.
func ClearTree(g *Grid, base string) {
	g.Clear()
	DrawBase(g, base)
}
