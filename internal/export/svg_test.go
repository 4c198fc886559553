package export

import (
	"strings"
	"testing"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/viz"
)

func TestGridToSVG(t *testing.T) {
	g := viz.NewGrid(10, 3)
	g.Write(growth.Position{X: 2, Y: 0}, "&&", growth.Style{Color: growth.ColorLeaf})
	g.Write(growth.Position{X: 4, Y: 0}, "<", growth.Style{Color: growth.ColorBark, Bold: true})

	svg := GridToSVG(g, viz.ThemeClassic)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if strings.Count(svg, "<text") != 2 {
		t.Errorf("expected 2 text runs, got %d", strings.Count(svg, "<text"))
	}
	if !strings.Contains(svg, `fill="#008000">&amp;&amp;</text>`) {
		t.Error("leaf run missing or not escaped")
	}
	if !strings.Contains(svg, `font-weight="bold">&lt;</text>`) {
		t.Error("bold bark run missing")
	}
}

func TestGridToSVGNil(t *testing.T) {
	if GridToSVG(nil, viz.ThemeClassic) != "" {
		t.Error("expected empty output for nil grid")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#ff8fb1", "#ff8fb1"},
		{"2", "#008000"},
		{"11", "#ffff00"},
		{"16", "#000000"},
		{"196", "#ff0000"},
		{"232", "#080808"},
		{"255", "#eeeeee"},
		{"nope", "#c0c0c0"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
