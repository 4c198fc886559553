package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bonsai/internal/growth"
)

// Theme maps the engine's palette onto terminal colors. Colors are ANSI
// indexes or hex strings.
type Theme struct {
	Name       string
	Leaf       lipgloss.Color
	LeafBright lipgloss.Color
	Bark       lipgloss.Color
	BarkBright lipgloss.Color
	Base       lipgloss.Color
	Text       lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:       "classic",
		Leaf:       lipgloss.Color("2"),
		LeafBright: lipgloss.Color("10"),
		Bark:       lipgloss.Color("3"),
		BarkBright: lipgloss.Color("11"),
		Base:       lipgloss.Color("8"),
		Text:       lipgloss.Color("7"),
	}

	ThemeSakura = Theme{
		Name:       "sakura",
		Leaf:       lipgloss.Color("#ff8fb1"),
		LeafBright: lipgloss.Color("#ffc2d4"),
		Bark:       lipgloss.Color("#6b4226"),
		BarkBright: lipgloss.Color("#8b5a3c"),
		Base:       lipgloss.Color("#8b6b8c"),
		Text:       lipgloss.Color("#fff5f5"),
	}

	ThemeAutumn = Theme{
		Name:       "autumn",
		Leaf:       lipgloss.Color("#d35400"),
		LeafBright: lipgloss.Color("#f39c12"),
		Bark:       lipgloss.Color("#5d4037"),
		BarkBright: lipgloss.Color("#8d6e63"),
		Base:       lipgloss.Color("#666666"),
		Text:       lipgloss.Color("#ffe0b2"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Leaf:       lipgloss.Color("250"),
		LeafBright: lipgloss.Color("255"),
		Bark:       lipgloss.Color("242"),
		BarkBright: lipgloss.Color("246"),
		Base:       lipgloss.Color("238"),
		Text:       lipgloss.Color("252"),
	}

	// Default theme
	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeSakura,
		ThemeAutumn,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, classic when unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Color returns the terminal color of a palette index.
func (t Theme) Color(c growth.Color) lipgloss.Color {
	switch c {
	case growth.ColorLeaf:
		return t.Leaf
	case growth.ColorLeafBright:
		return t.LeafBright
	case growth.ColorBark:
		return t.Bark
	case growth.ColorBarkBright:
		return t.BarkBright
	case growth.ColorGray:
		return t.Base
	}
	return t.Text
}

// Style returns the lipgloss style of one engine style.
func (t Theme) Style(s growth.Style) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color(s.Color)).Bold(s.Bold)
}
