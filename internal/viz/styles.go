package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bonsai/internal/growth"
)

// Panel styles of the live viewer.
var (
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(36)

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	messageBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Render draws the grid with the theme's colors. Runs of cells sharing a
// style are rendered together; blank cells stay unstyled.
func Render(g *Grid, theme Theme) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	styles := map[growth.Style]lipgloss.Style{}
	styleOf := func(s growth.Style) lipgloss.Style {
		st, ok := styles[s]
		if !ok {
			st = theme.Style(s)
			styles[s] = st
		}
		return st
	}

	var b strings.Builder
	for y, row := range g.cells {
		end := len(row)
		for end > 0 && !row[end-1].Set {
			end--
		}
		for x := 0; x < end; {
			c := row[x]
			run := []rune{}
			if !c.Set {
				for x < end && !row[x].Set {
					run = append(run, ' ')
					x++
				}
				b.WriteString(string(run))
				continue
			}
			for x < end && row[x].Set && row[x].Style == c.Style {
				run = append(run, row[x].Rune)
				x++
			}
			b.WriteString(styleOf(c.Style).Render(string(run)))
		}
		if y < len(g.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// MessageBox wraps msg in a rounded box no wider than width.
func MessageBox(msg string, width int, theme Theme) string {
	if msg == "" {
		return ""
	}
	inner := lipgloss.Width(msg)
	if inner > width-4 {
		inner = width - 4
	}
	if inner < 1 {
		inner = 1
	}
	return messageBox.
		BorderForeground(theme.Base).
		Foreground(theme.Text).
		Width(inner + 2).
		Render(msg)
}

// Compose renders the grid and places the message box beside it.
func Compose(g *Grid, message string, theme Theme) string {
	art := Render(g, theme)
	if message == "" {
		return art
	}
	box := MessageBox(message, max(g.Width/3, 20), theme)
	return lipgloss.JoinHorizontal(lipgloss.Center, art, "  ", box)
}
