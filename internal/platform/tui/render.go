package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/core"
)

// styleCache memoizes one lipgloss style per color.
type styleCache map[core.Color]lipgloss.Style

func (c styleCache) style(color core.Color) lipgloss.Style {
	if s, ok := c[color]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if color != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(string(color)))
	}
	c[color] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color are grouped to minimize ANSI escapes.
func RenderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styles.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
