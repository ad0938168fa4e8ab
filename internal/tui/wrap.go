package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styledChip is a rendered label plus its display width without styling.
type styledChip struct {
	s     string
	width int
}

func newChip(label string, style lipgloss.Style) styledChip {
	return styledChip{
		s:     style.Render(label),
		width: runewidth.StringWidth(label),
	}
}

func renderChips(chips []styledChip) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = c.s
	}
	return strings.Join(parts, "  ")
}

// wrapChips lays chips out in lines no wider than width, two spaces apart.
// A chip wider than width gets a line of its own.
func wrapChips(chips []styledChip, width int) string {
	if width <= 0 {
		return renderChips(chips)
	}
	var out strings.Builder
	line := make([]styledChip, 0, len(chips))
	lineWidth := 0
	for _, c := range chips {
		needed := c.width
		if len(line) > 0 {
			needed += 2
		}
		if lineWidth+needed > width && len(line) > 0 {
			out.WriteString(renderChips(line))
			out.WriteRune('\n')
			line = line[:0]
			lineWidth = 0
			needed = c.width
		}
		line = append(line, c)
		lineWidth += needed
	}
	out.WriteString(renderChips(line))
	return out.String()
}
