package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemfall/internal/core"
)

// ansiColors is the terminal palette entry for each core.Color.
var ansiColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorYellow:        "3",
	core.ColorCyan:          "6",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette maps core.Color to lipgloss styles bound to one renderer.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the gem palette for r. SSH sessions pass their own
// renderer so the color profile matches the client terminal.
func NewPalette(r *lipgloss.Renderer) Palette {
	p := make(Palette, len(ansiColors)+1)
	p[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiColors {
		p[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPalette = NewPalette(lipgloss.DefaultRenderer())

// Render converts a Screen buffer to a styled string.
// Adjacent cells of the same color share one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[color]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s for the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}
