package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemfall/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "gem")
	s.DrawTextColored(4, 0, "◆●", core.ColorBrightRed)
	s.DrawText(0, 1, "fall")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, want 2", len(lines))
	}
	for _, want := range []string{"gem", "◆●"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 = %q, missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "fall") {
		t.Errorf("line 1 = %q, missing %q", lines[1], "fall")
	}
}

func TestPaletteWithoutColorIsPlain(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "◆", core.ColorBrightRed)
	s.DrawTextColored(1, 0, "●", core.ColorOrange)
	s.DrawText(2, 0, "ok")

	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	out := p.Render(s)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Render(%q) has escape codes for a colorless output", out)
	}
	if !strings.HasPrefix(out, "◆●ok") {
		t.Errorf("Render = %q, want prefix %q", out, "◆●ok")
	}
}

func TestPaletteCoversEveryColor(t *testing.T) {
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := p[c]; !ok {
			t.Errorf("palette has no style for color %d", c)
		}
	}
}
