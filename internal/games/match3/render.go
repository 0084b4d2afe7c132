package match3

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
)

const (
	cellWidth    = 3  // Width of each cell: marker, gem, marker
	hudHeight    = 5  // HUD lines above the board, including the gap
	footerHeight = 2  // Note and controls lines
	hudMinWidth  = 34 // Widest HUD line
)

type gemStyle struct {
	glyph rune
	color core.Color
}

var gemStyles = map[engine.Kind]gemStyle{
	engine.KindRuby:     {'◆', core.ColorBrightRed},
	engine.KindBlood:    {'●', core.ColorRed},
	engine.KindAmethyst: {'▲', core.ColorBrightMagenta},
	engine.KindOnyx:     {'■', core.ColorGray},
	engine.KindSilver:   {'✦', core.ColorBrightWhite},
	engine.KindChest:    {'$', core.ColorYellow},
}

// styleFor returns the glyph and color of a tile. Powered tiles show the
// power glyph in the gem color.
func styleFor(t engine.Tile) gemStyle {
	st, ok := gemStyles[t.Kind]
	if !ok {
		st = gemStyle{'?', core.ColorDefault}
	}
	if t.Power != engine.PowerNone {
		st.glyph = t.Power.Glyph()
	}
	return st
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.ctrl == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	b := g.ctrl.Board()
	boardW := b.Size*cellWidth + 2
	boardH := b.Size + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, b, boardX, boardY)
	g.renderFooter(dst, boardX, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws level, score, budget and goal lines.
func (g *Game) renderHUD(dst *core.Screen, x int) {
	s := g.ctrl.Snapshot()
	if x < 0 {
		x = 0
	}

	title := fmt.Sprintf("GEMFALL  Level %d: %s", s.Level, s.Name)
	if g.mode == ModeEndless {
		title += "  (endless)"
	}
	dst.DrawTextColored(x, 0, title, core.ColorBrightCyan)

	score := fmt.Sprintf("Score %d/%d  ", g.score(), s.Target)
	dst.DrawText(x, 1, score)
	dst.DrawTextColored(x+utf8.RuneCountInString(score), 1, starString(s.Stars), core.ColorBrightYellow)

	var budget string
	if s.Timed {
		budget = "Time " + formatClock(s.TimeLeft)
	} else {
		budget = fmt.Sprintf("Moves %d", s.Moves)
	}
	budget += fmt.Sprintf("  Shuffles %d", s.ShuffleUses)
	budgetColor := core.ColorDefault
	if (s.Timed && s.TimeLeft <= 10*time.Second) || (!s.Timed && s.Moves <= 3) {
		budgetColor = core.ColorOrange
	}
	dst.DrawTextColored(x, 2, budget, budgetColor)

	goal := "Goal: " + s.Goal.String()
	goalColor := core.ColorDefault
	if s.GoalMet {
		goal += " ✓"
		goalColor = core.ColorBrightGreen
	}
	dst.DrawTextColored(x, 3, goal, goalColor)
}

// renderBoard draws the frame, gems and cursor markers.
func (g *Game) renderBoard(dst *core.Screen, b engine.Board, boardX, boardY int) {
	dst.DrawBox(core.Rect{X: boardX, Y: boardY, W: b.Size*cellWidth + 2, H: b.Size + 2})

	hint := map[engine.Coord]bool{}
	if g.showHint {
		if m, ok := g.ctrl.Hint(); ok {
			hint[m.From] = true
			hint[m.To] = true
		}
	}
	sel, hasSel := g.ctrl.Selected()

	grid := b.Grid()
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			px := boardX + 1 + c*cellWidth
			py := boardY + 1 + r
			pos := engine.At(c, r)

			switch {
			case !b.Mask.Active(c, r):
				continue
			case grid[r][c] == nil:
				dst.SetColored(px+1, py, '·', core.ColorGray)
			default:
				st := styleFor(*grid[r][c])
				dst.SetColored(px+1, py, st.glyph, st.color)
			}

			switch {
			case pos == g.cursor:
				dst.SetColored(px, py, '[', core.ColorBrightWhite)
				dst.SetColored(px+2, py, ']', core.ColorBrightWhite)
			case hasSel && pos == sel:
				dst.SetColored(px, py, '<', core.ColorBrightGreen)
				dst.SetColored(px+2, py, '>', core.ColorBrightGreen)
			case hint[pos]:
				dst.SetColored(px, py, '(', core.ColorCyan)
				dst.SetColored(px+2, py, ')', core.ColorCyan)
			}
		}
	}
}

// renderFooter draws the last action note and the controls line.
func (g *Game) renderFooter(dst *core.Screen, x, y int) {
	if x < 0 {
		x = 0
	}
	if g.note != "" {
		color := core.ColorGray
		if g.clock.Sub(g.noteAt) < flashDelay {
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, y, g.note, color)
	}
	dst.DrawTextColored(0, y+1, g.Controls(), core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	s := g.lastLevel
	if g.levelDone {
		head := fmt.Sprintf("LEVEL %d CLEAR  %s", s.Level, starString(s.Stars))
		score := fmt.Sprintf("Score %d/%d", s.Score, s.Target)
		if g.mode == ModeEndless {
			g.drawOverlay(dst, centerX, centerY, head, score, fmt.Sprintf("Total %d", g.total), "Next level...")
			return
		}
		g.drawOverlay(dst, centerX, centerY, head, score, "Enter: next level", "R: replay")
		return
	}

	if g.over {
		head := "OUT OF MOVES"
		if s.Timed {
			head = "TIME UP"
		}
		score := fmt.Sprintf("Score %d/%d", s.Score, s.Target)
		if g.mode == ModeEndless {
			g.drawOverlay(dst, centerX, centerY, head, score, fmt.Sprintf("Final %d", g.score()), "Press R to restart")
			return
		}
		g.drawOverlay(dst, centerX, centerY, head, score, "Press R to retry")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, ' ')
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "WASD: Move  Space: Select  X: Shuffle  H: Hint  P: Pause  R: Restart  Q: Quit"
}

func starString(n int) string {
	n = core.Clamp(n, 0, 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Legend returns one "glyph name" entry per gem kind in palette.
func Legend(palette []engine.Kind) []string {
	out := make([]string, 0, len(palette))
	for _, k := range palette {
		st := styleFor(engine.Tile{Kind: k})
		out = append(out, fmt.Sprintf("%c %s", st.glyph, k))
	}
	return out
}

// LevelLine summarizes a level for listings.
func LevelLine(l levels.Level) string {
	kind := "moves"
	budget := fmt.Sprintf("%d", l.Budget.Moves)
	if l.Budget.Timed {
		kind = "time"
		budget = formatClock(l.Budget.TimeLimit)
	}
	return fmt.Sprintf("%3d  %-18s %2dx%-2d %-11s %s %-5s target %-5d %s",
		l.Number, l.Name, l.Layout.BoardSize, l.Layout.BoardSize, l.Layout.Shape,
		kind, budget, l.Target, l.Goal)
}

// FullPalette returns every gem kind followed by the chest.
func FullPalette() []engine.Kind {
	out := make([]engine.Kind, 0, len(engine.AllKinds)+1)
	out = append(out, engine.AllKinds...)
	return append(out, engine.KindChest)
}
