package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Visual characters for rendering
const (
	BirdBody      = '●'
	BirdLevel     = '▶'
	BirdUp        = '▲'
	BirdDown      = '▼'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	DirtChar      = '░'
)

// tiltThreshold is the tilt in radians past which the bird glyph turns.
const tiltThreshold = 0.15

// Minimum screen size the playfield is drawn at.
const (
	minScreenW = 20
	minScreenH = 8
)

// viewport maps world units to screen cells. The world is stretched to
// fill the screen on both axes.
type viewport struct {
	sx, sy float64
}

func newViewport(worldW, worldH float64, screenW, screenH int) viewport {
	return viewport{
		sx: float64(screenW) / worldW,
		sy: float64(screenH) / worldH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// span maps a world interval to a half-open cell interval at least one cell wide.
func span(lo, hi int) (int, int) {
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	v := newViewport(g.cfg.World.Width, g.cfg.World.Height, w, h)
	groundRow := v.row(g.cfg.GroundTop())

	for _, o := range g.snap.Obstacles {
		drawObstacle(dst, v, o, groundRow)
	}

	dst.DrawHLine(0, groundRow, w, GroundChar, core.ColorYellow)
	for y := groundRow + 1; y < h; y++ {
		dst.DrawHLine(0, y, w, DirtChar, core.ColorOrange)
	}

	if g.snap.Bird != nil {
		drawBird(dst, v, *g.snap.Bird, g.snap.State == sim.StateGameOver)
	}

	g.drawHUD(dst)

	switch {
	case g.snap.State == sim.StateMenu:
		drawCenteredMessage(dst, g.title, "Space: flap / start   P: pause   Q: quit")
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.snap.State == sim.StateGameOver && g.IsReplay():
		drawCenteredMessage(dst, "END OF REPLAY",
			fmt.Sprintf("Score: %d  |  Hit the %s  |  Q to quit", g.snap.Score, g.snap.Cause))
	case g.snap.State == sim.StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Hit the %s  |  Space to retry", g.snap.Score, g.snap.Cause))
	}
}

// drawObstacle renders both segments of an obstacle, capped at the gap.
func drawObstacle(dst *core.Screen, v viewport, o sim.ObstacleView, groundRow int) {
	x0, x1 := span(v.col(o.Top.X), v.col(o.Top.Right()))
	gapTop := v.row(o.Top.Bottom())
	gapBottom := v.row(o.Bottom.Y)

	// Top section, from the top of the screen to the gap
	if gapTop > 0 {
		dst.DrawRect(x0, 0, x1-x0, gapTop, PipeChar, core.ColorGreen)
		dst.DrawHLine(x0, gapTop-1, x1-x0, PipeCapTop, core.ColorBrightGreen)
	}

	// Bottom section, from the gap to the ground
	if gapBottom < groundRow {
		dst.DrawRect(x0, gapBottom, x1-x0, groundRow-gapBottom, PipeChar, core.ColorGreen)
		dst.DrawHLine(x0, gapBottom, x1-x0, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawBird fills the bird's box and puts a head glyph on its leading edge
// that follows the tilt.
func drawBird(dst *core.Screen, v viewport, b sim.BirdView, dead bool) {
	x0, x1 := span(v.col(b.Box.X), v.col(b.Box.Right()))
	y0, y1 := span(v.row(b.Box.Y), v.row(b.Box.Bottom()))

	body := core.ColorBrightYellow
	if dead {
		body = core.ColorRed
	}
	dst.DrawRect(x0, y0, x1-x0, y1-y0, BirdBody, body)

	head := core.Clamp(v.row(b.Y), y0, y1-1)
	dst.SetColored(x1-1, head, birdGlyph(b.Tilt), core.ColorOrange)
}

// birdGlyph picks the head glyph for a tilt in radians.
func birdGlyph(tilt float64) rune {
	switch {
	case tilt > tiltThreshold:
		return BirdUp
	case tilt < -tiltThreshold:
		return BirdDown
	default:
		return BirdLevel
	}
}

// drawHUD draws the score and, for progressive play, the difficulty.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.snap.Score), core.ColorWhite)

	if g.cfg.Difficulty.Enabled && g.world != nil {
		level := fmt.Sprintf(" Lv %3.0f%% ", g.world.Difficulty()*100)
		dst.DrawTextColored(dst.Width()-len(level)-2, 0, level, core.ColorCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	boxW := min(max(titleLen, subtitleLen)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+max((boxW-subtitleLen)/2, 1), boxY+3, subtitle)
}
