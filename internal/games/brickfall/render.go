package brickfall

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Visual characters for rendering
const (
	BallChar       = '●'
	PaddleChar     = '▀'
	BrickChar      = '█'
	BrickEdgeChar  = '▌'
	ParticleChar   = '·'
	ParticleBig    = '•'
	SeparatorChar  = '─'
	brickEdgeShade = 0.35
	shardShade     = 0.25
)

// Shard glyphs by rotation quadrant
var shardGlyphs = []rune{'▲', '▶', '▼', '◀'}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	snap := g.Snapshot()
	r := cellMapper{w: g.cfg.Surface.CellWidth, h: g.cfg.Surface.CellHeight}
	tickRate := g.runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	renderHUD(dst, &snap)
	renderBricks(dst, r, snap.Bricks)
	renderShards(dst, r, snap.Shards)
	renderParticles(dst, r, snap.Particles)
	renderPaddle(dst, r, &snap.Paddle)
	renderBall(dst, r, &snap.Ball)
	renderOverlay(dst, &snap, tickRate)
}

// cellMapper converts surface pixels to terminal cells.
type cellMapper struct {
	w, h float64
}

func (m cellMapper) col(x float64) int {
	return int(math.Floor(x / m.w))
}

func (m cellMapper) row(y float64) int {
	return int(math.Floor(y / m.h))
}

// span returns the cell columns [from, to) covered by [x, right).
func (m cellMapper) span(x, right float64) (int, int) {
	from := int(math.Round(x / m.w))
	to := int(math.Round(right / m.w))
	if to <= from {
		to = from + 1
	}
	return from, to
}

func renderHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", snap.Lives))

	status := string(snap.Mode)
	if snap.Debug {
		status = "DEBUG " + status
	}
	dst.DrawTextColored(dst.Width()-len(status)-1, 0, status, core.ColorGray)
	dst.DrawHLine(0, hudRows-1, dst.Width(), SeparatorChar, core.ColorGray)
}

func renderBricks(dst *core.Screen, m cellMapper, bricks []BrickView) {
	for _, b := range bricks {
		from, to := m.span(b.Rect.X, b.Rect.Right())
		y := m.row(b.Rect.Y)
		edge := b.Color.Darken(brickEdgeShade)
		for x := from; x < to; x++ {
			if x == to-1 && to-from > 1 {
				dst.SetColored(x, y, BrickEdgeChar, edge)
				continue
			}
			dst.SetColored(x, y, BrickChar, b.Color)
		}
	}
}

func renderShards(dst *core.Screen, m cellMapper, shards []Shard) {
	for _, s := range shards {
		turn := math.Mod(s.Angle, 2*math.Pi)
		if turn < 0 {
			turn += 2 * math.Pi
		}
		glyph := shardGlyphs[int(turn/(math.Pi/2))%len(shardGlyphs)]
		dst.SetColored(m.col(s.X), m.row(s.Y), glyph, s.Color.Darken(shardShade))
	}
}

func renderParticles(dst *core.Screen, m cellMapper, particles []Particle) {
	for _, p := range particles {
		glyph := ParticleChar
		if p.Size >= 3 {
			glyph = ParticleBig
		}
		dst.SetColored(m.col(p.X), m.row(p.Y), glyph, p.Color.Fade(core.ColorBackground, p.Alpha()))
	}
}

func renderPaddle(dst *core.Screen, m cellMapper, p *Paddle) {
	from, to := m.span(p.X, p.X+p.Width)
	y := m.row(p.Y)
	for x := from; x < to; x++ {
		dst.SetColored(x, y, PaddleChar, p.Color)
	}
}

func renderBall(dst *core.Screen, m cellMapper, b *Ball) {
	dst.SetColored(m.col(b.X), m.row(b.Y), BallChar, b.Color)
}

// renderOverlay draws game state messages.
func renderOverlay(dst *core.Screen, snap *Snapshot, tickRate int) {
	switch snap.Mode {
	case ModeLaunching:
		secs := float64(snap.Countdown) / float64(tickRate)
		dst.DrawTextCentered(dst.Height()-1, fmt.Sprintf("Launch in %.1fs  |  SPACE to launch now", secs))

	case ModePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case ModeGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
