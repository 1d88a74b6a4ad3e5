package brickfall

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
)

// BrickView is a live brick as seen by the renderer.
type BrickView struct {
	Col, Row int
	Rect     core.RectF // Includes the row-shift offset
	Color    core.Color
}

// Snapshot is a read-only copy of everything the renderer needs for one
// frame. Mutating it has no effect on the game.
type Snapshot struct {
	Tick      uint64
	SessionID string
	Mode      Mode
	Score     int
	Lives     int
	Countdown int
	Debug     bool

	SurfaceW float64
	SurfaceH float64

	Ball     Ball
	Paddle   Paddle
	Bricks   []BrickView
	Shift    RowShift
	Columns  int
	GridRows int

	Particles []Particle
	Shards    []Shard
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]BrickView, 0, g.field.Count())
	for row := range g.field.Rows() {
		for col := range g.field.Columns() {
			b := g.field.Cell(col, row)
			if b == nil {
				continue
			}
			bricks = append(bricks, BrickView{
				Col:   col,
				Row:   row,
				Rect:  g.field.Rect(col, row),
				Color: b.Color,
			})
		}
	}

	return Snapshot{
		Tick:      uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		SessionID: g.sessionID.String(),
		Mode:      g.mode,
		Score:     g.score,
		Lives:     g.lives,
		Countdown: g.countdown,
		Debug:     g.debug,

		SurfaceW: g.width,
		SurfaceH: g.height,

		Ball:     g.ball,
		Paddle:   g.paddle,
		Bricks:   bricks,
		Shift:    g.field.Shift(),
		Columns:  g.field.Columns(),
		GridRows: g.field.Rows(),

		Particles: g.particles.Items(),
		Shards:    g.shards.Items(),
	}
}

// Hash returns a simple hash of the simulation state for determinism
// testing. The session ID is random and is left out.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(v float64) { mix(math.Float64bits(v)) }
	mixS := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(uint64(s[i]))
		}
	}

	mixS(string(snap.Mode))
	mix(uint64(snap.Score))     //#nosec G115 -- hash computation
	mix(uint64(snap.Lives))     //#nosec G115 -- hash computation
	mix(uint64(snap.Countdown)) //#nosec G115 -- hash computation
	if snap.Debug {
		mix(1)
	}

	mixF(snap.Ball.X)
	mixF(snap.Ball.Y)
	mixF(snap.Ball.DX)
	mixF(snap.Ball.DY)
	mixF(snap.Paddle.X)
	mixF(snap.Shift.Offset)
	mix(uint64(snap.Shift.Rows)) //#nosec G115 -- hash computation

	for _, b := range snap.Bricks {
		mix(uint64(b.Row*snap.Columns + b.Col)) //#nosec G115 -- hash computation
		mixS(string(b.Color))
	}
	for _, p := range snap.Particles {
		mixF(p.X)
		mixF(p.Y)
		mix(uint64(p.Life)) //#nosec G115 -- hash computation
	}
	for _, s := range snap.Shards {
		mixF(s.X)
		mixF(s.Y)
		mixF(s.Angle)
	}

	return h
}
