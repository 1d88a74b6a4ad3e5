package brickfall

import (
	"github.com/vovakirdan/brickfall/internal/core"
)

// paddleClearance is the gap left between a deflected ball and the paddle
// top so the next tick does not register a second contact.
const paddleClearance = 0.1

// Ball is the ball state in surface pixels.
type Ball struct {
	X, Y   float64 // Center
	DX, DY float64 // Velocity per tick
	Radius float64
	Color  core.Color
}

// Bounds returns the ball's bounding box.
func (b *Ball) Bounds() core.RectF {
	return core.CircleBounds(b.X, b.Y, b.Radius)
}

// Stop zeroes the ball's velocity.
func (b *Ball) Stop() {
	b.DX = 0
	b.DY = 0
}

// Paddle is the player's paddle. Y stays fixed for the whole session.
type Paddle struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
	Color  core.Color
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Rect returns the paddle rectangle.
func (p *Paddle) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// MovePaddle applies one tick of control input and keeps the paddle inside
// [0, surfaceW]. An active pointer takes precedence over the digital
// direction and moves the paddle center toward its target without
// overshooting. An active pointer with no usable target moves nothing.
func MovePaddle(p *Paddle, in core.InputFrame, speed, surfaceW float64) {
	switch target, ok := in.Pointer.Target(); {
	case ok:
		p.X += core.ClampF(target-p.CenterX(), -speed, speed)
	case in.Pointer.Active:
	default:
		p.X += float64(in.Direction()) * speed
	}
	p.X = core.ClampF(p.X, 0, surfaceW-p.Width)
}

// BounceParams shapes the paddle deflection.
type BounceParams struct {
	Factor float64 // dx per pixel of offset from the paddle center
	MaxDX  float64
}

// BallStep reports what happened during one ball integration.
type BallStep struct {
	HitWall    bool
	HitCeiling bool
	HitPaddle  bool
	HitFloor   bool // Bounced off the bottom (floor bounce only)
	Lost       bool // Fell past the bottom; the ball was not moved
}

// StepBall integrates the ball by velocity*mult and resolves collisions
// against the side walls, the ceiling, the paddle and the floor of arena,
// in that order and at most once each. There is no sub-stepping, so a fast
// ball can tunnel through thin objects. With floorBounce set the ball
// reflects off the bottom edge instead of being lost.
func StepBall(b *Ball, p *Paddle, arena core.RectF, mult float64, floorBounce bool, bounce BounceParams) BallStep {
	var res BallStep
	nextX := b.X + b.DX*mult
	nextY := b.Y + b.DY*mult

	switch {
	case nextX-b.Radius < arena.X:
		b.DX = -b.DX
		b.X = arena.X + b.Radius
		nextX = b.X + b.DX*mult
		res.HitWall = true
	case nextX+b.Radius > arena.Right():
		b.DX = -b.DX
		b.X = arena.Right() - b.Radius
		nextX = b.X + b.DX*mult
		res.HitWall = true
	}

	if nextY-b.Radius < arena.Y {
		b.DY = -b.DY
		b.Y = arena.Y + b.Radius
		nextY = b.Y + b.DY*mult
		res.HitCeiling = true
	}

	if b.DY > 0 && crossesPaddle(b, p, nextX, nextY) {
		offset := b.X - p.CenterX()
		b.DY = -b.DY
		b.DX = core.ClampF(offset*bounce.Factor, -bounce.MaxDX, bounce.MaxDX)
		b.X = nextX
		b.Y = p.Y - b.Radius - paddleClearance
		res.HitPaddle = true
		return res
	}

	if nextY+b.Radius > arena.Bottom() {
		if !floorBounce {
			res.Lost = true
			return res
		}
		b.DY = -b.DY
		b.Y = arena.Bottom() - b.Radius
		nextY = b.Y + b.DY*mult
		res.HitFloor = true
	}

	b.X = nextX
	b.Y = nextY
	return res
}

// crossesPaddle reports whether the ball's bottom edge passes the paddle top
// during this step while the projected ball overlaps the paddle span.
func crossesPaddle(b *Ball, p *Paddle, nextX, nextY float64) bool {
	if b.Y+b.Radius > p.Y || nextY+b.Radius < p.Y {
		return false
	}
	return nextX+b.Radius >= p.X && nextX-b.Radius <= p.X+p.Width
}

// BrickHit describes a brick destroyed by the ball.
type BrickHit struct {
	Col, Row int
	Center   core.Vec2
	Size     core.Vec2
	Color    core.Color
}

// CollideBricks destroys every live brick whose current rectangle overlaps
// the ball's bounding box. The ball keeps its velocity: it ploughs through
// bricks rather than bouncing, so one tick may clear several.
func CollideBricks(b *Ball, f *Field) []BrickHit {
	bounds := b.Bounds()
	var hits []BrickHit

	for row := range f.Rows() {
		for col := range f.Columns() {
			if f.Cell(col, row) == nil {
				continue
			}
			rect := f.Rect(col, row)
			if !bounds.Intersects(rect) {
				continue
			}
			center, color, ok := f.Destroy(col, row)
			if !ok {
				continue
			}
			hits = append(hits, BrickHit{
				Col:    col,
				Row:    row,
				Center: center,
				Size:   core.Vec2{X: rect.W, Y: rect.H},
				Color:  color,
			})
		}
	}
	return hits
}
