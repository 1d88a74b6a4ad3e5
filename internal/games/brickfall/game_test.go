package brickfall

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultBrickfallConfig())
	g.Reset(testRuntime(42))
	require.False(t, g.screenTooSmall)
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(inputWith(actions...))
}

// startPlaying launches the ball and parks it in the open space between
// the field and the paddle.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	step(g, core.ActionLaunch)
	require.Equal(t, ModePlaying, g.Mode())
	g.ball.X, g.ball.Y = 320, 320
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t)
	snap := g.Snapshot()

	assert.Equal(t, ModeLaunching, snap.Mode)
	assert.Zero(t, snap.Score)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 120, snap.Countdown)
	assert.Len(t, snap.Bricks, 80)
	assert.Equal(t, 640.0, snap.SurfaceW)
	assert.Equal(t, 384.0, snap.SurfaceH)

	assert.InDelta(t, 272.0, snap.Paddle.X, 1e-9)
	assert.InDelta(t, 352.0, snap.Paddle.Y, 1e-9)
	assert.InDelta(t, 320.0, snap.Ball.X, 1e-9)
	assert.InDelta(t, 340.0, snap.Ball.Y, 1e-9)
	assert.Zero(t, snap.Ball.DX)
	assert.Zero(t, snap.Ball.DY)
	assert.NotEmpty(t, snap.SessionID)
}

func TestRegisteredWithRegistry(t *testing.T) {
	require.True(t, registry.Exists(GameID))
	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Brickfall", g.Title())
}

func TestBallStillWhileLaunching(t *testing.T) {
	g := newTestGame(t)
	start := g.ball

	for range 119 {
		step(g, core.ActionRight)
		require.Equal(t, ModeLaunching, g.Mode())
		assert.Zero(t, g.ball.DX)
		assert.Zero(t, g.ball.DY)
		assert.Equal(t, start.X, g.ball.X)
		assert.Equal(t, start.Y, g.ball.Y)
	}
	assert.Equal(t, 1, g.countdown)
}

func TestCountdownLaunchesBall(t *testing.T) {
	g := newTestGame(t)

	for range 120 {
		step(g)
	}

	assert.Equal(t, ModePlaying, g.Mode())
	assert.InDelta(t, -5.0, g.ball.DY, 1e-9)
	assert.InDelta(t, 3.0, math.Abs(g.ball.DX), 1e-9)
	assert.Zero(t, g.countdown)
}

func TestLaunchActionSkipsCountdown(t *testing.T) {
	g := newTestGame(t)

	step(g, core.ActionLaunch)
	assert.Equal(t, ModePlaying, g.Mode())
	assert.InDelta(t, 335.0, g.ball.Y, 1e-9)
}

func TestPaddleStaysOnSurface(t *testing.T) {
	g := newTestGame(t)
	maxX := g.width - g.paddle.Width

	for i := range 400 {
		dir := core.ActionRight
		if i >= 200 {
			dir = core.ActionLeft
		}
		step(g, dir)
		require.GreaterOrEqual(t, g.paddle.X, 0.0)
		require.LessOrEqual(t, g.paddle.X, maxX)
	}
	assert.Zero(t, g.paddle.X)
}

func TestPointerSteersPaddle(t *testing.T) {
	g := newTestGame(t)
	in := inputWith(core.ActionRight)
	in.Pointer = core.Pointer{Active: true, HasTarget: true, X: 0}

	g.Step(in)
	assert.InDelta(t, 264.0, g.paddle.X, 1e-9)
}

func TestBrickHitScoresWithoutBounce(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)

	center := g.field.Rect(0, 0).Center()
	g.ball.X, g.ball.Y = center.X, center.Y
	g.ball.DX, g.ball.DY = 1, -2

	step(g)

	assert.Equal(t, 1, g.score)
	assert.Nil(t, g.field.Cell(0, 0))
	assert.Equal(t, 79, g.field.Count())
	assert.InDelta(t, 1.0, g.ball.DX, 1e-9)
	assert.InDelta(t, -2.0, g.ball.DY, 1e-9)
	assert.Equal(t, 12, g.particles.Len())
	assert.Equal(t, 6, g.shards.Len())
	assert.False(t, g.field.Shifting())
}

func TestExtraLifeOnThresholdCrossing(t *testing.T) {
	g := newTestGame(t)

	g.score = 49
	g.addScore(1)
	assert.Equal(t, 50, g.score)
	assert.Equal(t, 4, g.lives)

	g.addScore(1)
	assert.Equal(t, 51, g.score)
	assert.Equal(t, 4, g.lives)

	g.score = 98
	g.addScore(5)
	assert.Equal(t, 5, g.lives)
}

func TestExtraLifeDisabled(t *testing.T) {
	cfg := config.DefaultBrickfallConfig()
	cfg.Gameplay.ExtraLifeEvery = 0
	g := NewWithConfig(cfg)
	g.Reset(testRuntime(1))

	g.score = 49
	g.addScore(1)
	assert.Equal(t, 3, g.lives)
}

func TestClearingBottomRowShiftsField(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)

	last := g.field.Rows() - 1
	var above []*Brick
	for col := range g.field.Columns() {
		above = append(above, g.field.Cell(col, last-1))
		if col > 0 {
			g.field.Destroy(col, last)
		}
	}

	center := g.field.Rect(0, last).Center()
	g.ball.X, g.ball.Y = center.X, center.Y
	g.ball.DX, g.ball.DY = 0, -1
	step(g)

	require.True(t, g.field.Shifting())
	assert.Equal(t, 1, g.field.Shift().Rows)
	assert.InDelta(t, 32.0, g.field.Shift().Target, 1e-9)

	g.ball.X, g.ball.Y = 320, 330
	paddleX := g.paddle.X
	step(g, core.ActionRight)
	assert.Equal(t, paddleX, g.paddle.X)
	assert.InDelta(t, 330.0, g.ball.Y, 1e-9)

	for i := 0; g.field.Shifting(); i++ {
		require.Less(t, i, 100)
		step(g)
	}

	assert.Equal(t, 80, g.field.Count())
	for col := range g.field.Columns() {
		assert.Same(t, above[col], g.field.Cell(col, last))
		assert.NotNil(t, g.field.Cell(col, 0))
	}
}

func TestBallJustAbovePaddleDeflects(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	r := g.ball.Radius
	g.ball.X = g.paddle.CenterX()
	g.ball.Y = g.paddle.Y - r - 1
	g.ball.DX, g.ball.DY = 0, 5

	step(g)

	assert.Less(t, g.ball.DY, 0.0)
	assert.InDelta(t, g.paddle.Y-r-0.1, g.ball.Y, 1e-9)
	assert.Equal(t, 3, g.lives)
}

func TestLosingBallParksIt(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.ball = Ball{X: 10, Y: g.height - 7, DY: 5, Radius: 6}

	step(g)

	assert.Equal(t, 2, g.lives)
	assert.Equal(t, ModeLaunching, g.Mode())
	assert.Zero(t, g.ball.DX)
	assert.Zero(t, g.ball.DY)
	assert.Equal(t, 120, g.countdown)
}

func TestBallParksOverPaddle(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.paddle.X = 100
	g.ball = Ball{X: 10, Y: g.height - 7, DY: 5, Radius: 6}

	step(g)

	require.Equal(t, ModeLaunching, g.Mode())
	assert.InDelta(t, g.paddle.CenterX(), g.ball.X, 1e-9)
	assert.InDelta(t, g.paddle.Y-12, g.ball.Y, 1e-9)
}

func TestBallStaysBelowHUD(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.ball = Ball{X: 320, Y: 40, DX: 0, DY: -5, Radius: 6}

	step(g)

	assert.InDelta(t, 5.0, g.ball.DY, 1e-9)
	assert.InDelta(t, 43.0, g.ball.Y, 1e-9)
}

func TestLastLifeEndsGame(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.lives = 1
	g.score = 7
	g.ball = Ball{X: 10, Y: g.height - 7, DY: 5, Radius: 6}

	res := step(g)

	require.True(t, res.State.GameOver)
	assert.Equal(t, ModeGameOver, g.Mode())
	assert.Zero(t, g.lives)
	assert.Zero(t, g.ball.DX)
	assert.Zero(t, g.ball.DY)
	assert.InDelta(t, 320.0, g.ball.X, 1e-9)
	assert.InDelta(t, 192.0, g.ball.Y, 1e-9)

	ball, paddle, bricks := g.ball, g.paddle, g.field.Count()
	for range 30 {
		res = step(g, core.ActionLeft, core.ActionLaunch, core.ActionPause, core.ActionDebug)
		assert.True(t, res.State.GameOver)
		assert.False(t, res.State.Paused)
	}
	assert.Equal(t, ball, g.ball)
	assert.Equal(t, paddle, g.paddle)
	assert.Equal(t, bricks, g.field.Count())
	assert.Equal(t, 7, g.score)
	assert.False(t, g.debug)
}

func TestGameOverKeepsAgingEffects(t *testing.T) {
	g := newTestGame(t)
	g.particles.Add(Particle{Life: 2, MaxLife: 2})
	g.mode = ModeGameOver

	step(g)
	step(g)
	assert.Zero(t, g.particles.Len())
}

func TestRestartStartsFreshSession(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.lives = 1
	g.score = 12
	g.ball = Ball{X: 10, Y: g.height - 7, DY: 5, Radius: 6}
	step(g)
	require.Equal(t, ModeGameOver, g.Mode())
	session := g.sessionID

	res := step(g, core.ActionRestart)

	assert.False(t, res.State.GameOver)
	assert.Equal(t, ModeLaunching, g.Mode())
	assert.Zero(t, g.score)
	assert.Equal(t, 3, g.lives)
	assert.Equal(t, 80, g.field.Count())
	assert.Zero(t, g.tickCount)
	assert.NotEqual(t, session, g.sessionID)
}

func TestRestartClearsEffects(t *testing.T) {
	g := newTestGame(t)
	particles, shards := g.particles, g.shards
	g.particles.Add(Particle{Life: 10, MaxLife: 10})
	g.shards.Add(Shard{})

	step(g, core.ActionRestart)

	assert.Same(t, particles, g.particles)
	assert.Same(t, shards, g.shards)
	assert.Zero(t, g.particles.Len())
	assert.Zero(t, g.shards.Len())
}

func TestRestartWhilePlaying(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.score = 3

	step(g, core.ActionRestart)
	assert.Equal(t, ModeLaunching, g.Mode())
	assert.Zero(t, g.score)
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.ball.DX, g.ball.DY = 2, -2
	g.particles.Add(Particle{Life: 5, MaxLife: 5})

	res := step(g, core.ActionPause)
	require.True(t, res.State.Paused)
	snap := g.Snapshot()
	before := snap.Hash()

	for range 10 {
		step(g, core.ActionRight)
	}
	after := g.Snapshot()
	assert.Equal(t, before, after.Hash())
	assert.Equal(t, 1, g.particles.Len())

	step(g, core.ActionPause)
	assert.Equal(t, ModePlaying, g.Mode())
}

func TestPauseDuringLaunchResumesCountdown(t *testing.T) {
	g := newTestGame(t)
	step(g)

	step(g, core.ActionPause)
	require.Equal(t, ModePaused, g.Mode())
	for range 5 {
		step(g)
	}
	assert.Equal(t, 119, g.countdown)

	step(g, core.ActionPause)
	assert.Equal(t, ModeLaunching, g.Mode())
	assert.Equal(t, 118, g.countdown)
}

func TestDebugBouncesOffFloor(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.ball = Ball{X: 10, Y: g.height - 7, DY: 5, Radius: 6}

	step(g, core.ActionDebug)

	assert.True(t, g.debug)
	assert.Equal(t, 3, g.lives)
	assert.Equal(t, ModePlaying, g.Mode())
	assert.Less(t, g.ball.DY, 0.0)
}

func TestDebugSpeedsUpBall(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	g.ball = Ball{X: 320, Y: 310, DX: 1, DY: 1, Radius: 6}

	step(g, core.ActionDebug)
	assert.InDelta(t, 323.0, g.ball.X, 1e-9)
	assert.InDelta(t, 313.0, g.ball.Y, 1e-9)

	step(g, core.ActionDebug)
	assert.False(t, g.debug)
	assert.InDelta(t, 324.0, g.ball.X, 1e-9)
}

func TestDebugEnabledFromConfig(t *testing.T) {
	cfg := config.DefaultBrickfallConfig()
	cfg.Debug.Enabled = true
	g := NewWithConfig(cfg)
	g.Reset(testRuntime(1))

	assert.True(t, g.Snapshot().Debug)
}

func TestScoreNeverDecreases(t *testing.T) {
	g := newTestGame(t)
	prev := 0

	for range 3000 {
		in := core.NewInputFrame()
		in.Pointer = core.Pointer{Active: true, HasTarget: true, X: g.ball.X}
		res := g.Step(in)

		require.GreaterOrEqual(t, res.State.Score, prev)
		require.GreaterOrEqual(t, res.State.Lives, 0)
		require.GreaterOrEqual(t, g.paddle.X, 0.0)
		require.LessOrEqual(t, g.paddle.X, g.width-g.paddle.Width)
		if g.Mode() == ModeLaunching {
			require.Zero(t, g.ball.DX)
			require.Zero(t, g.ball.DY)
		}
		prev = res.State.Score
	}
	assert.Positive(t, prev)
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 10:
			inputs[i].Set(core.ActionLaunch)
		case i > 10 && i%7 < 3:
			inputs[i].Set(core.ActionRight)
		case i > 10:
			inputs[i].Set(core.ActionLeft)
		}
	}

	run := func() []uint64 {
		g := NewWithConfig(config.DefaultBrickfallConfig())
		g.Reset(testRuntime(12345))
		var hashes []uint64
		for _, in := range inputs {
			g.Step(in)
			snap := g.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	assert.Equal(t, run(), run())
}

func TestSeedChangesLayout(t *testing.T) {
	a := NewWithConfig(config.DefaultBrickfallConfig())
	a.Reset(testRuntime(1))
	b := NewWithConfig(config.DefaultBrickfallConfig())
	b.Reset(testRuntime(2))

	sa, sb := a.Snapshot(), b.Snapshot()
	assert.NotEqual(t, sa.Hash(), sb.Hash())
}

func TestScreenTooSmall(t *testing.T) {
	g := NewWithConfig(config.DefaultBrickfallConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	require.True(t, g.screenTooSmall)
	assert.Equal(t, 32, g.minScreenW)
	assert.Equal(t, 22, g.minScreenH)

	step(g, core.ActionLaunch)
	assert.Zero(t, g.tickCount)
	assert.Equal(t, ModeLaunching, g.Mode())

	session := g.sessionID
	step(g, core.ActionRestart)
	assert.NotEqual(t, session, g.sessionID)
	assert.True(t, g.ScreenTooSmall())

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
	assert.Contains(t, screen.String(), "Need 32x22")
}

func TestRenderFrame(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Lives: 3")
	assert.Contains(t, screen.Row(0), "launching")
	assert.Contains(t, screen.Row(3), string(BrickChar))
	assert.Equal(t, BallChar, screen.Get(40, 21))
	assert.Contains(t, screen.Row(22), string(PaddleChar))
	assert.Contains(t, screen.Row(23), "Launch in 2.0s")
	assert.Equal(t, core.Color("#ffffff"), screen.GetCell(40, 21).Color)
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	step(g, core.ActionPause)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "PAUSED"))

	g.mode = ModeGameOver
	g.score = 9
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
	assert.Contains(t, screen.String(), "Score: 9")
}

func TestRenderEffects(t *testing.T) {
	g := newTestGame(t)
	g.particles.Add(Particle{X: 100, Y: 320, Life: 5, MaxLife: 10, Size: 2, Color: core.ColorRed})
	g.shards.Add(Shard{X: 200, Y: 320, Color: core.ColorRed})
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	particle := screen.GetCell(12, 20)
	assert.Equal(t, ParticleChar, particle.Rune)
	assert.NotEqual(t, core.ColorRed, particle.Color)
	assert.Equal(t, '▲', screen.Get(25, 20))
}
