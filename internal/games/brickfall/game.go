package brickfall

import (
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
)

// Mode is the primary state of a session.
type Mode string

const (
	ModeLaunching Mode = "launching" // Ball parked, countdown running
	ModePlaying   Mode = "playing"   // Ball in play
	ModePaused    Mode = "paused"    // Simulation frozen
	ModeGameOver  Mode = "gameover"  // No lives left, waits for restart
)

// GameID is the registry identifier.
const GameID = "brickfall"

// hudRows is the number of terminal rows reserved for the HUD above the
// arena.
const hudRows = 2

var (
	// presetConfig, when set, is used instead of loading from disk
	presetConfig *config.BrickfallConfig

	defaultLogger = log.New(io.Discard)
)

// SetConfig makes New use cfg instead of loading a config file.
func SetConfig(cfg config.BrickfallConfig) {
	presetConfig = &cfg
}

// SetLogger sets the logger for games created by New.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// Game is the session aggregate: it owns every entity and drives the
// per-tick simulation.
type Game struct {
	cfg        config.BrickfallConfig
	cfgLoaded  bool
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	baseLogger *log.Logger
	logger     *log.Logger // baseLogger scoped to the session

	// Surface in pixels
	width  float64
	height float64

	// Game objects
	ball      Ball
	paddle    Paddle
	field     *Field
	particles *ParticleSwarm
	shards    *ShardSwarm

	// Session state
	sessionID  uuid.UUID
	mode       Mode
	resumeMode Mode // Mode to return to when unpausing
	score      int
	lives      int
	countdown  int
	tickCount  int
	debug      bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game. The config set via SetConfig, or else the one found
// by config.LoadBrickfall, is resolved on the first Reset.
func New() *Game {
	return &Game{baseLogger: defaultLogger, logger: defaultLogger}
}

// NewWithConfig creates a game with an explicit config.
func NewWithConfig(cfg config.BrickfallConfig) *Game {
	g := New()
	g.cfg = cfg
	g.cfgLoaded = true
	return g
}

func resolveConfig() config.BrickfallConfig {
	if presetConfig != nil {
		return *presetConfig
	}
	cfg, _, err := config.LoadBrickfall("")
	if err != nil {
		defaultLogger.Warn("falling back to default config", "error", err)
		return config.DefaultBrickfallConfig()
	}
	return cfg
}

// SetLogger replaces this game's logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.baseLogger = l
		g.logger = l
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brickfall"
}

// Reset starts a fresh session sized to the runtime screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.cfgLoaded {
		g.cfg = resolveConfig()
		g.cfgLoaded = true
	}
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.sessionID = uuid.New()
	g.logger = g.baseLogger.With("session", g.sessionID.String()[:8])

	cfg := g.cfg
	g.width = float64(runtime.ScreenW) * cfg.Surface.CellWidth
	g.height = float64(runtime.ScreenH) * cfg.Surface.CellHeight

	g.field = NewField(g.fieldLayout(), parsePalette(cfg.Bricks.Palette), g.rng)
	g.field.CreateGrid()

	g.paddle = Paddle{
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
		Y:      g.height - cfg.Paddle.Height - cfg.Paddle.BottomOffset,
		Color:  parseColorOr(cfg.Paddle.Color, core.ColorWhite),
	}
	g.paddle.X = (g.width - g.paddle.Width) / 2

	g.checkScreenSize()

	if g.particles == nil {
		g.particles = NewParticleSwarm(cfg.Effects.MaxParticles, cfg.Effects.ParticleGravity)
		g.shards = NewShardSwarm(cfg.Effects.MaxShards, cfg.Effects.ShardMargin)
	} else {
		g.particles.Clear()
		g.shards.Clear()
	}

	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.tickCount = 0
	g.debug = cfg.Debug.Enabled
	g.resumeMode = ModeLaunching
	g.parkBall()

	g.logger.Info("session started",
		"seed", runtime.Seed,
		"surface", [2]float64{g.width, g.height},
		"bricks", g.field.Count(),
		"lives", g.lives,
	)
	if g.screenTooSmall {
		g.logger.Warn("screen too small", "have", [2]int{runtime.ScreenW, runtime.ScreenH},
			"need", [2]int{g.minScreenW, g.minScreenH})
	}
}

// fieldLayout derives brick geometry. A zero brick width fits the columns
// between the left and right offsets.
func (g *Game) fieldLayout() FieldLayout {
	b := g.cfg.Bricks
	width := b.Width
	if width <= 0 {
		width = (g.width - 2*b.OffsetLeft - float64(b.Columns-1)*b.Padding) / float64(b.Columns)
	}
	return FieldLayout{
		Columns:     b.Columns,
		Rows:        b.Rows,
		BrickWidth:  width,
		BrickHeight: b.Height,
		Padding:     b.Padding,
		OffsetTop:   b.OffsetTop,
		OffsetLeft:  b.OffsetLeft,
		ShiftSpeed:  b.ShiftSpeed,
	}
}

// checkScreenSize requires bricks at least one cell wide and two free
// rows of cells between the lowest brick row and the paddle.
func (g *Game) checkScreenSize() {
	cfg := g.cfg
	cw, ch := cfg.Surface.CellWidth, cfg.Surface.CellHeight
	b := cfg.Bricks

	brickW := b.Width
	if brickW <= 0 {
		brickW = cw
	}
	needW := math.Max(2*b.OffsetLeft+float64(b.Columns)*brickW+float64(b.Columns-1)*b.Padding, cfg.Paddle.Width)
	needH := g.field.Bottom() + 2*ch + cfg.Paddle.Height + cfg.Paddle.BottomOffset

	g.minScreenW = int(math.Ceil(needW / cw))
	g.minScreenH = int(math.Ceil(needH / ch))
	g.screenTooSmall = g.runtime.ScreenW < g.minScreenW || g.runtime.ScreenH < g.minScreenH
}

// parkBall puts a motionless ball above the paddle center and restarts the
// launch countdown. The ball stays there until launch.
func (g *Game) parkBall() {
	r := g.cfg.Ball.Radius
	g.ball = Ball{
		X:      g.paddle.CenterX(),
		Y:      g.paddle.Y - 2*r,
		Radius: r,
		Color:  parseColorOr(g.cfg.Ball.Color, core.ColorWhite),
	}
	g.countdown = g.cfg.Gameplay.LaunchDelay
	g.mode = ModeLaunching
}

// Step advances the game by one tick in a fixed order: animate rows, count
// down the launch, move the paddle, move the ball, resolve brick hits,
// trigger a row shift, age effects.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if in.Has(core.ActionDebug) {
		g.toggleDebug()
	}

	if g.mode == ModePaused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if g.mode == ModeGameOver {
		g.ageEffects()
		return core.StepResult{State: g.State()}
	}

	if g.field.Shifting() && g.field.Advance() {
		g.logger.Debug("row shift complete", "bricks", g.field.Count())
	}

	if g.mode == ModeLaunching {
		g.countdown--
		if in.Has(core.ActionLaunch) || g.countdown <= 0 {
			g.launch()
		}
	}

	if !g.field.Shifting() {
		g.updatePaddle(in)
		if g.mode == ModePlaying && g.updateBall() {
			if g.resolveBrickHits() && g.mode == ModePlaying {
				g.beginRowShift()
			}
		}
	}

	g.ageEffects()
	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.logger.Info("restart requested", "score", g.score, "mode", g.mode)
	rt := g.runtime
	rt.Seed = g.rng.Int64()
	g.Reset(rt)
}

func (g *Game) togglePause() {
	switch g.mode {
	case ModePaused:
		g.mode = g.resumeMode
	case ModeGameOver:
		return
	default:
		g.resumeMode = g.mode
		g.mode = ModePaused
	}
	g.logger.Debug("pause toggled", "mode", g.mode)
}

func (g *Game) toggleDebug() {
	if g.mode == ModeGameOver {
		return
	}
	g.debug = !g.debug
	g.logger.Info("debug mode", "enabled", g.debug, "multiplier", g.speedMultiplier())
}

// speedMultiplier scales ball integration; debug mode boosts it.
func (g *Game) speedMultiplier() float64 {
	if g.debug {
		return g.cfg.Debug.SpeedMultiplier
	}
	return 1
}

// launch frees the ball with a random horizontal direction and a fixed
// upward speed.
func (g *Game) launch() {
	g.ball.DX = core.RandSign(g.rng) * g.cfg.Ball.LaunchDX
	g.ball.DY = -g.cfg.Ball.LaunchDY
	g.countdown = 0
	g.mode = ModePlaying
	g.logger.Debug("ball launched", "dx", g.ball.DX, "dy", g.ball.DY)
}

func (g *Game) updatePaddle(in core.InputFrame) {
	MovePaddle(&g.paddle, in, g.cfg.Paddle.Speed, g.width)
}

// updateBall moves the ball and handles life loss. It returns false when the
// tick must end early because the ball was lost.
func (g *Game) updateBall() bool {
	bounce := BounceParams{Factor: g.cfg.Paddle.BounceFactor, MaxDX: g.cfg.Paddle.MaxBounceDX}
	res := StepBall(&g.ball, &g.paddle, g.arena(), g.speedMultiplier(), g.debug, bounce)
	if res.Lost {
		g.loseLife()
		return false
	}
	return true
}

// arena is the part of the surface the ball moves in: everything below
// the HUD rows.
func (g *Game) arena() core.RectF {
	top := hudRows * g.cfg.Surface.CellHeight
	return core.NewRectF(0, top, g.width, g.height-top)
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.mode = ModeGameOver
		g.ball.Stop()
		g.ball.X = g.width / 2
		g.ball.Y = g.height / 2
		g.logger.Info("game over", "score", g.score, "ticks", g.tickCount)
		return
	}
	g.parkBall()
	g.logger.Info("life lost", "lives", g.lives)
}

// resolveBrickHits destroys every brick under the ball, spawns effects and
// updates the score. It reports whether anything was destroyed.
func (g *Game) resolveBrickHits() bool {
	hits := CollideBricks(&g.ball, g.field)
	fx := g.cfg.Effects

	for _, hit := range hits {
		g.particles.Spawn(g.rng, hit.Center, hit.Color, fx.ParticleCount, fx.ParticleLife, fx.ParticleSpeed)
		g.shards.Spawn(g.rng, hit.Center, hit.Size, hit.Color, fx.ShardCount, fx.ParticleSpeed, fx.ShardScale)
		g.addScore(g.cfg.Bricks.Points)
	}
	return len(hits) > 0
}

// addScore adds points and grants one life per extra-life threshold crossed.
func (g *Game) addScore(points int) {
	every := g.cfg.Gameplay.ExtraLifeEvery
	prev := g.score
	g.score += points
	if every <= 0 {
		return
	}
	if gained := g.score/every - prev/every; gained > 0 {
		g.lives += gained
		g.logger.Info("extra life", "score", g.score, "lives", g.lives)
	}
}

func (g *Game) beginRowShift() {
	if rows := g.field.BeginRowShift(); rows > 0 {
		g.logger.Debug("row shift started", "rows", rows, "target", g.field.Shift().Target)
	}
}

func (g *Game) ageEffects() {
	g.particles.Update()
	g.shards.Update(g.height)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Mode:     string(g.mode),
		GameOver: g.mode == ModeGameOver,
		Paused:   g.mode == ModePaused,
	}
}

// ScreenTooSmall reports whether the session was sized below the minimum
// playable terminal. Such a session never advances.
func (g *Game) ScreenTooSmall() bool {
	return g.screenTooSmall
}

// Mode returns the current primary state.
func (g *Game) Mode() Mode {
	return g.mode
}

func parsePalette(hexes []string) []core.Color {
	palette := make([]core.Color, 0, len(hexes))
	for _, hex := range hexes {
		if c, err := core.ParseColor(hex); err == nil {
			palette = append(palette, c)
		}
	}
	return palette
}

func parseColorOr(hex string, fallback core.Color) core.Color {
	c, err := core.ParseColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
