package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
)

// holdTicks is how long a direction key counts as held after its last key
// event. Terminals report presses and repeats but never releases.
const holdTicks = 8

// Options carries platform settings that are not part of the game's
// runtime config.
type Options struct {
	// CellWidth and CellHeight are the surface pixels per terminal cell,
	// used to map mouse columns to pointer targets.
	CellWidth  float64
	CellHeight float64

	// ScreenshotDir is where ctrl+s writes plain-text captures.
	// Empty means ~/.brickfall/screenshots.
	ScreenshotDir string

	Logger *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       KeyMap
	help       help.Model
	styles     styleCache
	logger     *log.Logger
	inputFrame core.InputFrame
	held       map[core.Action]int
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game. One terminal
// row is reserved for the key help line.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 1
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       h,
		styles:     styleCache{},
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("tick loop started", "game", m.game.ID(), "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		// Keyboard steering takes the paddle back from the mouse.
		m.inputFrame.Pointer.Active = false
		delete(m.held, opposite(action))
		m.held[action] = holdTicks
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse turns mouse motion into a pointer target in surface pixels.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion, tea.MouseActionPress:
	default:
		return m, nil
	}

	m.inputFrame.Pointer = core.Pointer{
		Active:    true,
		HasTarget: true,
		X:         (float64(core.Clamp(msg.X, 0, m.config.ScreenW-1)) + 0.5) * m.opts.CellWidth,
	}
	delete(m.held, core.ActionLeft)
	delete(m.held, core.ActionRight)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Set(core.ActionLaunch)
	}
	return m, nil
}

// sizeGuard is implemented by games that refuse to run below a minimum
// terminal size.
type sizeGuard interface {
	ScreenTooSmall() bool
}

// handleResize processes window resize events. The simulation surface is
// fixed for a session, so only the display buffer follows the terminal. A
// game that never started because the terminal was too small is reset to
// the new size instead.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := msg.Width, max(msg.Height-1, 1)
	if w == m.screen.Width() && h == m.screen.Height() {
		return m, nil
	}
	m.screen.Resize(w, h)
	m.help.Width = w
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.logger.Debug("terminal resized", "cols", w, "rows", h)

	if g, ok := m.game.(sizeGuard); ok && g.ScreenTooSmall() {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.logger.Info("session restarted for new terminal size", "too_small", g.ScreenTooSmall())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for action, n := range m.held {
		if n <= 0 {
			delete(m.held, action)
			continue
		}
		m.inputFrame.Set(action)
		m.held[action] = n - 1
	}

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !prev.GameOver {
		m.logger.Info("game over", "score", m.gameState.Score)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "err", err)
			return
		}
		dir = filepath.Join(home, ".brickfall", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.styles) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
}
