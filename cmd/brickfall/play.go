package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/brickfall"
	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start a session of the specified game (default: brickfall).

Controls:
  Left/Right, A/D   - Move paddle (or move the mouse)
  Space/Up, click   - Launch the ball now
  P/Esc             - Pause
  G                 - Toggle debug mode (floor bounce, faster ball)
  R                 - Restart
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  brickfall play
  brickfall play --seed 1234
  brickfall play --debug
  brickfall play --config ./my-brickfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := brickfall.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'brickfall list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile)
	if err != nil {
		return err
	}
	defer func() {
		//nolint:errcheck // Best-effort close on exit
		closeLog()
	}()

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("config loaded", "source", source)

	brickfall.SetConfig(cfg)
	brickfall.SetLogger(logger)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	} else {
		logger.Warn("could not read terminal size", "error", termErr)
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger.Info("starting", "game", gameID, "cols", width, "rows", height, "fps", flagFPS)
	err = tui.Run(game, rt, tui.Options{
		CellWidth:  cfg.Surface.CellWidth,
		CellHeight: cfg.Surface.CellHeight,
		Logger:     logger,
	})
	state := game.State()
	logger.Info("exited", "score", state.Score, "mode", state.Mode)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadConfig resolves the config through the search path and applies the
// CLI overrides.
func loadConfig() (config.BrickfallConfig, string, error) {
	cfg, source, err := config.LoadBrickfall(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	if flagDebug {
		cfg.Debug.Enabled = true
	}
	return cfg, source, nil
}
