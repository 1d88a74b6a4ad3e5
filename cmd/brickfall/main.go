// brickfall is an endless brick breaker for the terminal.
//
// Usage:
//
//	brickfall play [game]    - Play (defaults to brickfall)
//	brickfall list           - List available games
//	brickfall config         - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Load a custom config YAML
//	--debug              - Start with debug mode on
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file (default: discarded)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/brickfall/internal/games/brickfall"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDebug    bool
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickfall",
	Short: "Brickfall - an endless brick breaker in your terminal",
	Long: `Brickfall is an endless brick breaker. The ball smashes straight
through bricks, and whenever the bottom rows are cleared the whole wall
slides down and fresh rows appear at the top.

Available commands:
  play     - Start a session
  list     - Show all available games
  config   - Print the effective configuration

Examples:
  brickfall play
  brickfall play --seed 42 --fps 30
  brickfall play --config ./my-brickfall.yaml --log-file brickfall.log
  brickfall config > ~/.brickfall/brickfall.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Start with debug mode enabled")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
