package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickfall/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LocalConfigPath is the project-local config location.
const LocalConfigPath = "configs/brickfall.yaml"

// LoadBrickfall loads Brickfall configuration and reports which source won.
// Search order: customPath -> ~/.brickfall/brickfall.yaml -> ./configs/brickfall.yaml -> embedded default
// A custom path must load and validate; fallback locations that fail are skipped.
func LoadBrickfall(customPath string) (BrickfallConfig, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath("brickfall.yaml"), LocalConfigPath} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultBrickfallYAML)
	if err != nil {
		return DefaultBrickfallConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// loadFile reads, parses and validates a config file.
func loadFile(path string) (BrickfallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BrickfallConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Keys absent from the document keep their default values.
func Parse(data []byte) (BrickfallConfig, error) {
	cfg := DefaultBrickfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c BrickfallConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Validate checks the config and returns every violation joined together.
func (c BrickfallConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Surface.CellWidth > 0, "surface.cell_width must be positive, got %v", c.Surface.CellWidth)
	check(c.Surface.CellHeight > 0, "surface.cell_height must be positive, got %v", c.Surface.CellHeight)

	check(c.Ball.Radius > 0, "ball.radius must be positive, got %v", c.Ball.Radius)
	check(c.Ball.LaunchDY > 0, "ball.launch_dy must be positive, got %v", c.Ball.LaunchDY)
	check(c.Ball.LaunchDX >= 0, "ball.launch_dx must not be negative, got %v", c.Ball.LaunchDX)

	check(c.Paddle.Width > 0, "paddle.width must be positive, got %v", c.Paddle.Width)
	check(c.Paddle.Height > 0, "paddle.height must be positive, got %v", c.Paddle.Height)
	check(c.Paddle.Speed > 0, "paddle.speed must be positive, got %v", c.Paddle.Speed)
	check(c.Paddle.MaxBounceDX >= 0, "paddle.max_bounce_dx must not be negative, got %v", c.Paddle.MaxBounceDX)

	check(c.Bricks.Columns > 0, "bricks.columns must be positive, got %d", c.Bricks.Columns)
	check(c.Bricks.Rows > 0, "bricks.rows must be positive, got %d", c.Bricks.Rows)
	check(c.Bricks.Width >= 0, "bricks.width must not be negative, got %v", c.Bricks.Width)
	check(c.Bricks.Height > 0, "bricks.height must be positive, got %v", c.Bricks.Height)
	check(c.Bricks.Padding >= 0, "bricks.padding must not be negative, got %v", c.Bricks.Padding)
	check(c.Bricks.ShiftSpeed > 0, "bricks.shift_speed must be positive, got %v", c.Bricks.ShiftSpeed)
	check(c.Bricks.Points > 0, "bricks.points must be positive, got %d", c.Bricks.Points)
	check(len(c.Bricks.Palette) > 0, "bricks.palette must not be empty")
	for i, hex := range c.Bricks.Palette {
		_, err := core.ParseColor(hex)
		check(err == nil, "bricks.palette[%d]: %v", i, err)
	}
	for _, field := range []struct{ name, hex string }{
		{"ball.color", c.Ball.Color},
		{"paddle.color", c.Paddle.Color},
	} {
		_, err := core.ParseColor(field.hex)
		check(err == nil, "%s: %v", field.name, err)
	}

	check(c.Effects.ParticleCount >= 0, "effects.particle_count must not be negative, got %d", c.Effects.ParticleCount)
	check(c.Effects.ParticleLife > 0, "effects.particle_life must be positive, got %d", c.Effects.ParticleLife)
	check(c.Effects.ShardCount >= 0, "effects.shard_count must not be negative, got %d", c.Effects.ShardCount)
	check(c.Effects.MaxParticles > 0, "effects.max_particles must be positive, got %d", c.Effects.MaxParticles)
	check(c.Effects.MaxShards > 0, "effects.max_shards must be positive, got %d", c.Effects.MaxShards)

	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Gameplay.LaunchDelay >= 0, "gameplay.launch_delay must not be negative, got %d", c.Gameplay.LaunchDelay)
	check(c.Gameplay.ExtraLifeEvery > 0, "gameplay.extra_life_every must be positive, got %d", c.Gameplay.ExtraLifeEvery)

	check(c.Debug.SpeedMultiplier > 0, "debug.speed_multiplier must be positive, got %v", c.Debug.SpeedMultiplier)

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickfall", filename)
}
