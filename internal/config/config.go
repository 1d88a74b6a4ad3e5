// Package config provides YAML-based game configuration loading and
// validation for Brickfall.
package config

// BrickfallConfig contains all configuration for the Brickfall game.
// Distances are surface pixels, durations are ticks.
type BrickfallConfig struct {
	Surface  SurfaceConfig  `yaml:"surface"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Bricks   BricksConfig   `yaml:"bricks"`
	Effects  EffectsConfig  `yaml:"effects"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Debug    DebugConfig    `yaml:"debug"`
}

// SurfaceConfig maps terminal cells to surface pixels.
type SurfaceConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// BallConfig defines the ball and its launch velocity.
type BallConfig struct {
	Radius   float64 `yaml:"radius"`
	LaunchDX float64 `yaml:"launch_dx"` // Horizontal speed, sign is random
	LaunchDY float64 `yaml:"launch_dy"` // Upward speed
	Color    string  `yaml:"color"`
}

// PaddleConfig defines paddle geometry and control.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Gap between paddle and surface bottom
	Speed        float64 `yaml:"speed"`
	BounceFactor float64 `yaml:"bounce_factor"` // dx per pixel of offset from paddle center
	MaxBounceDX  float64 `yaml:"max_bounce_dx"`
	Color        string  `yaml:"color"`
}

// BricksConfig defines the brick grid layout and row advance.
type BricksConfig struct {
	Columns    int      `yaml:"columns"`
	Rows       int      `yaml:"rows"`
	Width      float64  `yaml:"width"` // 0 = fit columns to the surface width
	Height     float64  `yaml:"height"`
	Padding    float64  `yaml:"padding"`
	OffsetTop  float64  `yaml:"offset_top"`
	OffsetLeft float64  `yaml:"offset_left"`
	ShiftSpeed float64  `yaml:"shift_speed"` // Row-shift animation pixels per tick
	Points     int      `yaml:"points"`
	Palette    []string `yaml:"palette"`
}

// EffectsConfig defines the particle and shard swarms.
type EffectsConfig struct {
	ParticleCount   int     `yaml:"particle_count"`
	ParticleLife    int     `yaml:"particle_life"`
	ParticleGravity float64 `yaml:"particle_gravity"`
	ParticleSpeed   float64 `yaml:"particle_speed"`
	ShardCount      int     `yaml:"shard_count"`
	ShardScale      float64 `yaml:"shard_scale"`
	ShardMargin     float64 `yaml:"shard_margin"`
	MaxParticles    int     `yaml:"max_particles"`
	MaxShards       int     `yaml:"max_shards"`
}

// GameplayConfig defines lives and launch timing.
type GameplayConfig struct {
	Lives          int `yaml:"lives"`
	LaunchDelay    int `yaml:"launch_delay"`
	ExtraLifeEvery int `yaml:"extra_life_every"`
}

// DebugConfig defines debug mode behavior.
type DebugConfig struct {
	Enabled         bool    `yaml:"enabled"` // Start sessions in debug mode
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}
