package config

import (
	_ "embed"
)

//go:embed defaults/brickfall.yaml
var defaultBrickfallYAML []byte

// DefaultPalette is the brick color palette.
var DefaultPalette = []string{
	"#ff5f5f", "#ffaf5f", "#ffd75f", "#87d75f",
	"#5fd7d7", "#5f87ff", "#af87ff", "#ff87d7",
}

// DefaultBrickfallConfig returns the default Brickfall configuration.
// It mirrors defaults/brickfall.yaml.
func DefaultBrickfallConfig() BrickfallConfig {
	return BrickfallConfig{
		Surface: SurfaceConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Ball: BallConfig{
			Radius:   6,
			LaunchDX: 3,
			LaunchDY: 5,
			Color:    "#ffffff",
		},
		Paddle: PaddleConfig{
			Width:        96,
			Height:       16,
			BottomOffset: 16,
			Speed:        8,
			BounceFactor: 0.12,
			MaxBounceDX:  6,
			Color:        "#d0d0d0",
		},
		Bricks: BricksConfig{
			Columns:    10,
			Rows:       8,
			Width:      0,
			Height:     16,
			Padding:    16,
			OffsetTop:  48,
			OffsetLeft: 16,
			ShiftSpeed: 2,
			Points:     1,
			Palette:    append([]string(nil), DefaultPalette...),
		},
		Effects: EffectsConfig{
			ParticleCount:   12,
			ParticleLife:    30,
			ParticleGravity: 0.1,
			ParticleSpeed:   3,
			ShardCount:      6,
			ShardScale:      0.6,
			ShardMargin:     50,
			MaxParticles:    600,
			MaxShards:       300,
		},
		Gameplay: GameplayConfig{
			Lives:          3,
			LaunchDelay:    120,
			ExtraLifeEvery: 50,
		},
		Debug: DebugConfig{
			Enabled:         false,
			SpeedMultiplier: 3,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultBrickfallYAML
}
