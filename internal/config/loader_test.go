package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultBrickfallConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultBrickfallConfig().Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("gameplay:\n  lives: 7\nbricks:\n  palette: [\"#112233\"]\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gameplay.Lives)
	assert.Equal(t, []string{"#112233"}, cfg.Bricks.Palette)
	assert.Equal(t, DefaultBrickfallConfig().Gameplay.ExtraLifeEvery, cfg.Gameplay.ExtraLifeEvery)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("gameplay: [not, a, map"))
	assert.Error(t, err)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := DefaultBrickfallConfig()
	cfg.Gameplay.Lives = 0
	cfg.Bricks.Columns = -1
	cfg.Bricks.Palette = []string{"#ff0000", "chartreuse"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "gameplay.lives")
	assert.Contains(t, err.Error(), "bricks.columns")
	assert.Contains(t, err.Error(), "bricks.palette[1]")
	assert.NotContains(t, err.Error(), "bricks.palette[0]")
}

func TestLoadBrickfallCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ball:\n  radius: 9\n"), 0o600))

	cfg, source, err := LoadBrickfall(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 9.0, cfg.Ball.Radius)
}

func TestLoadBrickfallCustomPathErrors(t *testing.T) {
	_, _, err := LoadBrickfall(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paddle:\n  speed: 0\n"), 0o600))
	_, _, err = LoadBrickfall(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := DefaultBrickfallConfig().Marshal()
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultBrickfallConfig(), cfg)
}
