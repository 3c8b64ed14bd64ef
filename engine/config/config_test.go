package config

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPreset, cfg.Preset)
	assert.Empty(t, cfg.PresetFile)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 4, cfg.MSAA)
	assert.False(t, cfg.Profiling)
	assert.False(t, cfg.NaturalForward)
	assert.True(t, cfg.ClearOnFocusLoss)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OXY_VIEWER_PRESET", "mandailing")
	t.Setenv("OXY_VIEWER_ASSET_ROOT", "/srv/assets")
	t.Setenv("OXY_VIEWER_WIDTH", "800")
	t.Setenv("OXY_VIEWER_HEIGHT", "600")
	t.Setenv("OXY_VIEWER_TICK_RATE", "30")
	t.Setenv("OXY_VIEWER_MSAA", "8")
	t.Setenv("OXY_VIEWER_PROFILING", "true")
	t.Setenv("OXY_VIEWER_NATURAL_FORWARD", "true")
	t.Setenv("OXY_VIEWER_CLEAR_ON_FOCUS_LOSS", "false")

	cfg, err := Load(&Config{Preset: "toba", AssetRoot: "assets"})
	require.NoError(t, err)

	assert.Equal(t, "mandailing", cfg.Preset)
	assert.Equal(t, "/srv/assets", cfg.AssetRoot)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, 8, cfg.MSAA)
	assert.True(t, cfg.Profiling)
	assert.True(t, cfg.NaturalForward)
	assert.False(t, cfg.ClearOnFocusLoss)
}

func TestLoadCallerDefaults(t *testing.T) {
	cfg, err := Load(&Config{Preset: "mandailing", AssetRoot: "assets"})
	require.NoError(t, err)
	assert.Equal(t, "mandailing", cfg.Preset)
	assert.Equal(t, "assets", cfg.AssetRoot)
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed int", func(t *testing.T) {
		t.Setenv("OXY_VIEWER_WIDTH", "wide")
		_, err := Load(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})
	t.Run("zero tick rate", func(t *testing.T) {
		t.Setenv("OXY_VIEWER_TICK_RATE", "0")
		_, err := Load(nil)
		assert.Error(t, err)
	})
	t.Run("unsupported msaa", func(t *testing.T) {
		t.Setenv("OXY_VIEWER_MSAA", "2")
		_, err := Load(nil)
		assert.ErrorIs(t, err, renderer.ErrInvalidMSAA)
	})
}

func TestLoadPreset(t *testing.T) {
	p, err := Config{Preset: "mandailing"}.LoadPreset()
	require.NoError(t, err)
	assert.Equal(t, "mandailing", p.Name)

	_, err = Config{Preset: "toba", PresetFile: "/does/not/exist.toml"}.LoadPreset()
	assert.Error(t, err)
}
