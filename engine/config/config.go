package config

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/preset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/caarlos0/env/v11"
)

// Config is the process configuration read from OXY_VIEWER_* environment variables.
type Config struct {
	Preset           string `env:"PRESET"`
	PresetFile       string `env:"PRESET_FILE"`
	AssetRoot        string `env:"ASSET_ROOT"`
	Width            int    `env:"WIDTH" envDefault:"1280"`
	Height           int    `env:"HEIGHT" envDefault:"720"`
	TickRate         int    `env:"TICK_RATE" envDefault:"60"`
	MSAA             int    `env:"MSAA" envDefault:"4"`
	Profiling        bool   `env:"PROFILING"`
	NaturalForward   bool   `env:"NATURAL_FORWARD"`
	ClearOnFocusLoss bool   `env:"CLEAR_ON_FOCUS_LOSS" envDefault:"true"`
}

// Prefix is prepended to every variable name in Config.
const Prefix = "OXY_VIEWER_"

// DefaultPreset is used when neither the environment nor the caller names a preset.
const DefaultPreset = "toba"

// Load parses the environment into a Config.
//
// Parameters:
//   - defaults: values to use in place of empty fields, typically the preset a
//     program is built for; may be nil
//
// Returns:
//   - Config: the parsed configuration
//   - error: a wrapped parse or validation error
func Load(defaults *Config) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if defaults != nil {
		cfg.Preset = common.Coalesce(cfg.Preset, defaults.Preset)
		cfg.PresetFile = common.Coalesce(cfg.PresetFile, defaults.PresetFile)
		cfg.AssetRoot = common.Coalesce(cfg.AssetRoot, defaults.AssetRoot)
	}
	cfg.Preset = common.Coalesce(cfg.Preset, DefaultPreset)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes, rates and sample counts the engine cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", c.TickRate)
	}
	if _, err := renderer.ParseMSAA(c.MSAA); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LoadPreset resolves the configured scene preset. A preset file takes
// precedence over the embedded preset name.
//
// Returns:
//   - *preset.Preset: the resolved preset
//   - error: the preset load error, if any
func (c Config) LoadPreset() (*preset.Preset, error) {
	if c.PresetFile != "" {
		return preset.LoadFile(c.PresetFile)
	}
	return preset.Load(c.Preset)
}
