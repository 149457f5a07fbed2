// Package atlasconfig loads packer settings with priority defaults <
// atlaspack.yaml < CLI flag overrides.
package atlasconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
)

// Config is the packer's externally tunable settings.
type Config struct {
	TextureWidth           int    `yaml:"texture_width"`
	TextureHeight          int    `yaml:"texture_height"`
	BytesPerPixel          int    `yaml:"bytes_per_pixel"`
	Merge                  bool   `yaml:"merge"`
	Heuristic              string `yaml:"heuristic"`
	LogLevel               string `yaml:"log_level"`
	LogFile                string `yaml:"log_file"`
	CorrectedExpansionCaps bool   `yaml:"corrected_expansion_caps"`
}

// Default returns the built-in settings: a 64x64 RGBA atlas with
// duplicate merging on and faithfully reproduced expansion caps.
func Default() *Config {
	return &Config{
		TextureWidth:           64,
		TextureHeight:          64,
		BytesPerPixel:          4,
		Merge:                  true,
		Heuristic:              "bsp-first-fit",
		LogLevel:               "info",
		LogFile:                "",
		CorrectedExpansionCaps: false,
	}
}

// Overrides carries CLI-flag values; a nil pointer field means "not
// set on the command line", so Load can skip it and keep the
// file/default value.
type Overrides struct {
	TextureWidth           *int
	TextureHeight          *int
	Merge                  *bool
	LogLevel               *string
	LogFile                *string
	CorrectedExpansionCaps *bool
}

// Load builds a Config from defaults, an optional YAML file at path
// (skipped if path is empty; a path naming a missing file is a usage
// error), and finally CLI overrides, in that priority order.
func Load(path string, overrides Overrides) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(atlaserr.ErrUsage, "atlasconfig: config file %q not found", path)
			}
			return nil, errors.Wrap(atlaserr.ErrIO, "atlasconfig: reading config: "+err.Error())
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(atlaserr.ErrData, "atlasconfig: parsing config: "+err.Error())
		}
	}

	applyOverrides(cfg, overrides)

	if cfg.TextureWidth <= 0 || cfg.TextureHeight <= 0 {
		return nil, errors.Wrapf(atlaserr.ErrUsage, "atlasconfig: texture dimensions must be positive, got %dx%d", cfg.TextureWidth, cfg.TextureHeight)
	}
	if cfg.BytesPerPixel <= 0 {
		return nil, errors.Wrapf(atlaserr.ErrUsage, "atlasconfig: bytes_per_pixel must be positive, got %d", cfg.BytesPerPixel)
	}

	return cfg, nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.TextureWidth != nil {
		cfg.TextureWidth = *o.TextureWidth
	}
	if o.TextureHeight != nil {
		cfg.TextureHeight = *o.TextureHeight
	}
	if o.Merge != nil {
		cfg.Merge = *o.Merge
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.LogFile != nil {
		cfg.LogFile = *o.LogFile
	}
	if o.CorrectedExpansionCaps != nil {
		cfg.CorrectedExpansionCaps = *o.CorrectedExpansionCaps
	}
}
