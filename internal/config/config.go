// Package config loads the settings of the markers command line tools.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MARKERS_CACHE_BUDGET.
const EnvPrefix = "MARKERS"

// Config holds every setting.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`

	Render  RenderConfig  `mapstructure:"render"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Anim    AnimConfig    `mapstructure:"anim"`
	Surface SurfaceConfig `mapstructure:"surface"`

	OutputDir string `mapstructure:"outputDir"`
}

// RenderConfig configures the rasterizer.
type RenderConfig struct {
	Density      float64 `mapstructure:"density"`
	ScreenHeight int     `mapstructure:"screenHeight"`
	// FontFile is a TrueType font path. Empty uses Go Regular.
	FontFile string `mapstructure:"fontFile"`
}

// CacheConfig configures the bitmap cache.
type CacheConfig struct {
	// Budget is a human size such as "32MB". Empty derives the budget
	// from MemoryFraction.
	Budget         string  `mapstructure:"budget"`
	MemoryFraction float64 `mapstructure:"memoryFraction"`
}

// AnimConfig configures cross-fades.
type AnimConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Frames   int           `mapstructure:"frames"`
	Pool     int           `mapstructure:"pool"`
	Duration time.Duration `mapstructure:"duration"`
	Interval time.Duration `mapstructure:"interval"`
}

// SurfaceConfig selects and sizes the host surface.
type SurfaceConfig struct {
	Backend        string  `mapstructure:"backend"`
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	Lat            float64 `mapstructure:"lat"`
	Lng            float64 `mapstructure:"lng"`
	MetersPerPixel float64 `mapstructure:"metersPerPixel"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("outputDir", "./frames")

	v.SetDefault("render.density", 2.0)
	v.SetDefault("render.screenHeight", 2467)
	v.SetDefault("render.fontFile", "")

	v.SetDefault("cache.budget", "")
	v.SetDefault("cache.memoryFraction", 0.125)

	v.SetDefault("anim.enabled", true)
	v.SetDefault("anim.frames", 31)
	v.SetDefault("anim.pool", 4)
	v.SetDefault("anim.duration", "1s")
	v.SetDefault("anim.interval", "33ms")

	v.SetDefault("surface.backend", "memory")
	v.SetDefault("surface.width", 512)
	v.SetDefault("surface.height", 512)
	v.SetDefault("surface.lat", 52.3676)
	v.SetDefault("surface.lng", 4.9041)
	v.SetDefault("surface.metersPerPixel", 0.5)
}

// Load reads the defaults, then the file at path when path is not empty,
// then MARKERS_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if _, err := cfg.Cache.BudgetKiB(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BudgetKiB parses Budget into KiB. It returns 0 and no error when Budget
// is empty.
func (c CacheConfig) BudgetKiB() (int64, error) {
	if strings.TrimSpace(c.Budget) == "" {
		return 0, nil
	}
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(strings.TrimSpace(c.Budget))); err != nil {
		return 0, fmt.Errorf("invalid cache budget %q: %w", c.Budget, err)
	}
	return int64(size.KBytes()), nil
}
