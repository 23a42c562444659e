package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/document"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SPRITEANIM_DEFAULT_FPS or SPRITEANIM_WINDOW_WIDTH.
const EnvPrefix = "SPRITEANIM"

// FileName is the config file searched for in the working directory and
// then the home directory.
const FileName = ".spriteanim"

// WindowConfig sizes the editor and player windows.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ZoomConfig bounds the editor canvas zoom.
type ZoomConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

// Config holds all runtime configuration shared by the binaries.
// Values are populated from .spriteanim.yaml, SPRITEANIM_* env vars, and
// flags bound by the caller.
type Config struct {
	DefaultFPS      float64      `mapstructure:"default_fps"`
	PreviewMaxScale float64      `mapstructure:"preview_max_scale"`
	MinFrameSize    int          `mapstructure:"min_frame_size"`
	TickMS          float64      `mapstructure:"tick_ms"`
	Autosave        bool         `mapstructure:"autosave"`
	AutosavePath    string       `mapstructure:"autosave_path"`
	WatchDebounceMS int          `mapstructure:"watch_debounce_ms"`
	AlphaThreshold  int          `mapstructure:"alpha_threshold"`
	Window          WindowConfig `mapstructure:"window"`
	Zoom            ZoomConfig   `mapstructure:"zoom"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	autosave, err := document.DefaultStorePath()
	if err != nil {
		autosave = ""
	}
	v.SetDefault("default_fps", anim.DefaultFrameRate)
	v.SetDefault("preview_max_scale", 2.0)
	v.SetDefault("min_frame_size", 5)
	v.SetDefault("tick_ms", 1000.0/60.0)
	v.SetDefault("autosave", true)
	v.SetDefault("autosave_path", autosave)
	v.SetDefault("watch_debounce_ms", 100)
	v.SetDefault("alpha_threshold", 0)
	v.SetDefault("window.width", 1530)
	v.SetDefault("window.height", 900)
	v.SetDefault("zoom.min", 0.25)
	v.SetDefault("zoom.max", 4.0)
	v.SetDefault("zoom.step", 1.1)
}

// Load builds a config from defaults, the config file and the environment.
// An explicit path must exist; without one a missing file is fine.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return FromViper(v)
}

// BindEnv enables SPRITEANIM_* overrides on v. Nested keys use an
// underscore, so window.width is SPRITEANIM_WINDOW_WIDTH.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper applies defaults to v and decodes it.
func FromViper(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces unusable values with their defaults.
func (c *Config) normalize() {
	if c.DefaultFPS <= 0 {
		c.DefaultFPS = anim.DefaultFrameRate
	}
	if c.PreviewMaxScale <= 0 {
		c.PreviewMaxScale = 2
	}
	if c.MinFrameSize < 1 {
		c.MinFrameSize = 1
	}
	if c.TickMS <= 0 {
		c.TickMS = 1000.0 / 60.0
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = 100
	}
	if c.AlphaThreshold < 0 {
		c.AlphaThreshold = 0
	}
	if c.AlphaThreshold > 255 {
		c.AlphaThreshold = 255
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1530
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 900
	}
	if c.Zoom.Min <= 0 {
		c.Zoom.Min = 0.25
	}
	if c.Zoom.Max < c.Zoom.Min {
		c.Zoom.Max = c.Zoom.Min
	}
	if c.Zoom.Step <= 1 {
		c.Zoom.Step = 1.1
	}
}

// Tick is TickMS as a duration.
func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMS * float64(time.Millisecond))
}

// WatchDebounce is WatchDebounceMS as a duration.
func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// TPS is the update rate matching TickMS, at least 1.
func (c Config) TPS() int {
	tps := int(math.Round(1000 / c.TickMS))
	if tps < 1 {
		return 1
	}
	return tps
}
