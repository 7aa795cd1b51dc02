// Package config loads orbitview settings from defaults, an optional YAML
// file, ORBITVIEW_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taigrr/orbitview/pkg/controls"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ORBITVIEW_VIEWER_FPS.
const EnvPrefix = "ORBITVIEW"

// Config is the full application configuration.
type Config struct {
	Controls ControlsConfig `mapstructure:"controls" yaml:"controls"`
	Viewer   ViewerConfig   `mapstructure:"viewer" yaml:"viewer"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// ControlsConfig seeds the orbit controls. Angles are in degrees.
type ControlsConfig struct {
	Radius       float64 `mapstructure:"radius" yaml:"radius"`
	PitchDegrees float64 `mapstructure:"pitch_degrees" yaml:"pitch_degrees"`
	YawDegrees   float64 `mapstructure:"yaw_degrees" yaml:"yaw_degrees"`
	OrbitSpeed   float64 `mapstructure:"orbit_speed" yaml:"orbit_speed"`
	PanSpeed     float64 `mapstructure:"pan_speed" yaml:"pan_speed"`
	ZoomSpeed    float64 `mapstructure:"zoom_speed" yaml:"zoom_speed"`
}

// ViewerConfig controls the frontends.
type ViewerConfig struct {
	FPS          int     `mapstructure:"fps" yaml:"fps"`
	Background   string  `mapstructure:"background" yaml:"background"` // "R,G,B"
	PointerScale float64 `mapstructure:"pointer_scale" yaml:"pointer_scale"`
	Grid         bool    `mapstructure:"grid" yaml:"grid"`
	HUD          bool    `mapstructure:"hud" yaml:"hud"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// LogConfig selects the log level and destination. An empty File discards
// logs, since the terminal frontend owns stdout and stderr.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Controls: ControlsConfig{
			Radius:       4,
			PitchDegrees: 60,
			YawDegrees:   30,
			OrbitSpeed:   0.01,
			PanSpeed:     0.001,
			ZoomSpeed:    0.25,
		},
		Viewer: ViewerConfig{
			FPS:          60,
			Background:   "30,30,40",
			PointerScale: 4,
			Grid:         true,
			HUD:          true,
		},
		Window: WindowConfig{
			Width:  960,
			Height: 720,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = []struct{ flag, key string }{
	{"radius", "controls.radius"},
	{"pitch", "controls.pitch_degrees"},
	{"yaw", "controls.yaw_degrees"},
	{"orbit-speed", "controls.orbit_speed"},
	{"pan-speed", "controls.pan_speed"},
	{"zoom-speed", "controls.zoom_speed"},
	{"fps", "viewer.fps"},
	{"bg", "viewer.background"},
	{"pointer-scale", "viewer.pointer_scale"},
	{"grid", "viewer.grid"},
	{"hud", "viewer.hud"},
	{"width", "window.width"},
	{"height", "window.height"},
	{"log-level", "log.level"},
	{"log-file", "log.file"},
}

// RegisterFlags adds a flag for every setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("radius", d.Controls.Radius, "initial distance from the target")
	fs.Float64("pitch", d.Controls.PitchDegrees, "initial polar angle in degrees, measured from +Y")
	fs.Float64("yaw", d.Controls.YawDegrees, "initial azimuth in degrees around +Y")
	fs.Float64("orbit-speed", d.Controls.OrbitSpeed, "radians of orbit per pixel of drag")
	fs.Float64("pan-speed", d.Controls.PanSpeed, "pan distance per pixel, per unit of radius")
	fs.Float64("zoom-speed", d.Controls.ZoomSpeed, "zoom distance per scroll step")
	fs.Int("fps", d.Viewer.FPS, "target frames per second")
	fs.String("bg", d.Viewer.Background, "background color (R,G,B)")
	fs.Float64("pointer-scale", d.Viewer.PointerScale, "pixels per terminal cell of pointer motion")
	fs.Bool("grid", d.Viewer.Grid, "draw the ground grid")
	fs.Bool("hud", d.Viewer.HUD, "show the HUD")
	fs.Int("width", d.Window.Width, "window width in pixels")
	fs.Int("height", d.Window.Height, "window height in pixels")
	fs.String("log-level", d.Log.Level, "log level (trace, debug, info, warn, error)")
	fs.String("log-file", d.Log.File, "write logs to this file")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("controls.radius", d.Controls.Radius)
	v.SetDefault("controls.pitch_degrees", d.Controls.PitchDegrees)
	v.SetDefault("controls.yaw_degrees", d.Controls.YawDegrees)
	v.SetDefault("controls.orbit_speed", d.Controls.OrbitSpeed)
	v.SetDefault("controls.pan_speed", d.Controls.PanSpeed)
	v.SetDefault("controls.zoom_speed", d.Controls.ZoomSpeed)
	v.SetDefault("viewer.fps", d.Viewer.FPS)
	v.SetDefault("viewer.background", d.Viewer.Background)
	v.SetDefault("viewer.pointer_scale", d.Viewer.PointerScale)
	v.SetDefault("viewer.grid", d.Viewer.Grid)
	v.SetDefault("viewer.hud", d.Viewer.HUD)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// searchPaths lists the directories searched for orbitview.yaml.
func searchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "orbitview"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "orbitview"))
	}
	return paths
}

// Load builds the configuration. configFile, when set, must exist; otherwise
// orbitview.yaml is looked up in the search paths and may be absent. flags
// may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, fk := range flagKeys {
			f := flags.Lookup(fk.flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(fk.key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", fk.flag, err)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("orbitview")
		v.SetConfigType("yaml")
		for _, p := range searchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the viewer cannot run without. Control
// speeds are taken as given.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("viewer.fps must be positive, got %d", c.Viewer.FPS))
	}
	if c.Viewer.PointerScale <= 0 {
		errs = append(errs, fmt.Errorf("viewer.pointer_scale must be positive, got %v", c.Viewer.PointerScale))
	}
	if _, err := c.Viewer.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// BackgroundColor parses Background.
func (c ViewerConfig) BackgroundColor() (color.RGBA, error) {
	parts := strings.Split(c.Background, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("viewer.background %q: want R,G,B", c.Background)
	}

	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("viewer.background %q: %w", c.Background, err)
		}
		if n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("viewer.background %q: component %d out of range", c.Background, n)
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// Params converts the settings to orbit control parameters.
func (c ControlsConfig) Params() controls.Params {
	return controls.Params{
		Radius:     c.Radius,
		Pitch:      c.PitchDegrees * math.Pi / 180,
		Yaw:        c.YawDegrees * math.Pi / 180,
		OrbitSpeed: c.OrbitSpeed,
		PanSpeed:   c.PanSpeed,
		ZoomSpeed:  c.ZoomSpeed,
	}
}

// WriteYAML writes c as a config file that Load accepts.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
