// Package config loads boxwright's TOML configuration.
//
// A config file looks like:
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[frame]
//	interval = "16ms"
//
//	[text]
//	font_path = "fonts/DejaVuSans.ttf"
//	font_size = 16
//	line_height = 1.2
//
//	[log]
//	level = "info"
//
//	[render]
//	background = "#ffffff"
//
// Every key is optional; missing keys keep the values from Default.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"boxwright/pkg/css"
	"boxwright/pkg/text"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Viewport Viewport `toml:"viewport"`
	Frame    Frame    `toml:"frame"`
	Text     Text     `toml:"text"`
	Log      Log      `toml:"log"`
	Render   Render   `toml:"render"`
}

type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Frame struct {
	Interval Duration `toml:"interval"`
}

type Text struct {
	FontPath   string  `toml:"font_path"`
	FontSize   float64 `toml:"font_size"`
	LineHeight float64 `toml:"line_height"`
}

type Log struct {
	Level string `toml:"level"`
}

type Render struct {
	Background string `toml:"background"`
}

// Duration decodes TOML strings such as "16ms" with time.ParseDuration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Viewport: Viewport{Width: 800, Height: 600},
		Frame:    Frame{Interval: Duration{16 * time.Millisecond}},
		Text: Text{
			FontSize:   css.DefaultFontSize,
			LineHeight: text.DefaultLineHeight,
		},
		Log:    Log{Level: "info"},
		Render: Render{Background: "white"},
	}
}

// Load reads the TOML file at path over the defaults and validates the
// result. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport must be positive, got %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.Frame.Interval.Duration <= 0:
		return fmt.Errorf("%w: frame interval must be positive, got %s", ErrInvalid, c.Frame.Interval.Duration)
	case c.Text.FontSize <= 0:
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalid, c.Text.FontSize)
	case c.Text.LineHeight <= 0:
		return fmt.Errorf("%w: line height must be positive, got %v", ErrInvalid, c.Text.LineHeight)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	if _, ok := css.ParseColor(c.Render.Background); !ok {
		return fmt.Errorf("%w: background %q is not a color", ErrInvalid, c.Render.Background)
	}
	return nil
}

// LogLevel returns the parsed log level. Call Validate first.
func (c *Config) LogLevel() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Background returns the parsed background color. Call Validate first.
func (c *Config) Background() css.Color {
	col, _ := css.ParseColor(c.Render.Background)
	return col
}
