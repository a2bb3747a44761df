package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/css"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxwright.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16*time.Millisecond, cfg.Frame.Interval.Duration)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, css.Color{R: 255, G: 255, B: 255, A: 255}, cfg.Background())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[viewport]
width = 320

[frame]
interval = "33ms"

[text]
font_size = 12

[log]
level = "debug"

[render]
background = "#102030"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height, "unset keys keep their default")
	assert.Equal(t, 33*time.Millisecond, cfg.Frame.Interval.Duration)
	assert.Equal(t, 12.0, cfg.Text.FontSize)
	assert.Equal(t, 1.2, cfg.Text.LineHeight)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, css.Color{R: 0x10, G: 0x20, B: 0x30, A: 255}, cfg.Background())
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[viewport]\ndepth = 3\n")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "viewport.depth")
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "[frame]\ninterval = \"soon\"\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }},
		{"negative height", func(c *Config) { c.Viewport.Height = -1 }},
		{"zero interval", func(c *Config) { c.Frame.Interval.Duration = 0 }},
		{"zero font size", func(c *Config) { c.Text.FontSize = 0 }},
		{"negative line height", func(c *Config) { c.Text.LineHeight = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad background", func(c *Config) { c.Render.Background = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
