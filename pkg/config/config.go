// Package config holds the viewer's persistent settings
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/james-see/smfview/pkg/viewer"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ServerConfig configures the API server
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the main configuration structure
type Config struct {
	// Zero-based channels treated as percussion
	DrumChannels []int `yaml:"drum_channels"`
	// 0 shows channels 0-15, 1 shows 1-16
	ChannelBase int          `yaml:"channel_base"`
	NoteNames   bool         `yaml:"note_names"`
	MaxFieldLen int          `yaml:"max_field_len"`
	Server      ServerConfig `yaml:"server"`
	Log         LogConfig    `yaml:"log"`
}

// Default returns a config with General MIDI defaults
func Default() *Config {
	return &Config{
		DrumChannels: []int{9},
		ChannelBase:  0,
		NoteNames:    true,
		MaxFieldLen:  viewer.MaxStrLen,
		Server:       ServerConfig{Port: 8080},
		Log:          LogConfig{Level: "info"},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smfview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "smfview"), nil
}

// Path returns the full path to config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields the defaults; keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.WithField("path", path).Debug("no config file, using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or the default location when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	for _, ch := range c.DrumChannels {
		if ch < 0 || ch > 15 {
			return fmt.Errorf("drum channel %d out of range 0-15", ch)
		}
	}
	if c.ChannelBase != 0 && c.ChannelBase != 1 {
		return fmt.Errorf("channel_base must be 0 or 1, got %d", c.ChannelBase)
	}
	if c.MaxFieldLen < 8 {
		return fmt.Errorf("max_field_len must be at least 8, got %d", c.MaxFieldLen)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Drums returns the configured drum channels as a set
func (c *Config) Drums() viewer.ChannelSet {
	chs := make([]uint8, 0, len(c.DrumChannels))
	for _, ch := range c.DrumChannels {
		if ch >= 0 && ch <= 15 {
			chs = append(chs, uint8(ch))
		}
	}
	return viewer.NewChannelSet(chs...)
}

// SetDrums replaces the drum channels with the members of s
func (c *Config) SetDrums(s viewer.ChannelSet) {
	c.DrumChannels = c.DrumChannels[:0]
	for _, ch := range s.Channels() {
		c.DrumChannels = append(c.DrumChannels, int(ch))
	}
}

// FormatterOptions returns the display settings as formatter options
func (c *Config) FormatterOptions() []viewer.Option {
	return []viewer.Option{
		viewer.WithChannelBase(c.ChannelBase),
		viewer.WithNoteNames(c.NoteNames),
		viewer.WithMaxLen(c.MaxFieldLen),
	}
}

// Formatter builds a viewer.Formatter from the display settings
func (c *Config) Formatter() *viewer.Formatter {
	return viewer.NewFormatter(c.FormatterOptions()...)
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
