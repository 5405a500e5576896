package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid is returned by Load when a configured value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// MIDIConfig holds settings for Standard MIDI File export.
type MIDIConfig struct {
	Channel  int `mapstructure:"channel"`
	Velocity int `mapstructure:"velocity"`
	BPM      int `mapstructure:"bpm"`
}

// Config holds all runtime configuration for lazyscales.
// Values are populated from .lazyscales.yaml, LAZYSCALES_* env vars, and CLI flags.
type Config struct {
	Frets     int        `mapstructure:"frets"`
	Tuning    string     `mapstructure:"tuning"`
	Flat      bool       `mapstructure:"flat"`
	SeedPath  string     `mapstructure:"seed_path"`
	DBPath    string     `mapstructure:"db_path"`
	LogLevel  string     `mapstructure:"log_level"`
	LogFormat string     `mapstructure:"log_format"`
	MIDI      MIDIConfig `mapstructure:"midi"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("frets", 16)
	viper.SetDefault("tuning", "Standard guitar tuning")
	viper.SetDefault("flat", true)
	viper.SetDefault("seed_path", "")
	viper.SetDefault("db_path", "lazyscales.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("midi.channel", 0)
	viper.SetDefault("midi.velocity", 100)
	viper.SetDefault("midi.bpm", 120)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Frets < 0:
		return fmt.Errorf("%w: frets must not be negative, got %d", ErrInvalid, c.Frets)
	case c.MIDI.Channel < 0 || c.MIDI.Channel > 15:
		return fmt.Errorf("%w: midi.channel must be 0-15, got %d", ErrInvalid, c.MIDI.Channel)
	case c.MIDI.Velocity < 1 || c.MIDI.Velocity > 127:
		return fmt.Errorf("%w: midi.velocity must be 1-127, got %d", ErrInvalid, c.MIDI.Velocity)
	case c.MIDI.BPM <= 0:
		return fmt.Errorf("%w: midi.bpm must be positive, got %d", ErrInvalid, c.MIDI.BPM)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
