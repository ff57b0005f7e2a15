// Package config holds the lexio configuration surface: a single struct
// loadable from the YAML config file, overridable with LEXIO_* environment
// variables.
package config

import (
	"fmt"
	"strings"
)

// Config contains all lexio configuration options.
type Config struct {
	// Playback settings
	Volume   float64 `yaml:"volume" env:"LEXIO_VOLUME"`
	Rate     float64 `yaml:"rate" env:"LEXIO_RATE"`
	Loop     bool    `yaml:"loop" env:"LEXIO_LOOP"`
	AutoPlay bool    `yaml:"auto_play" env:"LEXIO_AUTO_PLAY"`

	// Audio settings
	SampleRate int `yaml:"sample_rate" env:"LEXIO_SAMPLE_RATE"`

	Estimator EstimatorConfig `yaml:"estimator"`
	Cache     CacheConfig     `yaml:"cache"`
	UI        UIConfig        `yaml:"ui"`
}

// EstimatorConfig tunes the fallback timing estimator used when no vendor
// alignment is available.
type EstimatorConfig struct {
	WordsPerMinute int `yaml:"words_per_minute" env:"LEXIO_ESTIMATOR_WORDS_PER_MINUTE"`
}

// CacheConfig sizes the in-memory track cache.
type CacheConfig struct {
	MaxBytes int64 `yaml:"max_bytes" env:"LEXIO_CACHE_MAX_BYTES"`
}

// UIConfig contains visual settings for the player view.
type UIConfig struct {
	HighlightColor string `yaml:"highlight_color" env:"LEXIO_UI_HIGHLIGHT_COLOR"`
	ShowStatus     bool   `yaml:"show_status" env:"LEXIO_UI_SHOW_STATUS"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Volume:     1.0,
		Rate:       1.0,
		Loop:       false,
		AutoPlay:   true,
		SampleRate: 44100,

		Estimator: EstimatorConfig{
			WordsPerMinute: 150,
		},
		Cache: CacheConfig{
			MaxBytes: 32 << 20,
		},
		UI: UIConfig{
			HighlightColor: "yellow",
			ShowStatus:     true,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Volume < 0.0 || c.Volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %f", c.Volume)
	}

	if c.Rate < 0.5 || c.Rate > 2.0 {
		return fmt.Errorf("rate must be between 0.5 and 2.0, got %f", c.Rate)
	}

	// The device player only opens 44.1/48kHz contexts.
	if c.SampleRate != 44100 && c.SampleRate != 48000 {
		return fmt.Errorf("invalid sample rate %d: must be 44100 or 48000", c.SampleRate)
	}

	if c.Estimator.WordsPerMinute < 50 || c.Estimator.WordsPerMinute > 500 {
		return fmt.Errorf("words_per_minute must be between 50 and 500, got %d", c.Estimator.WordsPerMinute)
	}

	if c.Cache.MaxBytes < 0 {
		return fmt.Errorf("cache max_bytes cannot be negative, got %d", c.Cache.MaxBytes)
	}

	validColors := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white", "none"}
	colorValid := false
	for _, color := range validColors {
		if strings.EqualFold(c.UI.HighlightColor, color) {
			colorValid = true
			c.UI.HighlightColor = strings.ToLower(c.UI.HighlightColor)
			break
		}
	}
	if !colorValid {
		return fmt.Errorf("invalid highlight color '%s': must be one of %v", c.UI.HighlightColor, validColors)
	}

	return nil
}
