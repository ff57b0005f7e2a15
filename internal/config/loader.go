package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Load resolves the effective configuration: defaults, then the config file
// via Viper, then LEXIO_* environment variables on top.
func Load() (Config, error) {
	cfg := LoadFromViper()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromViper loads configuration from Viper on top of the defaults.
// Values never set in the config file keep their defaults.
func LoadFromViper() Config {
	cfg := DefaultConfig()

	// Playback settings
	if viper.IsSet("volume") {
		cfg.Volume = viper.GetFloat64("volume")
	}
	if viper.IsSet("rate") {
		cfg.Rate = viper.GetFloat64("rate")
	}
	if viper.IsSet("loop") {
		cfg.Loop = viper.GetBool("loop")
	}
	if viper.IsSet("auto_play") {
		cfg.AutoPlay = viper.GetBool("auto_play")
	}

	// Audio settings
	if viper.IsSet("sample_rate") {
		cfg.SampleRate = viper.GetInt("sample_rate")
	}

	// Estimator settings
	if viper.IsSet("estimator.words_per_minute") {
		cfg.Estimator.WordsPerMinute = viper.GetInt("estimator.words_per_minute")
	}

	// Cache settings
	if viper.IsSet("cache.max_bytes") {
		cfg.Cache.MaxBytes = viper.GetInt64("cache.max_bytes")
	}

	// Visual settings
	if viper.IsSet("ui.highlight_color") {
		cfg.UI.HighlightColor = viper.GetString("ui.highlight_color")
	}
	if viper.IsSet("ui.show_status") {
		cfg.UI.ShowStatus = viper.GetBool("ui.show_status")
	}

	return cfg
}

// SetDefaults sets default values in Viper so `lexio config` and generated
// files show the full surface.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("volume", defaults.Volume)
	viper.SetDefault("rate", defaults.Rate)
	viper.SetDefault("loop", defaults.Loop)
	viper.SetDefault("auto_play", defaults.AutoPlay)
	viper.SetDefault("sample_rate", defaults.SampleRate)

	viper.SetDefault("estimator.words_per_minute", defaults.Estimator.WordsPerMinute)
	viper.SetDefault("cache.max_bytes", defaults.Cache.MaxBytes)

	viper.SetDefault("ui.highlight_color", defaults.UI.HighlightColor)
	viper.SetDefault("ui.show_status", defaults.UI.ShowStatus)
}
