package config

import "github.com/spf13/viper"

// WatchConfig holds configuration for the catalog directory watcher and its
// reload notification endpoint.
type WatchConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Config holds all runtime configuration for celestia catalog tooling.
// Values are populated from .celestia.yaml, CELESTIA_* env vars, and CLI
// flags.
type Config struct {
	DataDir       string      `mapstructure:"data_dir"`
	Manifest      string      `mapstructure:"manifest"`
	IndexPath     string      `mapstructure:"index_path"`
	TelemetryPath string      `mapstructure:"telemetry_path"`
	MaxFrameDepth int         `mapstructure:"max_frame_depth"`
	DefaultAlbedo float64     `mapstructure:"default_albedo"`
	Color         bool        `mapstructure:"color"`
	Verbose       bool        `mapstructure:"verbose"`
	Watch         WatchConfig `mapstructure:"watch"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("manifest", "celestia.toml")
	viper.SetDefault("index_path", "celestia.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("max_frame_depth", 50)
	viper.SetDefault("default_albedo", 0.5)
	viper.SetDefault("color", true)
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch.enabled", false)
	viper.SetDefault("watch.addr", "127.0.0.1:8165")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
