package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// CanvasConfig holds settings for the upstream Canvas instance.
type CanvasConfig struct {
	// BaseURL is the root URL of the Canvas instance. It must use the
	// https scheme and match AllowedHost.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// AllowedHost is the single hostname requests may be issued to.
	AllowedHost string `mapstructure:"allowed_host" yaml:"allowed_host"`

	// AnnouncementDays is how far back the announcement fetch reaches.
	AnnouncementDays int `mapstructure:"announcement_days" yaml:"announcement_days"`
}

// DatabaseConfig holds settings for the local preference database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	UpcomingTopN int    `mapstructure:"upcoming_top_n" yaml:"upcoming_top_n"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Canvas   CanvasConfig   `mapstructure:"canvas" yaml:"canvas"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/lasalleboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "lasalleboard", "config.yaml")
}

// DefaultDatabasePath returns the default location of the preference
// database, next to the config file.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "lasalleboard.db")
	}
	return filepath.Join(home, ".config", "lasalleboard", "lasalleboard.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Canvas: CanvasConfig{
			BaseURL:          "https://dlsu.instructure.com",
			AllowedHost:      "dlsu.instructure.com",
			AnnouncementDays: 14,
		},
		Database: DatabaseConfig{
			Path: DefaultDatabasePath(),
		},
		Display: DisplayConfig{
			Theme:        "default",
			UpcomingTopN: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("canvas.base_url", "https://dlsu.instructure.com")
	v.SetDefault("canvas.allowed_host", "dlsu.instructure.com")
	v.SetDefault("canvas.announcement_days", 14)
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.upcoming_top_n", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("canvas", cfg.Canvas)
	v.Set("database", cfg.Database)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
