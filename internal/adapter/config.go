// Package adapter holds configuration, logging and the external player launcher.
package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Player  PlayerConfig  `mapstructure:"player"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds metadata provider settings
type APIConfig struct {
	Key               string        `mapstructure:"key"`
	BaseURL           string        `mapstructure:"base_url"`
	SuggestURL        string        `mapstructure:"suggest_url"`
	RegionCode        string        `mapstructure:"region_code"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// PlayerConfig holds external player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // Empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty disables persistence
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`        // dark or light, used until the user toggles
	DefaultView string `mapstructure:"default_view"` // home or trending
	ShowSidebar bool   `mapstructure:"show_sidebar"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://www.googleapis.com/youtube/v3",
			SuggestURL:        "https://suggestqueries.google.com/complete/search",
			RegionCode:        "US",
			RequestsPerSecond: 5,
			Timeout:           10 * time.Second,
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
		},
		Storage: StorageConfig{
			Path: filepath.Join(dataDir(), "tubes.db"),
		},
		UI: UIConfig{
			Theme:       "dark",
			DefaultView: "home",
			ShowSidebar: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dataDir(), "tubes.log"),
			Level: "INFO",
		},
	}
}

// dataDir returns the per-user data directory for the current OS
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tubes")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tubes")
	}
}

// ConfigDir returns the default config directory for the current OS
func ConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tubes")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tubes")
	}
}

// LoadConfig loads configuration from .env, the config file and TUBES_* variables
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigDir(), ".")
}

// LoadConfigFrom reads config.yaml from the first of dirs that has one.
// A missing file is not an error; defaults apply.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// newViper returns a viper instance seeded with defaults and env bindings
func newViper() *viper.Viper {
	v := viper.New()
	setAll(v, DefaultConfig(), v.SetDefault)

	v.SetEnvPrefix("TUBES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api.key", "TUBES_API_KEY", "YOUTUBE_API_KEY")

	return v
}

// setAll writes every field of cfg under its snake_case key
func setAll(v *viper.Viper, cfg *Config, set func(string, any)) {
	set("api.key", cfg.API.Key)
	set("api.base_url", cfg.API.BaseURL)
	set("api.suggest_url", cfg.API.SuggestURL)
	set("api.region_code", cfg.API.RegionCode)
	set("api.requests_per_second", cfg.API.RequestsPerSecond)
	set("api.timeout", cfg.API.Timeout.String())

	set("player.command", cfg.Player.Command)
	set("player.args", cfg.Player.Args)

	set("storage.path", cfg.Storage.Path)

	set("ui.theme", cfg.UI.Theme)
	set("ui.default_view", cfg.UI.DefaultView)
	set("ui.show_sidebar", cfg.UI.ShowSidebar)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveTo(ConfigDir(), cfg)
}

// SaveTo writes cfg as config.yaml in dir
func SaveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(v, cfg, v.Set)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.API.Key) != ""
}
