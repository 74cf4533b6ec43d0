// Package daemon manages the Ahorify daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	User      UserConfig      `toml:"user"`
	API       APIConfig       `toml:"api"`
	Data      DataConfig      `toml:"data"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// UserConfig identifies the local profile.
type UserConfig struct {
	ID       string `toml:"id"`
	Currency string `toml:"currency"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DataConfig controls where the database lives.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		User: UserConfig{
			ID:       "default_user",
			Currency: "EUR",
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8421,
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			Dir: ahorifyHome(),
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.ahorify/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(ahorifyHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = ahorifyHome()
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.ahorify/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(ahorifyHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ahorifyHome returns the Ahorify data directory.
func ahorifyHome() string {
	if env := os.Getenv("AHORIFY_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ahorify")
}
