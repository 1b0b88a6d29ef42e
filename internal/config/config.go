package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// DefaultSplitThreshold is used when neither config nor environment set one.
const DefaultSplitThreshold = 5

// Environment variables that override config.json.
const (
	EnvDBPath         = "PKGCONFLICT_DB"
	EnvActor          = "PKGCONFLICT_ACTOR"
	EnvSplitThreshold = "PKGCONFLICT_SPLIT"
	EnvDebug          = "PKGCONFLICT_DEBUG"
)

// Config represents the flat pkgconflict configuration
type Config struct {
	Version        string `json:"version"`
	SplitThreshold int    `json:"split_threshold,omitempty"`
	DBPath         string `json:"db_path,omitempty"` // Empty means ~/.pkgconflict/pkgconflict.db
	Actor          string `json:"actor,omitempty"`   // Recorded in the resolution log
	NoColor        bool   `json:"no_color,omitempty"`
	Debug          bool   `json:"-"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:        CurrentVersion,
		SplitThreshold: DefaultSplitThreshold,
	}
}

// LoadConfig reads .pkgconflict/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".pkgconflict", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration for dir: defaults, then
// .pkgconflict/config.json if present, then a .env file in dir, then the
// process environment.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	// godotenv never overrides variables that are already set.
	envFile := filepath.Join(dir, ".env")
	if _, statErr := os.Stat(envFile); statErr == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvActor); v != "" {
		cfg.Actor = v
	}
	if v := os.Getenv(EnvSplitThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSplitThreshold, v, err)
		}
		cfg.SplitThreshold = n
	}
	if v := os.Getenv(EnvDebug); v != "" {
		cfg.Debug = v == "1" || v == "true"
	}
	return nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".pkgconflict")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .pkgconflict dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// HomeDir returns ~/.pkgconflict, where the default database and logs live.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pkgconflict"), nil
}
