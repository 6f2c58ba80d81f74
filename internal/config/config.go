package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the owner-local configuration. The owner id is an opaque
// reference handed to the engine; no authentication happens here.
type Config struct {
	OwnerID      string `mapstructure:"owner_id" yaml:"owner_id"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
}

// DefaultConfig returns the configuration used before any file is loaded.
func DefaultConfig() *Config {
	return &Config{OwnerID: "local"}
}

// Load reads ~/.studyflow/config.yaml, falling back to defaults when the file
// does not exist. GEMINI_API_KEY in the environment overrides the file value.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := Path()
	if path != "" {
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiAPIKey = key
	}
	if cfg.OwnerID == "" {
		cfg.OwnerID = "local"
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Path returns the config file location, or "" when no home dir is available.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".studyflow", "config.yaml")
}

// Write saves the config, creating the directory as needed. Used by the init
// command to lay down a skeleton.
func Write(cfg *Config, path string) error {
	if path == "" {
		return fmt.Errorf("no config path available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
