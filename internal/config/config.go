// Package config handles objparse configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/objparse/pkg/models"
)

// Config holds all objparse settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParseConfig holds loader and post-processing settings.
type ParseConfig struct {
	ConvertToRHS     bool    `yaml:"convert_to_rhs"`
	MaxLineLength    int     `yaml:"max_line_length"`
	Dedupe           bool    `yaml:"dedupe"`
	DedupeEpsilon    float64 `yaml:"dedupe_epsilon"`
	SmoothNormals    bool    `yaml:"smooth_normals"`
	RemoveDegenerate bool    `yaml:"remove_degenerate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			MaxLineLength: models.DefaultMaxLineLength,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration with priority: defaults < file. An explicit
// path must exist; otherwise the standard locations are tried and a
// missing file is not an error. Flags are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if cfg.Parse.MaxLineLength <= 0 {
		cfg.Parse.MaxLineLength = models.DefaultMaxLineLength
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./objparse.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "objparse")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "objparse")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "objparse")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "objparse")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// OBJLoader returns a loader configured from c.
func (c *Config) OBJLoader() *models.OBJLoader {
	loader := models.NewOBJLoader()
	loader.ConvertToRHS = c.Parse.ConvertToRHS
	loader.MaxLineLength = c.Parse.MaxLineLength
	return loader
}

// MTLLoader returns a loader configured from c.
func (c *Config) MTLLoader() *models.MTLLoader {
	loader := models.NewMTLLoader()
	loader.MaxLineLength = c.Parse.MaxLineLength
	return loader
}
