// Package config loads client settings from YAML and server settings from
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/storage"
)

// Config represents the client configuration
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Storage        StorageConfig `yaml:"storage"`
	LogFile        string        `yaml:"log_file"`
}

// StorageConfig selects where the session identity is persisted
type StorageConfig struct {
	Driver string `yaml:"driver"` // file, sqlite or memory
	Path   string `yaml:"path"`
}

// DefaultConfig returns the default configuration rooted at dir
func DefaultConfig(dir string) *Config {
	return &Config{
		APIBaseURL:     api.DefaultBaseURL,
		RequestTimeout: api.DefaultTimeout,
		Storage: StorageConfig{
			Driver: storage.DriverFile,
			Path:   filepath.Join(dir, "state.json"),
		},
		LogFile: filepath.Join(dir, "adcraft.log"),
	}
}

// globalConfigDir returns the global config directory path (~/.adcraft)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".adcraft"), nil
}

// ProjectConfigPath returns the project-level config path (.adcraft/config.yaml in cwd)
func ProjectConfigPath() string {
	return filepath.Join(".adcraft", "config.yaml")
}

// Load reads the config. An explicit path wins; otherwise the project
// config is tried first, then the global one, then defaults.
// ADCRAFT_API_URL overrides the API URL from any source.
func Load(explicitPath string) (*Config, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig(dir)

	candidates := []string{explicitPath}
	if explicitPath == "" {
		candidates = []string{ProjectConfigPath(), filepath.Join(dir, "config.yaml")}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && explicitPath == "" {
				continue
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	if v := os.Getenv("ADCRAFT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for values the client cannot work with
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.Storage.Driver {
	case storage.DriverFile, storage.DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path must not be empty for driver %q", c.Storage.Driver)
		}
	case storage.DriverMemory:
	default:
		return fmt.Errorf("storage.driver must be file, sqlite or memory, got %q", c.Storage.Driver)
	}
	return nil
}

// Save writes the config as YAML to path
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
