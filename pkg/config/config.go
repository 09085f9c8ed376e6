// Package config loads the fiberplant configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Session carries the field defaults applied to new splice records.
type Session struct {
	Technician        string `yaml:"technician"`
	DefaultSpliceType string `yaml:"defaultSpliceType"`
}

// Config is the top-level configuration.
type Config struct {
	// DataDir is where project snapshots are written.
	DataDir string `yaml:"dataDir"`

	// EnableCompression snappy-compresses snapshots on disk.
	EnableCompression bool `yaml:"enableCompression"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// ProjectName labels the snapshot; defaults to "default".
	ProjectName string `yaml:"projectName"`

	Session Session `yaml:"session"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:     "./data",
		LogLevel:    "info",
		ProjectName: "default",
		Session: Session{
			DefaultSpliceType: "fusion",
		},
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = "default"
	}
	if cfg.Session.DefaultSpliceType == "" {
		cfg.Session.DefaultSpliceType = "fusion"
	}

	return cfg, nil
}
