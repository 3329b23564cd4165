package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for effdiff.
type Config struct {
	// Differ selects the re-diff backend ("godiff" or "gitcli").
	Differ string       `yaml:"differ"`
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig holds the detection thresholds. Zero values fall back to
// the engine defaults.
type EngineConfig struct {
	MinBlockSize         int `yaml:"min_block_size"`
	ContextLines         int `yaml:"context_lines"`
	MinSignificantLength int `yaml:"min_significant_length"`
	Parallelism          int `yaml:"parallelism"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Differ: "godiff"}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".effdiff.yaml",
		".effdiff.yml",
		"effdiff.yaml",
		"effdiff.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// validate checks threshold sanity.
func validate(cfg *Config) error {
	if cfg.Differ == "" {
		return errors.New("differ must not be empty")
	}
	if cfg.Engine.MinBlockSize < 0 {
		return errors.New("engine.min_block_size must not be negative")
	}
	if cfg.Engine.ContextLines < 0 {
		return errors.New("engine.context_lines must not be negative")
	}
	if cfg.Engine.MinSignificantLength < 0 {
		return errors.New("engine.min_significant_length must not be negative")
	}
	if cfg.Engine.Parallelism < 0 {
		return errors.New("engine.parallelism must not be negative")
	}
	return nil
}
