// Package config provides configuration loading and management for the
// searchlight pipeline. It handles loading configuration from YAML files
// and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the pipeline configuration loaded from YAML
type Config struct {
	// Searchlight parameters
	Searchlight struct {
		// Radius is the searchlight sphere radius in voxels
		Radius float64 `yaml:"radius"`

		// Threshold is the minimum fraction of a sphere that must lie
		// inside the brain mask for its center to be accepted (0.0-1.0)
		Threshold float64 `yaml:"threshold"`

		// ChunkThreshold is the number of centers above which RDM
		// computation is chunked to bound peak memory
		ChunkThreshold int `yaml:"chunkThreshold"`

		// ChunkCount is the number of chunks used when chunking
		ChunkCount int `yaml:"chunkCount"`

		// NumWorkers is the number of parallel jobs used for model
		// evaluation; 1 runs sequentially
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"searchlight"`

	// RDM computation parameters
	RDM struct {
		// Method is the dissimilarity method name, e.g. "correlation"
		Method string `yaml:"method"`
	} `yaml:"rdm"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default searchlight parameters
	cfg.Searchlight.Radius = 3.0
	cfg.Searchlight.Threshold = 1.0
	cfg.Searchlight.ChunkThreshold = 1000
	cfg.Searchlight.ChunkCount = 100
	cfg.Searchlight.NumWorkers = 1

	// Set default RDM parameters
	cfg.RDM.Method = "correlation"

	// Set default output parameters
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
