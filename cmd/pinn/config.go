package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// trainConfig is the YAML-configurable shape of a training run. Flags
// override individual fields after the file is loaded.
type trainConfig struct {
	// Problem selects a builtin equation: "cosine" or "decay".
	Problem string `yaml:"problem"`

	Steps   int     `yaml:"steps"`
	LR      float64 `yaml:"lr"`
	Lambda  float64 `yaml:"lambda"`
	Seed    int64   `yaml:"seed"`
	Hidden  []int   `yaml:"hidden"`
	Samples int     `yaml:"samples"`

	// Observations adds a sparse noisy data term sampled from the
	// reference trajectory. Zero disables the data loss.
	Observations int     `yaml:"observations"`
	Noise        float64 `yaml:"noise"`

	// LogEvery controls progress reporting cadence.
	LogEvery int `yaml:"log_every"`
}

func defaultConfig() trainConfig {
	return trainConfig{
		Problem:  "cosine",
		Steps:    5000,
		LR:       0.005,
		Lambda:   1.0,
		Seed:     1,
		Hidden:   []int{32, 32},
		Samples:  64,
		Noise:    0.02,
		LogEvery: 500,
	}
}

func loadConfig(path string) (trainConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
