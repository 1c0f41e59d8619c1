// Package config holds the run parameters for the measurement harness.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config parameterizes a harness run. Zero or missing fields fall back to
// the defaults, so a config file only needs the fields it overrides.
type Config struct {
	// Iterations is the number of trials per dimension. The statistical
	// analysis assumes >= 30 for its normal-approximation confidence
	// intervals; smaller runs are analyzed but flagged.
	Iterations int `yaml:"iterations"`

	// SettleMS is the quiescence delay between iterations, reducing
	// correlation between consecutive trials caused by the previous
	// iteration's cleanup.
	SettleMS int `yaml:"settle_ms"`

	// Images are the container images exercised by the startup and pull
	// dimensions.
	Images []string `yaml:"images"`

	// WriteMB is the payload size for the sequential-write and copy-up
	// dimensions.
	WriteMB int `yaml:"write_mb"`

	// MetadataFiles is the file count for the metadata-operations dimension.
	MetadataFiles int `yaml:"metadata_files"`

	// CPUTargetPct is the CPU share handed to the throttled workload,
	// as a percentage of one core.
	CPUTargetPct float64 `yaml:"cpu_target_pct"`

	// CPUWindowSec is the utilization sampling window for the throttling
	// dimension, after a warmup of the same length.
	CPUWindowSec int `yaml:"cpu_window_sec"`
}

// Default returns the parameters used when no config file is given.
func Default() *Config {
	return &Config{
		Iterations:    50,
		SettleMS:      2000,
		Images:        []string{"alpine", "nginx:alpine"},
		WriteMB:       100,
		MetadataFiles: 500,
		CPUTargetPct:  50,
		CPUWindowSec:  3,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate rejects parameter combinations the harness cannot run with.
func (c *Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", c.Iterations)
	}
	if c.SettleMS < 0 {
		return fmt.Errorf("settle_ms must be >= 0, got %d", c.SettleMS)
	}
	if len(c.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	if c.WriteMB < 1 {
		return fmt.Errorf("write_mb must be >= 1, got %d", c.WriteMB)
	}
	if c.MetadataFiles < 1 {
		return fmt.Errorf("metadata_files must be >= 1, got %d", c.MetadataFiles)
	}
	if c.CPUTargetPct <= 0 || c.CPUTargetPct > 100 {
		return fmt.Errorf("cpu_target_pct must be in (0, 100], got %g", c.CPUTargetPct)
	}
	if c.CPUWindowSec < 1 {
		return fmt.Errorf("cpu_window_sec must be >= 1, got %d", c.CPUWindowSec)
	}
	return nil
}

// Settle returns the inter-iteration quiescence delay.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// CPUWindow returns the throttling sampling window.
func (c *Config) CPUWindow() time.Duration {
	return time.Duration(c.CPUWindowSec) * time.Second
}
