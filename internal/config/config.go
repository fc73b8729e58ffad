// Package config provides configuration management for the lead pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputPath        = errors.New("pipeline.input.path is required")
	ErrMissingDemographicsPath = errors.New("pipeline.demographics.path is required")
	ErrMissingOutputDir        = errors.New("pipeline.output.dir is required")
	ErrInvalidOutputFormat     = errors.New("pipeline.output.format must be 'csv' or 'jsonl'")
	ErrNegativeWeight          = errors.New("scoring weights must be non-negative")
	ErrZeroWeights             = errors.New("scoring weights must not both be zero")
	ErrInvalidSampleSize       = errors.New("features.sample_size must be at least 1")
	ErrInvalidWorkers          = errors.New("advanced.workers must be at least 1")
	ErrInvalidLogLevel         = errors.New("pipeline.logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Features FeaturesConfig `yaml:"features"`
	Advanced AdvancedConfig `yaml:"advanced"`
}

// PipelineConfig contains the per-stage settings.
type PipelineConfig struct {
	Input        InputConfig        `yaml:"input"`
	Demographics DemographicsConfig `yaml:"demographics"`
	Output       OutputConfig       `yaml:"output"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// InputConfig locates the persisted raw record sequence.
type InputConfig struct {
	Path string `yaml:"path"`
}

// DemographicsConfig locates the city-level demographic dataset.
type DemographicsConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig defines where and how the categorized results are written.
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	Format        string `yaml:"format"`
	WriteManifest bool   `yaml:"write_manifest"`
}

// ScoringConfig holds the composite score policy. Weights live here so
// alternate policies are a config edit, not a code change.
type ScoringConfig struct {
	EnrollmentWeight  float64 `yaml:"enrollment_weight"`
	DemographicWeight float64 `yaml:"demographic_weight"`
	SortByScore       bool    `yaml:"sort_by_score"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeaturesConfig contains feature flags. Sample mode limits input volume
// only; no transformation logic changes with it.
type FeaturesConfig struct {
	SampleMode bool `yaml:"sample_mode"`
	SampleSize int  `yaml:"sample_size"`
}

// AdvancedConfig contains advanced settings.
type AdvancedConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the built-in defaults: equal weights, CSV output,
// sample size 10, sequential processing.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Output: OutputConfig{
				Dir:           "data/out",
				Format:        "csv",
				WriteManifest: true,
			},
			Scoring: ScoringConfig{
				EnrollmentWeight:  0.5,
				DemographicWeight: 0.5,
				SortByScore:       true,
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
		Features: FeaturesConfig{
			SampleSize: 10,
		},
		Advanced: AdvancedConfig{
			Workers: 1,
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Input.Path == "" {
		return ErrMissingInputPath
	}

	if c.Pipeline.Demographics.Path == "" {
		return ErrMissingDemographicsPath
	}

	if c.Pipeline.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Pipeline.Output.Format != "csv" && c.Pipeline.Output.Format != "jsonl" {
		return ErrInvalidOutputFormat
	}

	if c.Pipeline.Scoring.EnrollmentWeight < 0 || c.Pipeline.Scoring.DemographicWeight < 0 {
		return ErrNegativeWeight
	}

	if c.Pipeline.Scoring.EnrollmentWeight == 0 && c.Pipeline.Scoring.DemographicWeight == 0 {
		return ErrZeroWeights
	}

	if c.Features.SampleSize < 1 {
		return ErrInvalidSampleSize
	}

	if c.Advanced.Workers < 1 {
		return ErrInvalidWorkers
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// SampleLimit returns the input record cap, or 0 when sample mode is off.
func (c *Config) SampleLimit() int {
	if !c.Features.SampleMode {
		return 0
	}

	return c.Features.SampleSize
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Demographics: %s, Output: %s/%s, Weights: %.2f/%.2f}",
		c.Pipeline.Input.Path,
		c.Pipeline.Demographics.Path,
		c.Pipeline.Output.Dir,
		c.Pipeline.Output.Format,
		c.Pipeline.Scoring.EnrollmentWeight,
		c.Pipeline.Scoring.DemographicWeight,
	)
}
