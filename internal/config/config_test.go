package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
pipeline:
  input:
    path: "data/raw/schools.jsonl"
  demographics:
    path: "data/demographics/california_city.csv"
  output:
    dir: "data/out"
    format: "csv"
    write_manifest: true
  scoring:
    enrollment_weight: 0.5
    demographic_weight: 0.5
    sort_by_score: true
  logging:
    level: "info"
features:
  sample_mode: false
  sample_size: 10
advanced:
  workers: 1
`

func TestLoadConfig_Valid(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Pipeline.Input.Path != "data/raw/schools.jsonl" {
		t.Errorf("Input.Path = %s", cfg.Pipeline.Input.Path)
	}

	if cfg.Pipeline.Scoring.EnrollmentWeight != 0.5 {
		t.Errorf("EnrollmentWeight = %f, want 0.5", cfg.Pipeline.Scoring.EnrollmentWeight)
	}
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	// A minimal file inherits defaults for everything it omits.
	path := createTempConfigFile(t, `
pipeline:
  input:
    path: "in.jsonl"
  demographics:
    path: "cities.csv"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Pipeline.Output.Format != "csv" {
		t.Errorf("default Format = %s, want csv", cfg.Pipeline.Output.Format)
	}

	if cfg.Features.SampleSize != 10 {
		t.Errorf("default SampleSize = %d, want 10", cfg.Features.SampleSize)
	}

	if cfg.Advanced.Workers != 1 {
		t.Errorf("default Workers = %d, want 1", cfg.Advanced.Workers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing input path",
			mutate:  func(c *Config) { c.Pipeline.Input.Path = "" },
			wantErr: ErrMissingInputPath,
		},
		{
			name:    "missing demographics path",
			mutate:  func(c *Config) { c.Pipeline.Demographics.Path = "" },
			wantErr: ErrMissingDemographicsPath,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Pipeline.Output.Dir = "" },
			wantErr: ErrMissingOutputDir,
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Pipeline.Output.Format = "xlsx" },
			wantErr: ErrInvalidOutputFormat,
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.Pipeline.Scoring.EnrollmentWeight = -0.1 },
			wantErr: ErrNegativeWeight,
		},
		{
			name: "zero weights",
			mutate: func(c *Config) {
				c.Pipeline.Scoring.EnrollmentWeight = 0
				c.Pipeline.Scoring.DemographicWeight = 0
			},
			wantErr: ErrZeroWeights,
		},
		{
			name:    "bad sample size",
			mutate:  func(c *Config) { c.Features.SampleSize = 0 },
			wantErr: ErrInvalidSampleSize,
		},
		{
			name:    "bad workers",
			mutate:  func(c *Config) { c.Advanced.Workers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Pipeline.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Pipeline.Input.Path = "in.jsonl"
			cfg.Pipeline.Demographics.Path = "cities.csv"
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SampleLimit(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.SampleLimit(); got != 0 {
		t.Errorf("SampleLimit with sample mode off = %d, want 0", got)
	}

	cfg.Features.SampleMode = true

	if got := cfg.SampleLimit(); got != 10 {
		t.Errorf("SampleLimit = %d, want 10", got)
	}
}
