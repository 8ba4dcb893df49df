// Package config loads engine configuration from environment variables.
package config

import (
	"os"
	"strconv"

	"par2/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine EngineConfig
	Data   DataConfig
}

// EngineConfig holds the statistical engine parameters
type EngineConfig struct {
	Alpha          float64
	Permutations   int
	BootstrapDraws int
	Seed           int64
	Workers        int
	ClampModuli    bool
	ClampLo        float64
	ClampHi        float64
}

// DataConfig holds synthetic dataset generation settings for the CLI
type DataConfig struct {
	Genes        int
	Timepoints   int
	SamplingHrs  float64
	CoupledShare float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Engine: EngineConfig{
			Alpha:          getEnvFloatOrDefault("PAR2_ALPHA", 0.05),
			Permutations:   getEnvIntOrDefault("PAR2_PERMUTATIONS", 10000),
			BootstrapDraws: getEnvIntOrDefault("PAR2_BOOTSTRAP_DRAWS", 5000),
			Seed:           int64(getEnvIntOrDefault("PAR2_SEED", 42)),
			Workers:        getEnvIntOrDefault("PAR2_WORKERS", 4),
			ClampModuli:    getEnvBoolOrDefault("PAR2_CLAMP_MODULI", true),
			ClampLo:        getEnvFloatOrDefault("PAR2_CLAMP_LO", 0.10),
			ClampHi:        getEnvFloatOrDefault("PAR2_CLAMP_HI", 0.99),
		},
		Data: DataConfig{
			Genes:        getEnvIntOrDefault("PAR2_GENES", 200),
			Timepoints:   getEnvIntOrDefault("PAR2_TIMEPOINTS", 24),
			SamplingHrs:  getEnvFloatOrDefault("PAR2_SAMPLING_HRS", 2),
			CoupledShare: getEnvFloatOrDefault("PAR2_COUPLED_SHARE", 0.2),
		},
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Engine.Alpha <= 0 || cfg.Engine.Alpha >= 1 {
		return errors.ConfigInvalid("PAR2_ALPHA must be in (0, 1)")
	}
	if cfg.Engine.ClampLo >= cfg.Engine.ClampHi {
		return errors.ConfigInvalid("PAR2_CLAMP_LO must be below PAR2_CLAMP_HI")
	}
	if cfg.Data.Genes <= 0 || cfg.Data.Timepoints <= 0 {
		return errors.ConfigInvalid("PAR2_GENES and PAR2_TIMEPOINTS must be positive")
	}
	if cfg.Data.CoupledShare < 0 || cfg.Data.CoupledShare > 1 {
		return errors.ConfigInvalid("PAR2_COUPLED_SHARE must be in [0, 1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
