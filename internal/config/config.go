// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package config provides layered configuration for Pitchside using
// koanf. Precedence: environment variables > YAML config file >
// built-in defaults.
package config

import (
	"fmt"

	"github.com/jmaglio/pitchside/internal/models"
	"github.com/jmaglio/pitchside/internal/validation"
)

// ConfigPathEnvVar names the environment variable that overrides the
// config file search path.
const ConfigPathEnvVar = "PITCHSIDE_CONFIG"

// DefaultConfigPaths are searched in order when ConfigPathEnvVar is unset.
var DefaultConfigPaths = []string{
	"pitchside.yaml",
	"config/pitchside.yaml",
	"/etc/pitchside/pitchside.yaml",
}

// Config is the root configuration structure.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Import  ImportConfig  `koanf:"import"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is json or console.
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// Caller includes caller file and line in log output.
	Caller bool `koanf:"caller"`
}

// ImportConfig configures the GPS export ingestion pipeline.
type ImportConfig struct {
	// Strict aborts a parse on the first row error instead of
	// collecting row errors and continuing.
	Strict bool `koanf:"strict"`

	// CoreSummableMetrics lists the metrics whose collective absence
	// (all zero or missing) causes a normalized row to be discarded.
	CoreSummableMetrics []string `koanf:"core_summable_metrics" validate:"min=1,dive,metricname"`

	// ProfilesPath optionally points to a JSON file of extra
	// manufacturer profiles loaded alongside the built-ins.
	ProfilesPath string `koanf:"profiles_path"`

	// MaxFileSizeBytes rejects uploads larger than this before parsing.
	MaxFileSizeBytes int64 `koanf:"max_file_size_bytes" validate:"gt=0"`
}

// defaultConfig returns the built-in defaults, the lowest layer of the
// configuration stack.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Import: ImportConfig{
			Strict: false,
			CoreSummableMetrics: []string{
				models.MetricTotalDistance,
				models.MetricHighIntensityDistance,
				models.MetricNumberOfSprints,
			},
			ProfilesPath:     "",
			MaxFileSizeBytes: 16 << 20, // 16 MiB
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
