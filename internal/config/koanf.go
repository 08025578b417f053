// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load builds the configuration from three layers:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (PITCHSIDE_CONFIG or default paths)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; split the known slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or empty
// string when none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when they arrive as strings.
var sliceConfigPaths = []string{
	"import.core_summable_metrics",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config
// paths. Variables not listed here are ignored.
var envMappings = map[string]string{
	"pitchside_log_level":  "logging.level",
	"pitchside_log_format": "logging.format",
	"pitchside_log_caller": "logging.caller",

	"pitchside_import_strict":                "import.strict",
	"pitchside_import_core_summable_metrics": "import.core_summable_metrics",
	"pitchside_import_profiles_path":         "import.profiles_path",
	"pitchside_import_max_file_size_bytes":   "import.max_file_size_bytes",
}

// envTransformFunc maps an environment variable name to its koanf
// config path. Unrecognized variables return empty string and are
// skipped by the provider.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
