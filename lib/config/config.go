// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for salvor.
type Config struct {
	// Zip configures archive checksum recovery.
	Zip ZipConfig `yaml:"zip"`

	// Png configures PNG header repair.
	Png PngConfig `yaml:"png"`

	// Report configures report rendering.
	Report ReportConfig `yaml:"report"`
}

// ZipConfig configures archive checksum recovery.
type ZipConfig struct {
	// Preset is the alphabet preset used when no explicit alphabet
	// is given. Default: classic.
	Preset string `yaml:"preset"`

	// WordlistDir resolves bare wordlist names. A --wordlist value
	// without a path separator is looked up here first.
	WordlistDir string `yaml:"wordlist_dir"`
}

// PngConfig configures PNG header repair.
type PngConfig struct {
	// MaxAttempts caps each dimension hypothesis during the repair
	// race. Zero means unbounded, which can run forever when neither
	// hypothesis holds.
	MaxAttempts uint64 `yaml:"max_attempts"`
}

// ReportConfig configures report rendering.
type ReportConfig struct {
	// Color controls styled output: auto, always, or never.
	// Default: auto (styled only on a terminal).
	Color string `yaml:"color"`
}

// Default returns the built-in defaults. Commands run with these when
// no config file is named.
func Default() *Config {
	return &Config{
		Zip: ZipConfig{
			Preset:      "classic",
			WordlistDir: "",
		},
		Png: PngConfig{
			MaxAttempts: 0,
		},
		Report: ReportConfig{
			Color: "auto",
		},
	}
}

// Load loads configuration from the file named by SALVOR_CONFIG. When
// the variable is unset the defaults are returned; a set but unreadable
// or invalid file is an error, never silently ignored.
func Load() (*Config, error) {
	path := os.Getenv("SALVOR_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The file is
// merged over the defaults, ${VAR} and ${VAR:-default} patterns in
// string values are expanded, and the result is validated.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// string fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Zip.Preset = expandVars(c.Zip.Preset, vars)
	c.Zip.WordlistDir = expandVars(c.Zip.WordlistDir, vars)
	c.Report.Color = expandVars(c.Report.Color, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Zip.Preset == "" {
		errs = append(errs, fmt.Errorf("zip.preset is required"))
	}

	colorValues := []string{"auto", "always", "never"}
	if !slices.Contains(colorValues, c.Report.Color) {
		errs = append(errs, fmt.Errorf("report.color must be one of: %v", colorValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// WordlistPath resolves a wordlist reference. A bare name resolves
// against Zip.WordlistDir when that directory holds it; anything with
// a path separator, or absent from the directory, is used as given.
func (c *Config) WordlistPath(name string) string {
	if c.Zip.WordlistDir == "" || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	candidate := filepath.Join(c.Zip.WordlistDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}
