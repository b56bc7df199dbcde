// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is used when no base URL is configured anywhere. The
// "/api" segment is part of the base; endpoint paths hang off it.
const DefaultAPIBase = "http://localhost:5000/api"

// CLIConfig is the on-disk configuration at ~/.gaia/config.yaml.
// Every field is optional; flags and environment variables override it.
//
// Precedence, highest first: flags, environment, file, defaults.
// Environment variables: GAIA_API_BASE, GAIA_API_KEY, GAIA_MODEL.
type CLIConfig struct {
	APIBase        string `yaml:"api_base,omitempty"`
	APIKey         string `yaml:"api_key,omitempty"`
	Model          string `yaml:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// defaultConfigPath returns ~/.gaia/config.yaml, or "" when the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gaia", "config.yaml")
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// loadCLIConfig reads the config file at path and applies environment
// overrides. A missing file is not an error; a malformed one is.
func loadCLIConfig(path string) (CLIConfig, error) {
	var config CLIConfig

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		if err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				return CLIConfig{}, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return CLIConfig{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if v := os.Getenv("GAIA_API_BASE"); v != "" {
		config.APIBase = v
	}
	if v := os.Getenv("GAIA_API_KEY"); v != "" {
		config.APIKey = v
	}
	if v := os.Getenv("GAIA_MODEL"); v != "" {
		config.Model = v
	}

	if config.APIBase == "" {
		config.APIBase = DefaultAPIBase
	}
	return config, nil
}
