// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package config resolves ocimcp's runtime configuration from an optional
// YAML file and the environment, environment winning. Five credential values
// are required before any provider call; their absence is detected per call
// and reported with remediation guidance instead of a hard failure.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultProvider is the connection provider used when none is configured.
const DefaultProvider = "oci"

// Config holds credentials and server options.
type Config struct {
	// Required credential values.
	TenancyOCID    string `env:"OCI_TENANCY_OCID" yaml:"tenancy"`
	UserOCID       string `env:"OCI_USER_OCID" yaml:"user"`
	KeyFingerprint string `env:"OCI_KEY_FINGERPRINT" yaml:"fingerprint"`
	PrivateKeyPath string `env:"OCI_PRIVATE_KEY_PATH" yaml:"key_file"`
	Region         string `env:"OCI_REGION" yaml:"region"`

	// CompartmentID is the default compartment for list/create calls that
	// omit one. Optional.
	CompartmentID string `env:"OCI_COMPARTMENT_OCID" yaml:"compartment"`

	// Provider names the registered backend connection factory.
	Provider string `env:"OCIMCP_PROVIDER" yaml:"provider"`

	// Consolidated switches the catalog to a single multiplexed tool
	// instead of one tool per service domain.
	Consolidated bool `env:"OCIMCP_CONSOLIDATED" yaml:"consolidated"`
}

// Load reads the optional YAML file at path (ignored when path is empty or
// the file does not exist), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file is fine; env may carry everything.
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	return cfg, nil
}

// requiredFields maps each required value to the environment variable that
// supplies it. The names double as remediation hints.
var requiredFields = []struct {
	envVar string
	get    func(*Config) string
}{
	{"OCI_TENANCY_OCID", func(c *Config) string { return c.TenancyOCID }},
	{"OCI_USER_OCID", func(c *Config) string { return c.UserOCID }},
	{"OCI_KEY_FINGERPRINT", func(c *Config) string { return c.KeyFingerprint }},
	{"OCI_PRIVATE_KEY_PATH", func(c *Config) string { return c.PrivateKeyPath }},
	{"OCI_REGION", func(c *Config) string { return c.Region }},
}

// MissingFields returns the environment variable names of required values
// that are absent, in declaration order. Empty means the config is complete.
func (c *Config) MissingFields() []string {
	var missing []string
	for _, f := range requiredFields {
		if f.get(c) == "" {
			missing = append(missing, f.envVar)
		}
	}
	return missing
}

// Ready reports whether all required credential values are present.
func (c *Config) Ready() bool {
	return len(c.MissingFields()) == 0
}
