// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProvider, cfg.Provider)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tenancy: ocid1.tenancy.oc1..file
user: ocid1.user.oc1..file
fingerprint: "aa:bb:cc"
key_file: /home/dev/.oci/key.pem
region: eu-frankfurt-1
compartment: ocid1.compartment.oc1..file
consolidated: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ocid1.tenancy.oc1..file", cfg.TenancyOCID)
	assert.Equal(t, "eu-frankfurt-1", cfg.Region)
	assert.Equal(t, "ocid1.compartment.oc1..file", cfg.CompartmentID)
	assert.True(t, cfg.Consolidated)
	assert.True(t, cfg.Ready())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: eu-frankfurt-1\n"), 0o600))

	t.Setenv("OCI_REGION", "us-phoenix-1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "us-phoenix-1", cfg.Region)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tenancy: [unclosed\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestMissingFieldsNamesEnvVars(t *testing.T) {
	cfg := &Config{
		TenancyOCID: "ocid1.tenancy.oc1..x",
		Region:      "us-ashburn-1",
	}
	assert.Equal(t,
		[]string{"OCI_USER_OCID", "OCI_KEY_FINGERPRINT", "OCI_PRIVATE_KEY_PATH"},
		cfg.MissingFields())
	assert.False(t, cfg.Ready())
}

func TestCompartmentIsOptional(t *testing.T) {
	cfg := &Config{
		TenancyOCID:    "t",
		UserOCID:       "u",
		KeyFingerprint: "f",
		PrivateKeyPath: "k",
		Region:         "r",
	}
	assert.Empty(t, cfg.MissingFields())
	assert.True(t, cfg.Ready())
}
