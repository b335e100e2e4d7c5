// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildRegistersFourDomainTools(t *testing.T) {
	reg := Build(backend.Unconnected(), &config.Config{}, testLogger())

	var names []string
	for _, tool := range reg.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{
		"oci_compute",
		"oci_database",
		"oci_monitoring_security",
		"oci_storage_network",
	}, names)

	for _, tool := range reg.List() {
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.Parameters())
	}
}

func TestBuildConsolidatedMode(t *testing.T) {
	reg := Build(backend.Unconnected(), &config.Config{Consolidated: true}, testLogger())

	registered := reg.List()
	require.Len(t, registered, 1)
	assert.Equal(t, ConsolidatedToolName, registered[0].Name())
}

func TestConsolidatedToolRequiresDomain(t *testing.T) {
	tool := NewConsolidatedTool(backend.Unconnected(), &config.Config{}, testLogger())

	_, err := tool.Execute(context.Background(), map[string]any{
		"action":       "list",
		"resourceType": "instances",
	})
	var invalid *tools.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Error(), "domain is required")
}

func TestConsolidatedToolRejectsUnknownDomain(t *testing.T) {
	tool := NewConsolidatedTool(backend.Unconnected(), &config.Config{}, testLogger())

	_, err := tool.Execute(context.Background(), map[string]any{
		"domain": "quantum",
		"action": "list",
	})
	var invalid *tools.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Error(), `"quantum"`)
}

// The discriminator is stripped before delegation, so the domain schema
// validation runs on the remaining fields only. With no credentials
// configured the call lands on the guidance envelope, proving the full
// pipeline was reached.
func TestConsolidatedToolDelegates(t *testing.T) {
	tool := NewConsolidatedTool(backend.Unconnected(), &config.Config{}, testLogger())

	res, err := tool.Execute(context.Background(), map[string]any{
		"domain":       DomainCompute,
		"action":       "list",
		"resourceType": "instances",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, res.Text, "missingConfig")
}

func TestConsolidatedParametersCoverAllDomains(t *testing.T) {
	tool := NewConsolidatedTool(backend.Unconnected(), &config.Config{}, testLogger())

	params := tool.Parameters()
	branches, ok := params["oneOf"].([]any)
	require.True(t, ok)
	assert.Len(t, branches, 4)
}
