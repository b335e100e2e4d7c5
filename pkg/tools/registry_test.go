// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTool struct {
	name string
}

func (s *staticTool) Name() string                { return s.name }
func (s *staticTool) Description() string         { return "static" }
func (s *staticTool) Parameters() map[string]any  { return map[string]any{"type": "object"} }
func (s *staticTool) Execute(_ context.Context, _ map[string]any) (*ToolResult, error) {
	return NewToolResult("ok"), nil
}

func TestRegistryListIsSortedByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&staticTool{name: "oci_storage_network"})
	reg.Register(&staticTool{name: "oci_compute"})
	reg.Register(&staticTool{name: "oci_database"})

	var names []string
	for _, tool := range reg.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"oci_compute", "oci_database", "oci_storage_network"}, names)
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&staticTool{name: "oci_compute"})

	tool, ok := reg.Get("oci_compute")
	require.True(t, ok)
	assert.Equal(t, "oci_compute", tool.Name())

	_, ok = reg.Get("oci_missing")
	assert.False(t, ok)
}

func TestRegistryExecuteUnknownToolWrapsSentinel(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Execute(context.Background(), "oci_missing", nil)
	require.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "oci_missing")
}

func TestInvalidParamsErrorMessage(t *testing.T) {
	err := InvalidParams("/limit: must be <= 100", "/resourceType: value must be one of ...")
	assert.Equal(t, "invalid arguments: /limit: must be <= 100; /resourceType: value must be one of ...", err.Error())

	assert.Equal(t, "invalid arguments", (&InvalidParamsError{}).Error())
}

func TestUnsupportedOperationErrorMessage(t *testing.T) {
	err := &UnsupportedOperationError{Value: "list warp-drives"}
	assert.Equal(t, "unsupported operation: list warp-drives", err.Error())
}
