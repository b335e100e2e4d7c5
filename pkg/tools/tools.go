// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package tools defines the callable tool contract the MCP server exposes,
// the registry that holds the catalog, and the protocol-level error kinds.
//
// Two failure channels exist and must stay distinct: errors returned from
// Execute are protocol-level (the server turns them into JSON-RPC errors);
// a ToolResult with IsError set is a business-level failure travelling as a
// normal result payload.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Tool is one callable tool in the catalog.
type Tool interface {
	// Name is the tool's wire name, e.g. "oci_compute".
	Name() string

	// Description is the human-readable summary shown in tools/list.
	Description() string

	// Parameters returns the tool's input declaration as a JSON Schema
	// document.
	Parameters() map[string]any

	// Execute runs the tool. A returned error is a protocol-level failure;
	// business failures are reported inside the ToolResult.
	Execute(ctx context.Context, args map[string]any) (*ToolResult, error)
}

// ToolResult is a tool's outcome: one text payload (the serialized response
// envelope) plus the business-failure flag.
type ToolResult struct {
	Text    string
	IsError bool
}

// NewToolResult builds a successful result.
func NewToolResult(text string) *ToolResult {
	return &ToolResult{Text: text}
}

// ErrorResult builds a business-failure result.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{Text: text, IsError: true}
}

// JSONResult serializes an envelope into a result. isError marks business
// failures so MCP clients see isError=true alongside the payload.
func JSONResult(v any, isError bool) (*ToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("tools: marshal result: %w", err)
	}
	return &ToolResult{Text: string(data), IsError: isError}, nil
}

// ------------------------------------------------------------------
// Protocol-level errors
// ------------------------------------------------------------------

// ErrToolNotFound reports a call to an undeclared tool name.
var ErrToolNotFound = errors.New("tool not found")

// InvalidParamsError reports arguments that match no accepted variant or
// violate a field constraint. Detected before dispatch, always.
type InvalidParamsError struct {
	Violations []string
}

func (e *InvalidParamsError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid arguments"
	}
	return "invalid arguments: " + strings.Join(e.Violations, "; ")
}

// InvalidParams builds an InvalidParamsError from violation descriptions.
func InvalidParams(violations ...string) *InvalidParamsError {
	return &InvalidParamsError{Violations: violations}
}

// UnsupportedOperationError reports an action/resourceType combination that
// reached a dispatcher's fallthrough case. With schema validation in front
// of every dispatcher this indicates a catalog bug, not caller error.
type UnsupportedOperationError struct {
	Value string
}

func (e *UnsupportedOperationError) Error() string {
	return "unsupported operation: " + e.Value
}
