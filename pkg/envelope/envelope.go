// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package envelope defines the three uniform response shapes every tool call
// resolves to, plus the deterministic summary messages placed in them.
// Envelopes are built per call, serialized immediately and discarded.
package envelope

import (
	"fmt"

	"github.com/ocitools/ocimcp/pkg/backend"
)

// List wraps the result of a list action. Count always equals len(Data).
type List struct {
	Success  bool               `json:"success"`
	Data     []backend.Resource `json:"data"`
	Count    int                `json:"count"`
	Message  string             `json:"message"`
	NextPage string             `json:"nextPage,omitempty"`
}

// Detail wraps the result of a get action.
type Detail struct {
	Success bool             `json:"success"`
	Data    backend.Resource `json:"data"`
	Message string           `json:"message"`
}

// Operation wraps the result of a create or manage action. OperationID names
// the resource the caller can poll for completion.
type Operation struct {
	Success     bool             `json:"success"`
	Data        backend.Resource `json:"data,omitempty"`
	Message     string           `json:"message"`
	OperationID string           `json:"operationId,omitempty"`
}

// Failure is the uniform business-failure shape: no data, one classified
// human-readable message.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Guidance is the configuration-failure shape. It is the only failure that
// carries remediation instructions and an example call.
type Guidance struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	MissingConfig []string       `json:"missingConfig"`
	Instructions  []string       `json:"instructions"`
	Example       map[string]any `json:"example"`
}

// Envelope is implemented by all five shapes so dispatchers can return any
// of them through one seam.
type Envelope interface {
	// OK reports whether the envelope carries a success.
	OK() bool
}

func (l *List) OK() bool      { return l.Success }
func (d *Detail) OK() bool    { return d.Success }
func (o *Operation) OK() bool { return o.Success }
func (f *Failure) OK() bool   { return f.Success }
func (g *Guidance) OK() bool  { return g.Success }

// ------------------------------------------------------------------
// Constructors
// ------------------------------------------------------------------

// NewList builds a successful list envelope over the fetched page.
func NewList(page *backend.ListPage, resourceType string) *List {
	items := page.Items
	if items == nil {
		items = []backend.Resource{}
	}
	return &List{
		Success:  true,
		Data:     items,
		Count:    len(items),
		Message:  fmt.Sprintf("Found %d %s", len(items), resourceType),
		NextPage: page.NextPage,
	}
}

// NewDetail builds a successful detail envelope.
func NewDetail(r backend.Resource, kind, id string) *Detail {
	return &Detail{
		Success: true,
		Data:    r,
		Message: fmt.Sprintf("Retrieved %s %s", kind, id),
	}
}

// NewOperation builds a successful operation envelope. OperationID comes
// from the returned resource's identifier when present, otherwise from
// fallbackID (typically the input resourceId).
func NewOperation(r backend.Resource, message, fallbackID string) *Operation {
	opID := fallbackID
	if id := r.ID(); id != "" {
		opID = id
	}
	return &Operation{
		Success:     true,
		Data:        r,
		Message:     message,
		OperationID: opID,
	}
}

// Fail builds the uniform business-failure envelope.
func Fail(message string) *Failure {
	return &Failure{Success: false, Message: message}
}

// ConfigGuidance builds the configuration-failure envelope listing the
// missing values and how to supply them.
func ConfigGuidance(missing []string) *Guidance {
	instructions := make([]string, 0, len(missing)+1)
	for _, name := range missing {
		instructions = append(instructions, "Set "+name+" in the environment or the config file")
	}
	instructions = append(instructions,
		"Credentials are read from the environment (or --config file); see the OCI console's API key settings for their values")
	return &Guidance{
		Success:       false,
		Message:       "OCI credentials are not configured",
		MissingConfig: missing,
		Instructions:  instructions,
		Example: map[string]any{
			"action":        "list",
			"resourceType":  "instances",
			"compartmentId": "ocid1.compartment.oc1..example",
		},
	}
}

// ------------------------------------------------------------------
// Message templates
// ------------------------------------------------------------------

// CreationMessage reports that a resource creation has been initiated.
func CreationMessage(kind, name string) string {
	return fmt.Sprintf("%s creation initiated: %s", kind, name)
}

// ActionMessage reports that a manage verb has been initiated, e.g.
// "Instance deletion initiated: ocid1...".
func ActionMessage(kind, verb, id string) string {
	return fmt.Sprintf("%s %s initiated: %s", kind, verb, id)
}
