// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package compute exposes OCI compute operations (instances, images, shapes,
// attachments) as one MCP tool.
package compute

import (
	"fmt"

	"github.com/ocitools/ocimcp/pkg/dispatch"
	"github.com/ocitools/ocimcp/pkg/schema"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ------------------------------------------------------------------
// Call union
// ------------------------------------------------------------------

// ListCall lists compute resources.
type ListCall struct {
	ResourceType   string `json:"resourceType"`
	CompartmentID  string `json:"compartmentId,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	LifecycleState string `json:"lifecycleState,omitempty"`
}

// GetCall fetches one compute resource.
type GetCall struct {
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId"`
}

// InstanceData is the creation payload for an instance.
type InstanceData struct {
	CompartmentID      string `json:"compartmentId"`
	AvailabilityDomain string `json:"availabilityDomain"`
	Shape              string `json:"shape"`
	ImageID            string `json:"imageId"`
	SubnetID           string `json:"subnetId"`
	DisplayName        string `json:"displayName,omitempty"`
	SSHAuthorizedKeys  string `json:"sshAuthorizedKeys,omitempty"`
}

// CreateCall creates a compute resource. Instance is set when ResourceType
// is "instance" (the domain's only creatable type).
type CreateCall struct {
	ResourceType string
	Instance     *InstanceData
}

// ManageCall applies a verb to an existing resource. Companion fields are
// verb-specific; the dispatcher enforces their presence.
type ManageCall struct {
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId,omitempty"`
	Verb         string `json:"verb"`
	InstanceID   string `json:"instanceId,omitempty"`
	VolumeID     string `json:"volumeId,omitempty"`
	AttachmentID string `json:"attachmentId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// ------------------------------------------------------------------
// Schema documents
// ------------------------------------------------------------------

var listDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":         map[string]any{"const": "list"},
		"resourceType":   map[string]any{"enum": []string{"instances", "images", "shapes", "vnic-attachments", "volume-attachments"}},
		"compartmentId":  map[string]any{"type": "string"},
		"limit":          map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
		"displayName":    map[string]any{"type": "string"},
		"lifecycleState": map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType"},
}

var getDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "get"},
		"resourceType": map[string]any{"enum": []string{"instance", "image", "vnic-attachment"}},
		"resourceId":   map[string]any{"type": "string", "minLength": 1},
	},
	"required": []string{"action", "resourceType", "resourceId"},
}

var createDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "create"},
		"resourceType": map[string]any{"enum": []string{"instance"}},
		"data":         map[string]any{"type": "object"},
	},
	"required": []string{"action", "resourceType", "data"},
}

var instanceDataDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"compartmentId":      map[string]any{"type": "string", "minLength": 1},
		"availabilityDomain": map[string]any{"type": "string", "minLength": 1},
		"shape":              map[string]any{"type": "string", "minLength": 1},
		"imageId":            map[string]any{"type": "string", "minLength": 1},
		"subnetId":           map[string]any{"type": "string", "minLength": 1},
		"displayName":        map[string]any{"type": "string"},
		"sshAuthorizedKeys":  map[string]any{"type": "string"},
	},
	"required": []string{"compartmentId", "availabilityDomain", "shape", "imageId", "subnetId"},
}

var manageDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "manage"},
		"resourceType": map[string]any{"enum": []string{"instance"}},
		"verb":         map[string]any{"enum": []string{"start", "stop", "reboot", "terminate", "attach-volume", "detach-volume", "update"}},
		"resourceId":   map[string]any{"type": "string"},
		"instanceId":   map[string]any{"type": "string"},
		"volumeId":     map[string]any{"type": "string"},
		"attachmentId": map[string]any{"type": "string"},
		"displayName":  map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType", "verb"},
}

var (
	listSchema         = schema.MustCompile("compute-list", listDoc)
	getSchema          = schema.MustCompile("compute-get", getDoc)
	createSchema       = schema.MustCompile("compute-create", createDoc)
	instanceDataSchema = schema.MustCompile("compute-create-instance", instanceDataDoc)
	manageSchema       = schema.MustCompile("compute-manage", manageDoc)
)

// InputSchema is the tool's advertised input declaration: the union of the
// four action variants, discriminated by action.
func InputSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"oneOf": []any{listDoc, getDoc, createDoc, manageDoc},
	}
}

// ------------------------------------------------------------------
// Validation and narrowing
// ------------------------------------------------------------------

// ParseCall validates a raw argument bag against the matching variant and
// narrows it into a typed call. A bag matching no variant, or violating a
// field constraint, never reaches the dispatcher.
func ParseCall(args map[string]any) (any, error) {
	action, err := dispatch.ParseAction(args)
	if err != nil {
		return nil, err
	}

	switch action {
	case dispatch.ActionList:
		if v := listSchema.Validate(args); v != nil {
			return nil, tools.InvalidParams(v...)
		}
		var c ListCall
		if err := schema.Decode(args, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case dispatch.ActionGet:
		if v := getSchema.Validate(args); v != nil {
			return nil, tools.InvalidParams(v...)
		}
		var c GetCall
		if err := schema.Decode(args, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case dispatch.ActionCreate:
		if v := createSchema.Validate(args); v != nil {
			return nil, tools.InvalidParams(v...)
		}
		data, _ := args["data"].(map[string]any)
		if v := instanceDataSchema.Validate(data); v != nil {
			return nil, tools.InvalidParams(schema.Prefix("data", v)...)
		}
		var inst InstanceData
		if err := schema.Decode(data, &inst); err != nil {
			return nil, err
		}
		resourceType, _ := args["resourceType"].(string)
		return &CreateCall{ResourceType: resourceType, Instance: &inst}, nil

	case dispatch.ActionManage:
		if v := manageSchema.Validate(args); v != nil {
			return nil, tools.InvalidParams(v...)
		}
		var c ManageCall
		if err := schema.Decode(args, &c); err != nil {
			return nil, err
		}
		return &c, nil
	}

	return nil, tools.InvalidParams(fmt.Sprintf("action %q is not supported", action))
}
