// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package monitoring exposes OCI monitoring and identity operations (alarms,
// metrics, users, groups, policies, compartments) as one MCP tool.
package monitoring

import (
	"fmt"

	"github.com/ocitools/ocimcp/pkg/dispatch"
	"github.com/ocitools/ocimcp/pkg/schema"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ------------------------------------------------------------------
// Call union
// ------------------------------------------------------------------

// ListCall lists monitoring or identity resources. Listing metrics requires
// NamespaceName.
type ListCall struct {
	ResourceType   string `json:"resourceType"`
	CompartmentID  string `json:"compartmentId,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	LifecycleState string `json:"lifecycleState,omitempty"`
	NamespaceName  string `json:"namespaceName,omitempty"`
}

// GetCall fetches one monitoring or identity resource.
type GetCall struct {
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId"`
}

// AlarmData is the creation payload for an alarm.
type AlarmData struct {
	CompartmentID string   `json:"compartmentId"`
	DisplayName   string   `json:"displayName,omitempty"`
	NamespaceName string   `json:"namespaceName"`
	Query         string   `json:"query"`
	Severity      string   `json:"severity,omitempty"`
	Destinations  []string `json:"destinations,omitempty"`
	IsEnabled     bool     `json:"isEnabled,omitempty"`
}

// UserData is the creation payload for an IAM user.
type UserData struct {
	CompartmentID string `json:"compartmentId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Email         string `json:"email,omitempty"`
}

// GroupData is the creation payload for an IAM group.
type GroupData struct {
	CompartmentID string `json:"compartmentId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

// PolicyData is the creation payload for an IAM policy.
type PolicyData struct {
	CompartmentID string   `json:"compartmentId"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Statements    []string `json:"statements"`
}

// CreateCall creates a monitoring or identity resource; exactly one payload
// pointer is set, matching ResourceType.
type CreateCall struct {
	ResourceType string
	Alarm        *AlarmData
	User         *UserData
	Group        *GroupData
	Policy       *PolicyData
}

// ManageCall applies a verb to an existing resource. UserID is the companion
// for the group-membership verbs.
type ManageCall struct {
	ResourceType string   `json:"resourceType"`
	ResourceID   string   `json:"resourceId,omitempty"`
	Verb         string   `json:"verb"`
	UserID       string   `json:"userId,omitempty"`
	DisplayName  string   `json:"displayName,omitempty"`
	Description  string   `json:"description,omitempty"`
	Statements   []string `json:"statements,omitempty"`
}

// ------------------------------------------------------------------
// Schema documents
// ------------------------------------------------------------------

var listDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":         map[string]any{"const": "list"},
		"resourceType":   map[string]any{"enum": []string{"alarms", "metrics", "users", "groups", "policies", "compartments"}},
		"compartmentId":  map[string]any{"type": "string"},
		"limit":          map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
		"displayName":    map[string]any{"type": "string"},
		"lifecycleState": map[string]any{"type": "string"},
		"namespaceName":  map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType"},
}

var getDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "get"},
		"resourceType": map[string]any{"enum": []string{"alarm", "user", "group", "policy", "compartment"}},
		"resourceId":   map[string]any{"type": "string", "minLength": 1},
	},
	"required": []string{"action", "resourceType", "resourceId"},
}

var createDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "create"},
		"resourceType": map[string]any{"enum": []string{"alarm", "user", "group", "policy"}},
		"data":         map[string]any{"type": "object"},
	},
	"required": []string{"action", "resourceType", "data"},
}

// dataDocs holds the creation payload document per creatable resource type.
var dataDocs = map[string]map[string]any{
	"alarm": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"displayName":   map[string]any{"type": "string"},
			"namespaceName": map[string]any{"type": "string", "minLength": 1},
			"query":         map[string]any{"type": "string", "minLength": 1},
			"severity":      map[string]any{"enum": []string{"CRITICAL", "ERROR", "WARNING", "INFO"}},
			"destinations":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"isEnabled":     map[string]any{"type": "boolean"},
		},
		"required": []string{"compartmentId", "namespaceName", "query"},
	},
	"user": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"name":          map[string]any{"type": "string", "minLength": 1},
			"description":   map[string]any{"type": "string", "minLength": 1},
			"email":         map[string]any{"type": "string"},
		},
		"required": []string{"compartmentId", "name", "description"},
	},
	"group": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"name":          map[string]any{"type": "string", "minLength": 1},
			"description":   map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"compartmentId", "name", "description"},
	},
	"policy": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"name":          map[string]any{"type": "string", "minLength": 1},
			"description":   map[string]any{"type": "string", "minLength": 1},
			"statements":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
		},
		"required": []string{"compartmentId", "name", "description", "statements"},
	},
}

var manageDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "manage"},
		"resourceType": map[string]any{"enum": []string{"alarm", "user", "group", "policy"}},
		"verb":         map[string]any{"enum": []string{"enable-alarm", "disable-alarm", "delete", "update", "add-user-to-group", "remove-user-from-group"}},
		"resourceId":   map[string]any{"type": "string"},
		"userId":       map[string]any{"type": "string"},
		"displayName":  map[string]any{"type": "string"},
		"description":  map[string]any{"type": "string"},
		"statements":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required": []string{"action", "resourceType", "verb"},
}

var (
	listSchema   = schema.MustCompile("monitoring-list", listDoc)
	getSchema    = schema.MustCompile("monitoring-get", getDoc)
	createSchema = schema.MustCompile("monitoring-create", createDoc)
	manageSchema = schema.MustCompile("monitoring-manage", manageDoc)

	dataSchemas = compileDataSchemas()
)

func compileDataSchemas() map[string]*schema.Schema {
	out := make(map[string]*schema.Schema, len(dataDocs))
	for name, doc := range dataDocs {
		out[name] = schema.MustCompile("monitoring-create-"+name, doc)
	}
	return out
}

// InputSchema is the tool's advertised input declaration.
func InputSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"oneOf": []any{listDoc, getDoc, createDoc, manageDoc},
	}
}

// ------------------------------------------------------------------
// Validation and narrowing
// ------------------------------------------------------------------

// ParseCall validates and narrows an argument bag into a typed call.
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
		resourceType, _ := args["resourceType"].(string)
		data, _ := args["data"].(map[string]any)
		if v := dataSchemas[resourceType].Validate(data); v != nil {
			return nil, tools.InvalidParams(schema.Prefix("data", v)...)
		}
		return decodeCreate(resourceType, data)

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

func decodeCreate(resourceType string, data map[string]any) (*CreateCall, error) {
	c := &CreateCall{ResourceType: resourceType}
	var target any
	switch resourceType {
	case "alarm":
		c.Alarm = &AlarmData{}
		target = c.Alarm
	case "user":
		c.User = &UserData{}
		target = c.User
	case "group":
		c.Group = &GroupData{}
		target = c.Group
	case "policy":
		c.Policy = &PolicyData{}
		target = c.Policy
	default:
		return nil, tools.InvalidParams(fmt.Sprintf("resourceType %q is not creatable", resourceType))
	}
	if err := schema.Decode(data, target); err != nil {
		return nil, err
	}
	return c, nil
}
