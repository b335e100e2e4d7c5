// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package database exposes OCI database operations (autonomous databases,
// DB systems, databases, backups) as one MCP tool.
package database

import (
	"fmt"

	"github.com/ocitools/ocimcp/pkg/dispatch"
	"github.com/ocitools/ocimcp/pkg/schema"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ------------------------------------------------------------------
// Call union
// ------------------------------------------------------------------

// ListCall lists database resources. Listing "databases" requires either
// DbSystemID or DbHomeID; the dispatcher fail-fasts when both are absent.
type ListCall struct {
	ResourceType   string `json:"resourceType"`
	CompartmentID  string `json:"compartmentId,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	LifecycleState string `json:"lifecycleState,omitempty"`
	DbSystemID     string `json:"dbSystemId,omitempty"`
	DbHomeID       string `json:"dbHomeId,omitempty"`
}

// GetCall fetches one database resource.
type GetCall struct {
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId"`
}

// AutonomousData is the creation payload for an autonomous database.
type AutonomousData struct {
	CompartmentID        string `json:"compartmentId"`
	DbName               string `json:"dbName"`
	DisplayName          string `json:"displayName,omitempty"`
	CpuCoreCount         int    `json:"cpuCoreCount"`
	DataStorageSizeInTBs int    `json:"dataStorageSizeInTBs"`
	AdminPassword        string `json:"adminPassword"`
	DbWorkload           string `json:"dbWorkload,omitempty"`
	LicenseModel         string `json:"licenseModel,omitempty"`
	IsAutoScalingEnabled bool   `json:"isAutoScalingEnabled,omitempty"`
	IsFreeTier           bool   `json:"isFreeTier,omitempty"`
	CharacterSet         string `json:"characterSet,omitempty"`
}

// DatabaseData is the creation payload for a database within a DB home.
type DatabaseData struct {
	DbHomeID      string `json:"dbHomeId"`
	DbName        string `json:"dbName"`
	AdminPassword string `json:"adminPassword"`
	CharacterSet  string `json:"characterSet,omitempty"`
}

// BackupData is the creation payload for an on-demand backup.
type BackupData struct {
	DatabaseID  string `json:"databaseId"`
	DisplayName string `json:"displayName,omitempty"`
}

// CreateCall creates a database resource; exactly one payload pointer is
// set, matching ResourceType.
type CreateCall struct {
	ResourceType string
	Autonomous   *AutonomousData
	Database     *DatabaseData
	Backup       *BackupData
}

// ManageCall applies a verb to an existing database resource.
type ManageCall struct {
	ResourceType         string `json:"resourceType"`
	ResourceID           string `json:"resourceId,omitempty"`
	Verb                 string `json:"verb"`
	CpuCoreCount         int    `json:"cpuCoreCount,omitempty"`
	DataStorageSizeInTBs int    `json:"dataStorageSizeInTBs,omitempty"`
	Timestamp            string `json:"timestamp,omitempty"`
	CompartmentID        string `json:"compartmentId,omitempty"`
	DbName               string `json:"dbName,omitempty"`
	CloneType            string `json:"cloneType,omitempty"`
	DisplayName          string `json:"displayName,omitempty"`
}

// ------------------------------------------------------------------
// Schema documents
// ------------------------------------------------------------------

var listDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":         map[string]any{"const": "list"},
		"resourceType":   map[string]any{"enum": []string{"autonomous-databases", "db-systems", "databases", "db-homes", "backups"}},
		"compartmentId":  map[string]any{"type": "string"},
		"limit":          map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
		"displayName":    map[string]any{"type": "string"},
		"lifecycleState": map[string]any{"type": "string"},
		"dbSystemId":     map[string]any{"type": "string"},
		"dbHomeId":       map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType"},
}

var getDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "get"},
		"resourceType": map[string]any{"enum": []string{"autonomous-database", "db-system", "database"}},
		"resourceId":   map[string]any{"type": "string", "minLength": 1},
	},
	"required": []string{"action", "resourceType", "resourceId"},
}

var createDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "create"},
		"resourceType": map[string]any{"enum": []string{"autonomous-database", "database", "backup"}},
		"data":         map[string]any{"type": "object"},
	},
	"required": []string{"action", "resourceType", "data"},
}

// dataDocs holds the creation payload document per creatable resource type.
var dataDocs = map[string]map[string]any{
	"autonomous-database": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId":        map[string]any{"type": "string", "minLength": 1},
			"dbName":               map[string]any{"type": "string", "minLength": 1},
			"displayName":          map[string]any{"type": "string"},
			"cpuCoreCount":         map[string]any{"type": "integer", "minimum": 1},
			"dataStorageSizeInTBs": map[string]any{"type": "integer", "minimum": 1},
			"adminPassword":        map[string]any{"type": "string", "minLength": 12},
			"dbWorkload":           map[string]any{"enum": []string{"OLTP", "DW"}},
			"licenseModel":         map[string]any{"enum": []string{"LICENSE_INCLUDED", "BRING_YOUR_OWN_LICENSE"}},
			"isAutoScalingEnabled": map[string]any{"type": "boolean"},
			"isFreeTier":           map[string]any{"type": "boolean"},
			"characterSet":         map[string]any{"type": "string"},
		},
		"required": []string{"compartmentId", "dbName", "cpuCoreCount", "dataStorageSizeInTBs", "adminPassword"},
	},
	"database": {
		"type": "object",
		"properties": map[string]any{
			"dbHomeId":      map[string]any{"type": "string", "minLength": 1},
			"dbName":        map[string]any{"type": "string", "minLength": 1},
			"adminPassword": map[string]any{"type": "string", "minLength": 12},
			"characterSet":  map[string]any{"type": "string"},
		},
		"required": []string{"dbHomeId", "dbName", "adminPassword"},
	},
	"backup": {
		"type": "object",
		"properties": map[string]any{
			"databaseId":  map[string]any{"type": "string", "minLength": 1},
			"displayName": map[string]any{"type": "string"},
		},
		"required": []string{"databaseId"},
	},
}

var manageDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":               map[string]any{"const": "manage"},
		"resourceType":         map[string]any{"enum": []string{"autonomous-database", "db-system"}},
		"verb":                 map[string]any{"enum": []string{"start", "stop", "restart", "scale", "clone", "restore", "delete", "update"}},
		"resourceId":           map[string]any{"type": "string"},
		"cpuCoreCount":         map[string]any{"type": "integer", "minimum": 1},
		"dataStorageSizeInTBs": map[string]any{"type": "integer", "minimum": 1},
		"timestamp":            map[string]any{"type": "string"},
		"compartmentId":        map[string]any{"type": "string"},
		"dbName":               map[string]any{"type": "string"},
		"cloneType":            map[string]any{"enum": []string{"FULL", "METADATA"}},
		"displayName":          map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType", "verb"},
}

var (
	listSchema   = schema.MustCompile("database-list", listDoc)
	getSchema    = schema.MustCompile("database-get", getDoc)
	createSchema = schema.MustCompile("database-create", createDoc)
	manageSchema = schema.MustCompile("database-manage", manageDoc)

	dataSchemas = compileDataSchemas()
)

func compileDataSchemas() map[string]*schema.Schema {
	out := make(map[string]*schema.Schema, len(dataDocs))
	for name, doc := range dataDocs {
		out[name] = schema.MustCompile("database-create-"+name, doc)
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
	case "autonomous-database":
		c.Autonomous = &AutonomousData{}
		target = c.Autonomous
	case "database":
		c.Database = &DatabaseData{}
		target = c.Database
	case "backup":
		c.Backup = &BackupData{}
		target = c.Backup
	default:
		return nil, tools.InvalidParams(fmt.Sprintf("resourceType %q is not creatable", resourceType))
	}
	if err := schema.Decode(data, target); err != nil {
		return nil, err
	}
	return c, nil
}
