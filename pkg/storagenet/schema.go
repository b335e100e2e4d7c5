// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package storagenet exposes OCI object storage, block volume and virtual
// network operations as one MCP tool.
package storagenet

import (
	"fmt"

	"github.com/ocitools/ocimcp/pkg/dispatch"
	"github.com/ocitools/ocimcp/pkg/schema"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ------------------------------------------------------------------
// Call union
// ------------------------------------------------------------------

// ListCall lists storage or network resources. NamespaceName/BucketName are
// the auxiliary lookups for object storage types; VcnID scopes subnets.
type ListCall struct {
	ResourceType   string `json:"resourceType"`
	CompartmentID  string `json:"compartmentId,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	LifecycleState string `json:"lifecycleState,omitempty"`
	NamespaceName  string `json:"namespaceName,omitempty"`
	BucketName     string `json:"bucketName,omitempty"`
	Prefix         string `json:"prefix,omitempty"`
	VcnID          string `json:"vcnId,omitempty"`
}

// GetCall fetches one resource. For buckets, ResourceID is the bucket name
// and NamespaceName is required.
type GetCall struct {
	ResourceType  string `json:"resourceType"`
	ResourceID    string `json:"resourceId"`
	NamespaceName string `json:"namespaceName,omitempty"`
}

// BucketData is the creation payload for a bucket.
type BucketData struct {
	CompartmentID string `json:"compartmentId"`
	NamespaceName string `json:"namespaceName"`
	Name          string `json:"name"`
	StorageTier   string `json:"storageTier,omitempty"`
	PublicAccess  string `json:"publicAccess,omitempty"`
}

// VolumeData is the creation payload for a block volume.
type VolumeData struct {
	CompartmentID      string `json:"compartmentId"`
	AvailabilityDomain string `json:"availabilityDomain"`
	DisplayName        string `json:"displayName,omitempty"`
	SizeInGBs          int    `json:"sizeInGBs"`
	VpusPerGB          int    `json:"vpusPerGB,omitempty"`
}

// VCNData is the creation payload for a virtual cloud network.
type VCNData struct {
	CompartmentID string `json:"compartmentId"`
	CidrBlock     string `json:"cidrBlock"`
	DisplayName   string `json:"displayName,omitempty"`
	DNSLabel      string `json:"dnsLabel,omitempty"`
}

// SubnetData is the creation payload for a subnet.
type SubnetData struct {
	CompartmentID string `json:"compartmentId"`
	VcnID         string `json:"vcnId"`
	CidrBlock     string `json:"cidrBlock"`
	DisplayName   string `json:"displayName,omitempty"`
	DNSLabel      string `json:"dnsLabel,omitempty"`
}

// RuleData is one inline security rule.
type RuleData struct {
	Direction   string `json:"direction"`
	Protocol    string `json:"protocol"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	Description string `json:"description,omitempty"`
}

// NSGData is the creation payload for a network security group. Inline rules
// are applied one provider call each, non-transactionally.
type NSGData struct {
	CompartmentID string     `json:"compartmentId"`
	VcnID         string     `json:"vcnId"`
	DisplayName   string     `json:"displayName,omitempty"`
	SecurityRules []RuleData `json:"securityRules,omitempty"`
}

// CreateCall creates a storage or network resource; exactly one payload
// pointer is set, matching ResourceType.
type CreateCall struct {
	ResourceType string
	Bucket       *BucketData
	Volume       *VolumeData
	VCN          *VCNData
	Subnet       *SubnetData
	NSG          *NSGData
}

// ManageCall applies a verb to an existing resource.
type ManageCall struct {
	ResourceType  string    `json:"resourceType"`
	ResourceID    string    `json:"resourceId,omitempty"`
	Verb          string    `json:"verb"`
	NamespaceName string    `json:"namespaceName,omitempty"`
	RuleID        string    `json:"ruleId,omitempty"`
	Rule          *RuleData `json:"rule,omitempty"`
}

// ------------------------------------------------------------------
// Schema documents
// ------------------------------------------------------------------

var listDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":         map[string]any{"const": "list"},
		"resourceType":   map[string]any{"enum": []string{"buckets", "objects", "volumes", "vcns", "subnets", "network-security-groups"}},
		"compartmentId":  map[string]any{"type": "string"},
		"limit":          map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
		"displayName":    map[string]any{"type": "string"},
		"lifecycleState": map[string]any{"type": "string"},
		"namespaceName":  map[string]any{"type": "string"},
		"bucketName":     map[string]any{"type": "string"},
		"prefix":         map[string]any{"type": "string"},
		"vcnId":          map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType"},
}

var getDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":        map[string]any{"const": "get"},
		"resourceType":  map[string]any{"enum": []string{"bucket", "volume", "vcn", "subnet", "network-security-group"}},
		"resourceId":    map[string]any{"type": "string", "minLength": 1},
		"namespaceName": map[string]any{"type": "string"},
	},
	"required": []string{"action", "resourceType", "resourceId"},
}

var createDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":       map[string]any{"const": "create"},
		"resourceType": map[string]any{"enum": []string{"bucket", "volume", "vcn", "subnet", "network-security-group"}},
		"data":         map[string]any{"type": "object"},
	},
	"required": []string{"action", "resourceType", "data"},
}

var ruleDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"direction":   map[string]any{"enum": []string{"INGRESS", "EGRESS"}},
		"protocol":    map[string]any{"type": "string", "minLength": 1},
		"source":      map[string]any{"type": "string"},
		"destination": map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
	},
	"required": []string{"direction", "protocol"},
}

// dataDocs holds the creation payload document per creatable resource type.
var dataDocs = map[string]map[string]any{
	"bucket": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"namespaceName": map[string]any{"type": "string", "minLength": 1},
			"name":          map[string]any{"type": "string", "minLength": 1},
			"storageTier":   map[string]any{"enum": []string{"Standard", "Archive"}},
			"publicAccess":  map[string]any{"enum": []string{"NoPublicAccess", "ObjectRead", "ObjectReadWithoutList"}},
		},
		"required": []string{"compartmentId", "namespaceName", "name"},
	},
	"volume": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId":      map[string]any{"type": "string", "minLength": 1},
			"availabilityDomain": map[string]any{"type": "string", "minLength": 1},
			"displayName":        map[string]any{"type": "string"},
			"sizeInGBs":          map[string]any{"type": "integer", "minimum": 50},
			"vpusPerGB":          map[string]any{"type": "integer"},
		},
		"required": []string{"compartmentId", "availabilityDomain", "sizeInGBs"},
	},
	"vcn": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"cidrBlock":     map[string]any{"type": "string", "minLength": 1},
			"displayName":   map[string]any{"type": "string"},
			"dnsLabel":      map[string]any{"type": "string"},
		},
		"required": []string{"compartmentId", "cidrBlock"},
	},
	"subnet": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"vcnId":         map[string]any{"type": "string", "minLength": 1},
			"cidrBlock":     map[string]any{"type": "string", "minLength": 1},
			"displayName":   map[string]any{"type": "string"},
			"dnsLabel":      map[string]any{"type": "string"},
		},
		"required": []string{"compartmentId", "vcnId", "cidrBlock"},
	},
	"network-security-group": {
		"type": "object",
		"properties": map[string]any{
			"compartmentId": map[string]any{"type": "string", "minLength": 1},
			"vcnId":         map[string]any{"type": "string", "minLength": 1},
			"displayName":   map[string]any{"type": "string"},
			"securityRules": map[string]any{"type": "array", "items": ruleDoc},
		},
		"required": []string{"compartmentId", "vcnId"},
	},
}

var manageDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action":        map[string]any{"const": "manage"},
		"resourceType":  map[string]any{"enum": []string{"bucket", "volume", "vcn", "subnet", "network-security-group"}},
		"verb":          map[string]any{"enum": []string{"delete", "add-security-rule", "remove-security-rule"}},
		"resourceId":    map[string]any{"type": "string"},
		"namespaceName": map[string]any{"type": "string"},
		"ruleId":        map[string]any{"type": "string"},
		"rule":          ruleDoc,
	},
	"required": []string{"action", "resourceType", "verb"},
}

var (
	listSchema   = schema.MustCompile("storagenet-list", listDoc)
	getSchema    = schema.MustCompile("storagenet-get", getDoc)
	createSchema = schema.MustCompile("storagenet-create", createDoc)
	manageSchema = schema.MustCompile("storagenet-manage", manageDoc)

	dataSchemas = compileDataSchemas()
)

func compileDataSchemas() map[string]*schema.Schema {
	out := make(map[string]*schema.Schema, len(dataDocs))
	for name, doc := range dataDocs {
		out[name] = schema.MustCompile("storagenet-create-"+name, doc)
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
	case "bucket":
		c.Bucket = &BucketData{}
		target = c.Bucket
	case "volume":
		c.Volume = &VolumeData{}
		target = c.Volume
	case "vcn":
		c.VCN = &VCNData{}
		target = c.VCN
	case "subnet":
		c.Subnet = &SubnetData{}
		target = c.Subnet
	case "network-security-group":
		c.NSG = &NSGData{}
		target = c.NSG
	default:
		return nil, tools.InvalidParams(fmt.Sprintf("resourceType %q is not creatable", resourceType))
	}
	if err := schema.Decode(data, target); err != nil {
		return nil, err
	}
	return c, nil
}
