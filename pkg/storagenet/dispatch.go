// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package storagenet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/dispatch"
	"github.com/ocitools/ocimcp/pkg/envelope"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ToolName is the storage-network tool's wire name.
const ToolName = "oci_storage_network"

const toolDescription = "List, get, create and manage OCI object storage and network resources: " +
	"buckets, objects, block volumes, VCNs, subnets and network security groups. " +
	"Manage verbs: delete, add-security-rule, remove-security-rule."

// Dispatcher routes validated storage/network calls to the provider.
type Dispatcher struct {
	svc backend.StorageNetwork
	cfg *config.Config
	log *slog.Logger
}

// NewDispatcher builds the storage-network dispatcher over a shared connection.
func NewDispatcher(conn backend.Connection, cfg *config.Config, log *slog.Logger) *Dispatcher {
	return &Dispatcher{svc: conn.StorageNetwork(), cfg: cfg, log: log}
}

// NewTool wraps the dispatcher as the oci_storage_network catalog tool.
func NewTool(conn backend.Connection, cfg *config.Config, log *slog.Logger) *dispatch.Tool {
	return dispatch.NewTool(ToolName, toolDescription, InputSchema(), cfg, NewDispatcher(conn, cfg, log), log)
}

// ParseCall implements dispatch.Dispatcher.
func (d *Dispatcher) ParseCall(args map[string]any) (any, error) {
	return ParseCall(args)
}

// Dispatch implements dispatch.Dispatcher.
func (d *Dispatcher) Dispatch(ctx context.Context, call any) (envelope.Envelope, error) {
	switch c := call.(type) {
	case *ListCall:
		return d.list(ctx, c)
	case *GetCall:
		return d.get(ctx, c)
	case *CreateCall:
		return d.create(ctx, c)
	case *ManageCall:
		return d.manage(ctx, c)
	}
	return nil, &tools.UnsupportedOperationError{Value: fmt.Sprintf("%T", call)}
}

func (d *Dispatcher) list(ctx context.Context, c *ListCall) (envelope.Envelope, error) {
	compartment := c.CompartmentID
	if compartment == "" {
		compartment = d.cfg.CompartmentID
	}
	limit := c.Limit
	if limit == 0 {
		limit = dispatch.DefaultLimit
	}

	// Object storage types carry their own auxiliary lookups; everything
	// else needs a compartment.
	switch c.ResourceType {
	case "buckets":
		if c.NamespaceName == "" {
			return envelope.Fail("listing buckets requires namespaceName"), nil
		}
	case "objects":
		if c.NamespaceName == "" || c.BucketName == "" {
			return envelope.Fail("listing objects requires both namespaceName and bucketName"), nil
		}
	default:
		if compartment == "" {
			return envelope.Fail("compartmentId is required: no default compartment is configured"), nil
		}
	}

	f := backend.ListFilter{
		CompartmentID:  compartment,
		Limit:          limit,
		DisplayName:    c.DisplayName,
		LifecycleState: c.LifecycleState,
	}

	var (
		page *backend.ListPage
		err  error
	)
	switch c.ResourceType {
	case "buckets":
		page, err = d.svc.ListBuckets(ctx, backend.ListBucketsRequest{NamespaceName: c.NamespaceName, Filter: f})
	case "objects":
		page, err = d.svc.ListObjects(ctx, backend.ListObjectsRequest{
			NamespaceName: c.NamespaceName,
			BucketName:    c.BucketName,
			Prefix:        c.Prefix,
			Limit:         limit,
		})
	case "volumes":
		page, err = d.svc.ListVolumes(ctx, f)
	case "vcns":
		page, err = d.svc.ListVCNs(ctx, f)
	case "subnets":
		page, err = d.svc.ListSubnets(ctx, backend.ListSubnetsRequest{VcnID: c.VcnID, Filter: f})
	case "network-security-groups":
		page, err = d.svc.ListNetworkSecurityGroups(ctx, f)
	default:
		return nil, &tools.UnsupportedOperationError{Value: "list " + c.ResourceType}
	}
	if err != nil {
		return nil, err
	}
	return envelope.NewList(page, c.ResourceType), nil
}

func (d *Dispatcher) get(ctx context.Context, c *GetCall) (envelope.Envelope, error) {
	var (
		r   backend.Resource
		err error
	)
	switch c.ResourceType {
	case "bucket":
		if c.NamespaceName == "" {
			return envelope.Fail("getting a bucket requires namespaceName"), nil
		}
		r, err = d.svc.GetBucket(ctx, backend.BucketRef{NamespaceName: c.NamespaceName, BucketName: c.ResourceID})
	case "volume":
		r, err = d.svc.GetVolume(ctx, c.ResourceID)
	case "vcn":
		r, err = d.svc.GetVCN(ctx, c.ResourceID)
	case "subnet":
		r, err = d.svc.GetSubnet(ctx, c.ResourceID)
	case "network-security-group":
		r, err = d.svc.GetNetworkSecurityGroup(ctx, c.ResourceID)
	default:
		return nil, &tools.UnsupportedOperationError{Value: "get " + c.ResourceType}
	}
	if err != nil {
		return nil, err
	}
	return envelope.NewDetail(r, c.ResourceType, c.ResourceID), nil
}

func (d *Dispatcher) create(ctx context.Context, c *CreateCall) (envelope.Envelope, error) {
	switch c.ResourceType {
	case "bucket":
		data := c.Bucket
		r, err := d.svc.CreateBucket(ctx, backend.CreateBucketRequest{
			NamespaceName: data.NamespaceName,
			CompartmentID: data.CompartmentID,
			Name:          data.Name,
			StorageTier:   data.StorageTier,
			PublicAccess:  data.PublicAccess,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Bucket", data.Name), data.Name), nil

	case "volume":
		data := c.Volume
		name := data.DisplayName
		if name == "" {
			name = dispatch.GeneratedName("volume")
		}
		r, err := d.svc.CreateVolume(ctx, backend.CreateVolumeRequest{
			CompartmentID:      data.CompartmentID,
			AvailabilityDomain: data.AvailabilityDomain,
			DisplayName:        name,
			SizeInGBs:          data.SizeInGBs,
			VpusPerGB:          data.VpusPerGB,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Volume", name), ""), nil

	case "vcn":
		data := c.VCN
		name := data.DisplayName
		if name == "" {
			name = dispatch.GeneratedName("vcn")
		}
		r, err := d.svc.CreateVCN(ctx, backend.CreateVCNRequest{
			CompartmentID: data.CompartmentID,
			CidrBlock:     data.CidrBlock,
			DisplayName:   name,
			DNSLabel:      data.DNSLabel,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("VCN", name), ""), nil

	case "subnet":
		data := c.Subnet
		name := data.DisplayName
		if name == "" {
			name = dispatch.GeneratedName("subnet")
		}
		r, err := d.svc.CreateSubnet(ctx, backend.CreateSubnetRequest{
			CompartmentID: data.CompartmentID,
			VcnID:         data.VcnID,
			CidrBlock:     data.CidrBlock,
			DisplayName:   name,
			DNSLabel:      data.DNSLabel,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Subnet", name), ""), nil

	case "network-security-group":
		return d.createNSG(ctx, c.NSG)
	}

	return nil, &tools.UnsupportedOperationError{Value: "create " + c.ResourceType}
}

// createNSG creates the group, then applies inline rules one provider call
// each. The sequence is not transactional: a failure partway leaves the
// group with the rules applied so far, reported in the failure message.
func (d *Dispatcher) createNSG(ctx context.Context, data *NSGData) (envelope.Envelope, error) {
	name := data.DisplayName
	if name == "" {
		name = dispatch.GeneratedName("nsg")
	}
	r, err := d.svc.CreateNetworkSecurityGroup(ctx, backend.CreateNSGRequest{
		CompartmentID: data.CompartmentID,
		VcnID:         data.VcnID,
		DisplayName:   name,
	})
	if err != nil {
		return nil, err
	}
	groupID := r.ID()

	for i, rule := range data.SecurityRules {
		_, err := d.svc.AddNetworkSecurityGroupRule(ctx, backend.NSGRuleRequest{
			GroupID: groupID,
			Rule: backend.SecurityRule{
				Direction:   rule.Direction,
				Protocol:    rule.Protocol,
				Source:      rule.Source,
				Destination: rule.Destination,
				Description: rule.Description,
			},
		})
		if err != nil {
			return &envelope.Operation{
				Success: false,
				Message: fmt.Sprintf("Network security group %s created but only %d of %d rules applied: %s",
					groupID, i, len(data.SecurityRules), backend.Classify(err)),
				OperationID: groupID,
			}, nil
		}
	}

	message := envelope.CreationMessage("Network security group", name)
	if n := len(data.SecurityRules); n > 0 {
		message = fmt.Sprintf("%s (%d security rules applied)", message, n)
	}
	return envelope.NewOperation(r, message, ""), nil
}

func (d *Dispatcher) manage(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	switch c.Verb {
	case "delete":
		return d.delete(ctx, c)

	case "add-security-rule":
		if c.ResourceType != "network-security-group" {
			return envelope.Fail("add-security-rule is only valid for network-security-group"), nil
		}
		if c.ResourceID == "" {
			return envelope.Fail("add-security-rule requires resourceId"), nil
		}
		if c.Rule == nil {
			return envelope.Fail("add-security-rule requires a rule object"), nil
		}
		r, err := d.svc.AddNetworkSecurityGroupRule(ctx, backend.NSGRuleRequest{
			GroupID: c.ResourceID,
			Rule: backend.SecurityRule{
				Direction:   c.Rule.Direction,
				Protocol:    c.Rule.Protocol,
				Source:      c.Rule.Source,
				Destination: c.Rule.Destination,
				Description: c.Rule.Description,
			},
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.ActionMessage("Security rule", "addition", c.ResourceID), c.ResourceID), nil

	case "remove-security-rule":
		if c.ResourceType != "network-security-group" {
			return envelope.Fail("remove-security-rule is only valid for network-security-group"), nil
		}
		if c.ResourceID == "" {
			return envelope.Fail("remove-security-rule requires resourceId"), nil
		}
		if c.RuleID == "" {
			return envelope.Fail("remove-security-rule requires ruleId"), nil
		}
		if err := d.svc.RemoveNetworkSecurityGroupRule(ctx, c.ResourceID, c.RuleID); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("Security rule", "removal", c.RuleID), c.ResourceID), nil
	}

	return nil, &tools.UnsupportedOperationError{Value: "manage " + c.Verb}
}

func (d *Dispatcher) delete(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	if c.ResourceID == "" {
		return envelope.Fail("delete requires resourceId"), nil
	}

	var err error
	switch c.ResourceType {
	case "bucket":
		if c.NamespaceName == "" {
			return envelope.Fail("deleting a bucket requires namespaceName"), nil
		}
		err = d.svc.DeleteBucket(ctx, backend.BucketRef{NamespaceName: c.NamespaceName, BucketName: c.ResourceID})
	case "volume":
		err = d.svc.DeleteVolume(ctx, c.ResourceID)
	case "vcn":
		err = d.svc.DeleteVCN(ctx, c.ResourceID)
	case "subnet":
		err = d.svc.DeleteSubnet(ctx, c.ResourceID)
	case "network-security-group":
		err = d.svc.DeleteNetworkSecurityGroup(ctx, c.ResourceID)
	default:
		return nil, &tools.UnsupportedOperationError{Value: "delete " + c.ResourceType}
	}
	if err != nil {
		return nil, err
	}
	return envelope.NewOperation(nil, envelope.ActionMessage(kindName(c.ResourceType), "deletion", c.ResourceID), c.ResourceID), nil
}

// kindName renders a resource type for messages: "vcn" → "VCN",
// "network-security-group" → "Network security group".
func kindName(resourceType string) string {
	switch resourceType {
	case "vcn":
		return "VCN"
	case "network-security-group":
		return "Network security group"
	case "bucket":
		return "Bucket"
	case "volume":
		return "Volume"
	case "subnet":
		return "Subnet"
	}
	return resourceType
}
