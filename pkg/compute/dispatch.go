// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package compute

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

// ToolName is the compute tool's wire name.
const ToolName = "oci_compute"

const toolDescription = "List, get, create and manage OCI compute resources: " +
	"instances, images, shapes, VNIC attachments and volume attachments. " +
	"Manage verbs: start, stop, reboot, terminate, attach-volume, detach-volume, update."

// Dispatcher routes validated compute calls to the provider connection.
type Dispatcher struct {
	svc backend.Compute
	cfg *config.Config
	log *slog.Logger
}

// NewDispatcher builds the compute dispatcher over a shared connection.
func NewDispatcher(conn backend.Connection, cfg *config.Config, log *slog.Logger) *Dispatcher {
	return &Dispatcher{svc: conn.Compute(), cfg: cfg, log: log}
}

// NewTool wraps the dispatcher as the oci_compute catalog tool.
func NewTool(conn backend.Connection, cfg *config.Config, log *slog.Logger) *dispatch.Tool {
	return dispatch.NewTool(ToolName, toolDescription, InputSchema(), cfg, NewDispatcher(conn, cfg, log), log)
}

// ParseCall implements dispatch.Dispatcher.
func (d *Dispatcher) ParseCall(args map[string]any) (any, error) {
	return ParseCall(args)
}

// Dispatch implements dispatch.Dispatcher: exactly one provider call per
// action, provider errors returned unclassified.
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
	if compartment == "" {
		return envelope.Fail("compartmentId is required: no default compartment is configured"), nil
	}
	limit := c.Limit
	if limit == 0 {
		limit = dispatch.DefaultLimit
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
	case "instances":
		page, err = d.svc.ListInstances(ctx, f)
	case "images":
		page, err = d.svc.ListImages(ctx, f)
	case "shapes":
		page, err = d.svc.ListShapes(ctx, f)
	case "vnic-attachments":
		page, err = d.svc.ListVNICAttachments(ctx, f)
	case "volume-attachments":
		page, err = d.svc.ListVolumeAttachments(ctx, f)
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
	case "instance":
		r, err = d.svc.GetInstance(ctx, c.ResourceID)
	case "image":
		r, err = d.svc.GetImage(ctx, c.ResourceID)
	case "vnic-attachment":
		r, err = d.svc.GetVNICAttachment(ctx, c.ResourceID)
	default:
		return nil, &tools.UnsupportedOperationError{Value: "get " + c.ResourceType}
	}
	if err != nil {
		return nil, err
	}
	return envelope.NewDetail(r, c.ResourceType, c.ResourceID), nil
}

func (d *Dispatcher) create(ctx context.Context, c *CreateCall) (envelope.Envelope, error) {
	if c.ResourceType != "instance" || c.Instance == nil {
		return nil, &tools.UnsupportedOperationError{Value: "create " + c.ResourceType}
	}

	data := c.Instance
	name := data.DisplayName
	if name == "" {
		name = dispatch.GeneratedName("instance")
	}
	req := backend.LaunchInstanceRequest{
		CompartmentID:      data.CompartmentID,
		AvailabilityDomain: data.AvailabilityDomain,
		Shape:              data.Shape,
		ImageID:            data.ImageID,
		SubnetID:           data.SubnetID,
		DisplayName:        name,
		SSHAuthorizedKeys:  data.SSHAuthorizedKeys,
	}

	r, err := d.svc.LaunchInstance(ctx, req)
	if err != nil {
		return nil, err
	}
	return envelope.NewOperation(r, envelope.CreationMessage("Instance", name), ""), nil
}

// instanceActions maps manage verbs onto the provider's power action names.
var instanceActions = map[string]string{
	"start":  "START",
	"stop":   "STOP",
	"reboot": "SOFTRESET",
}

func (d *Dispatcher) manage(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	switch c.Verb {
	case "start", "stop", "reboot":
		if c.ResourceID == "" {
			return envelope.Fail(c.Verb + " requires resourceId"), nil
		}
		r, err := d.svc.InstanceAction(ctx, backend.InstanceActionRequest{
			InstanceID: c.ResourceID,
			Action:     instanceActions[c.Verb],
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.ActionMessage("Instance", c.Verb, c.ResourceID), c.ResourceID), nil

	case "terminate":
		if c.ResourceID == "" {
			return envelope.Fail("terminate requires resourceId"), nil
		}
		if err := d.svc.TerminateInstance(ctx, c.ResourceID); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("Instance", "termination", c.ResourceID), c.ResourceID), nil

	case "attach-volume":
		instanceID := c.InstanceID
		if instanceID == "" {
			instanceID = c.ResourceID
		}
		if instanceID == "" || c.VolumeID == "" {
			return envelope.Fail("attach-volume requires both instanceId and volumeId"), nil
		}
		r, err := d.svc.AttachVolume(ctx, backend.AttachVolumeRequest{
			InstanceID: instanceID,
			VolumeID:   c.VolumeID,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.ActionMessage("Volume", "attachment", c.VolumeID), c.VolumeID), nil

	case "detach-volume":
		if c.AttachmentID == "" {
			return envelope.Fail("detach-volume requires attachmentId"), nil
		}
		if err := d.svc.DetachVolume(ctx, c.AttachmentID); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("Volume", "detachment", c.AttachmentID), c.AttachmentID), nil

	case "update":
		if c.ResourceID == "" {
			return envelope.Fail("update requires resourceId"), nil
		}
		if c.DisplayName == "" {
			return envelope.Fail("update requires displayName"), nil
		}
		r, err := d.svc.UpdateInstance(ctx, backend.UpdateInstanceRequest{
			InstanceID:  c.ResourceID,
			DisplayName: c.DisplayName,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.ActionMessage("Instance", "update", c.ResourceID), c.ResourceID), nil
	}

	return nil, &tools.UnsupportedOperationError{Value: "manage " + c.Verb}
}
