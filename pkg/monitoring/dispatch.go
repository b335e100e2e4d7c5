// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package monitoring

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

// ToolName is the monitoring-security tool's wire name.
const ToolName = "oci_monitoring_security"

const toolDescription = "List, get, create and manage OCI monitoring and identity resources: " +
	"alarms, metrics, users, groups, policies and compartments. " +
	"Manage verbs: enable-alarm, disable-alarm, delete, update, add-user-to-group, remove-user-from-group."

// Dispatcher routes validated monitoring/identity calls to the provider.
type Dispatcher struct {
	svc backend.MonitoringSecurity
	cfg *config.Config
	log *slog.Logger
}

// NewDispatcher builds the monitoring dispatcher over a shared connection.
func NewDispatcher(conn backend.Connection, cfg *config.Config, log *slog.Logger) *Dispatcher {
	return &Dispatcher{svc: conn.MonitoringSecurity(), cfg: cfg, log: log}
}

// NewTool wraps the dispatcher as the oci_monitoring_security catalog tool.
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
	if compartment == "" {
		return envelope.Fail("compartmentId is required: no default compartment is configured"), nil
	}
	limit := c.Limit
	if limit == 0 {
		limit = dispatch.DefaultLimit
	}

	if c.ResourceType == "metrics" {
		if c.NamespaceName == "" {
			return envelope.Fail("listing metrics requires namespaceName"), nil
		}
		page, err := d.svc.ListMetrics(ctx, backend.ListMetricsRequest{
			CompartmentID: compartment,
			NamespaceName: c.NamespaceName,
			Limit:         limit,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewList(page, c.ResourceType), nil
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
	case "alarms":
		page, err = d.svc.ListAlarms(ctx, f)
	case "users":
		page, err = d.svc.ListUsers(ctx, f)
	case "groups":
		page, err = d.svc.ListGroups(ctx, f)
	case "policies":
		page, err = d.svc.ListPolicies(ctx, f)
	case "compartments":
		page, err = d.svc.ListCompartments(ctx, f)
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
	case "alarm":
		r, err = d.svc.GetAlarm(ctx, c.ResourceID)
	case "user":
		r, err = d.svc.GetUser(ctx, c.ResourceID)
	case "group":
		r, err = d.svc.GetGroup(ctx, c.ResourceID)
	case "policy":
		r, err = d.svc.GetPolicy(ctx, c.ResourceID)
	case "compartment":
		r, err = d.svc.GetCompartment(ctx, c.ResourceID)
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
	case "alarm":
		data := c.Alarm
		name := data.DisplayName
		if name == "" {
			name = dispatch.GeneratedName("alarm")
		}
		severity := data.Severity
		if severity == "" {
			severity = "WARNING"
		}
		r, err := d.svc.CreateAlarm(ctx, backend.CreateAlarmRequest{
			CompartmentID: data.CompartmentID,
			DisplayName:   name,
			NamespaceName: data.NamespaceName,
			Query:         data.Query,
			Severity:      severity,
			Destinations:  data.Destinations,
			IsEnabled:     data.IsEnabled,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Alarm", name), ""), nil

	case "user":
		data := c.User
		r, err := d.svc.CreateUser(ctx, backend.CreateUserRequest{
			CompartmentID: data.CompartmentID,
			Name:          data.Name,
			Description:   data.Description,
			Email:         data.Email,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("User", data.Name), ""), nil

	case "group":
		data := c.Group
		r, err := d.svc.CreateGroup(ctx, backend.CreateGroupRequest{
			CompartmentID: data.CompartmentID,
			Name:          data.Name,
			Description:   data.Description,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Group", data.Name), ""), nil

	case "policy":
		data := c.Policy
		r, err := d.svc.CreatePolicy(ctx, backend.CreatePolicyRequest{
			CompartmentID: data.CompartmentID,
			Name:          data.Name,
			Description:   data.Description,
			Statements:    data.Statements,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Policy", data.Name), ""), nil
	}

	return nil, &tools.UnsupportedOperationError{Value: "create " + c.ResourceType}
}

func (d *Dispatcher) manage(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	if c.ResourceID == "" {
		return envelope.Fail(c.Verb + " requires resourceId"), nil
	}

	switch c.Verb {
	case "enable-alarm", "disable-alarm":
		if c.ResourceType != "alarm" {
			return envelope.Fail(c.Verb + " is only valid for the alarm resource type"), nil
		}
		enabled := c.Verb == "enable-alarm"
		r, err := d.svc.UpdateAlarm(ctx, backend.UpdateAlarmRequest{
			AlarmID:   c.ResourceID,
			IsEnabled: &enabled,
		})
		if err != nil {
			return nil, err
		}
		verb := "enablement"
		if !enabled {
			verb = "disablement"
		}
		return envelope.NewOperation(r, envelope.ActionMessage("Alarm", verb, c.ResourceID), c.ResourceID), nil

	case "add-user-to-group", "remove-user-from-group":
		if c.ResourceType != "group" {
			return envelope.Fail(c.Verb + " is only valid for the group resource type"), nil
		}
		if c.UserID == "" {
			return envelope.Fail(c.Verb + " requires userId"), nil
		}
		req := backend.GroupMembershipRequest{GroupID: c.ResourceID, UserID: c.UserID}
		if c.Verb == "add-user-to-group" {
			r, err := d.svc.AddUserToGroup(ctx, req)
			if err != nil {
				return nil, err
			}
			return envelope.NewOperation(r, envelope.ActionMessage("Group membership", "addition", c.UserID), c.ResourceID), nil
		}
		if err := d.svc.RemoveUserFromGroup(ctx, req); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("Group membership", "removal", c.UserID), c.ResourceID), nil

	case "delete":
		var err error
		switch c.ResourceType {
		case "alarm":
			err = d.svc.DeleteAlarm(ctx, c.ResourceID)
		case "user":
			err = d.svc.DeleteUser(ctx, c.ResourceID)
		case "group":
			err = d.svc.DeleteGroup(ctx, c.ResourceID)
		case "policy":
			err = d.svc.DeletePolicy(ctx, c.ResourceID)
		default:
			return nil, &tools.UnsupportedOperationError{Value: "delete " + c.ResourceType}
		}
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage(kindName(c.ResourceType), "deletion", c.ResourceID), c.ResourceID), nil

	case "update":
		return d.update(ctx, c)
	}

	return nil, &tools.UnsupportedOperationError{Value: "manage " + c.Verb}
}

// update routes the mutable-field change per resource type. Alarms take a
// new display name; users and groups take a description; policies take a
// description, new statements or both.
func (d *Dispatcher) update(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	var (
		r   backend.Resource
		err error
	)
	switch c.ResourceType {
	case "alarm":
		if c.DisplayName == "" {
			return envelope.Fail("update requires displayName"), nil
		}
		r, err = d.svc.UpdateAlarm(ctx, backend.UpdateAlarmRequest{
			AlarmID:     c.ResourceID,
			DisplayName: c.DisplayName,
		})
	case "user":
		if c.Description == "" {
			return envelope.Fail("update requires description"), nil
		}
		r, err = d.svc.UpdateUser(ctx, backend.UpdateUserRequest{
			UserID:      c.ResourceID,
			Description: c.Description,
		})
	case "group":
		if c.Description == "" {
			return envelope.Fail("update requires description"), nil
		}
		r, err = d.svc.UpdateGroup(ctx, backend.UpdateGroupRequest{
			GroupID:     c.ResourceID,
			Description: c.Description,
		})
	case "policy":
		if c.Description == "" && len(c.Statements) == 0 {
			return envelope.Fail("update requires description or statements"), nil
		}
		r, err = d.svc.UpdatePolicy(ctx, backend.UpdatePolicyRequest{
			PolicyID:    c.ResourceID,
			Description: c.Description,
			Statements:  c.Statements,
		})
	default:
		return nil, &tools.UnsupportedOperationError{Value: "update " + c.ResourceType}
	}
	if err != nil {
		return nil, err
	}
	return envelope.NewOperation(r, envelope.ActionMessage(kindName(c.ResourceType), "update", c.ResourceID), c.ResourceID), nil
}

func kindName(resourceType string) string {
	switch resourceType {
	case "alarm":
		return "Alarm"
	case "user":
		return "User"
	case "group":
		return "Group"
	case "policy":
		return "Policy"
	}
	return resourceType
}
