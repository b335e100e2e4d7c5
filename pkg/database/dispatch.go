// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package database

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

// ToolName is the database tool's wire name.
const ToolName = "oci_database"

const toolDescription = "List, get, create and manage OCI database resources: " +
	"autonomous databases, DB systems, databases, DB homes and backups. " +
	"Manage verbs: start, stop, restart, scale, clone, restore, delete, update."

// Defaults applied to autonomous database creation when the payload omits
// the field.
const (
	DefaultWorkload     = "OLTP"
	DefaultLicenseModel = "LICENSE_INCLUDED"
	DefaultCharacterSet = "AL32UTF8"
	DefaultCloneType    = "FULL"
)

// Dispatcher routes validated database calls to the provider connection.
type Dispatcher struct {
	svc backend.Database
	cfg *config.Config
	log *slog.Logger
}

// NewDispatcher builds the database dispatcher over a shared connection.
func NewDispatcher(conn backend.Connection, cfg *config.Config, log *slog.Logger) *Dispatcher {
	return &Dispatcher{svc: conn.Database(), cfg: cfg, log: log}
}

// NewTool wraps the dispatcher as the oci_database catalog tool.
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

	// Databases live under a DB system or DB home, not a bare compartment.
	if c.ResourceType == "databases" {
		if c.DbSystemID == "" && c.DbHomeID == "" {
			return envelope.Fail("listing databases requires either dbSystemId or dbHomeId"), nil
		}
		page, err := d.svc.ListDatabases(ctx, backend.ListDatabasesRequest{
			CompartmentID: compartment,
			DbSystemID:    c.DbSystemID,
			DbHomeID:      c.DbHomeID,
			Limit:         limit,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewList(page, c.ResourceType), nil
	}

	if compartment == "" {
		return envelope.Fail("compartmentId is required: no default compartment is configured"), nil
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
	case "autonomous-databases":
		page, err = d.svc.ListAutonomousDatabases(ctx, f)
	case "db-systems":
		page, err = d.svc.ListDbSystems(ctx, f)
	case "db-homes":
		page, err = d.svc.ListDbHomes(ctx, f)
	case "backups":
		page, err = d.svc.ListBackups(ctx, f)
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
	case "autonomous-database":
		r, err = d.svc.GetAutonomousDatabase(ctx, c.ResourceID)
	case "db-system":
		r, err = d.svc.GetDbSystem(ctx, c.ResourceID)
	case "database":
		r, err = d.svc.GetDatabase(ctx, c.ResourceID)
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
	case "autonomous-database":
		req := buildAutonomousRequest(c.Autonomous)
		r, err := d.svc.CreateAutonomousDatabase(ctx, req)
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Autonomous database", req.DisplayName), ""), nil

	case "database":
		data := c.Database
		charset := data.CharacterSet
		if charset == "" {
			charset = DefaultCharacterSet
		}
		r, err := d.svc.CreateDatabase(ctx, backend.CreateDatabaseRequest{
			DbHomeID:      data.DbHomeID,
			DbName:        data.DbName,
			AdminPassword: data.AdminPassword,
			CharacterSet:  charset,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Database", data.DbName), ""), nil

	case "backup":
		data := c.Backup
		name := data.DisplayName
		if name == "" {
			name = dispatch.GeneratedName("backup")
		}
		r, err := d.svc.CreateBackup(ctx, backend.CreateBackupRequest{
			DatabaseID:  data.DatabaseID,
			DisplayName: name,
		})
		if err != nil {
			return nil, err
		}
		return envelope.NewOperation(r, envelope.CreationMessage("Backup", name), data.DatabaseID), nil
	}

	return nil, &tools.UnsupportedOperationError{Value: "create " + c.ResourceType}
}

// buildAutonomousRequest applies the documented creation defaults: OLTP
// workload, autoscaling off, paid tier, included license, AL32UTF8, and a
// timestamp-suffixed display name when absent.
func buildAutonomousRequest(data *AutonomousData) backend.CreateAutonomousDatabaseRequest {
	req := backend.CreateAutonomousDatabaseRequest{
		CompartmentID:        data.CompartmentID,
		DbName:               data.DbName,
		DisplayName:          data.DisplayName,
		CpuCoreCount:         data.CpuCoreCount,
		DataStorageSizeInTBs: data.DataStorageSizeInTBs,
		AdminPassword:        data.AdminPassword,
		DbWorkload:           data.DbWorkload,
		LicenseModel:         data.LicenseModel,
		IsAutoScalingEnabled: data.IsAutoScalingEnabled,
		IsFreeTier:           data.IsFreeTier,
		CharacterSet:         data.CharacterSet,
	}
	if req.DisplayName == "" {
		req.DisplayName = dispatch.GeneratedName("adb")
	}
	if req.DbWorkload == "" {
		req.DbWorkload = DefaultWorkload
	}
	if req.LicenseModel == "" {
		req.LicenseModel = DefaultLicenseModel
	}
	if req.CharacterSet == "" {
		req.CharacterSet = DefaultCharacterSet
	}
	return req
}

func (d *Dispatcher) manage(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	if c.ResourceID == "" {
		return envelope.Fail(c.Verb + " requires resourceId"), nil
	}

	if c.ResourceType == "db-system" {
		return d.manageDbSystem(ctx, c)
	}

	switch c.Verb {
	case "start":
		r, err := d.svc.StartAutonomousDatabase(ctx, c.ResourceID)
		return operation(r, err, "Autonomous database", "start", c.ResourceID)
	case "stop":
		r, err := d.svc.StopAutonomousDatabase(ctx, c.ResourceID)
		return operation(r, err, "Autonomous database", "stop", c.ResourceID)
	case "restart":
		r, err := d.svc.RestartAutonomousDatabase(ctx, c.ResourceID)
		return operation(r, err, "Autonomous database", "restart", c.ResourceID)

	case "scale":
		if c.CpuCoreCount == 0 && c.DataStorageSizeInTBs == 0 {
			return envelope.Fail("scale requires at least one of cpuCoreCount or dataStorageSizeInTBs"), nil
		}
		r, err := d.svc.ScaleAutonomousDatabase(ctx, backend.ScaleAutonomousDatabaseRequest{
			DatabaseID:           c.ResourceID,
			CpuCoreCount:         c.CpuCoreCount,
			DataStorageSizeInTBs: c.DataStorageSizeInTBs,
		})
		return operation(r, err, "Autonomous database", "scaling", c.ResourceID)

	case "clone":
		compartment := c.CompartmentID
		if compartment == "" {
			compartment = d.cfg.CompartmentID
		}
		dbName := c.DbName
		if dbName == "" {
			return envelope.Fail("clone requires dbName for the new database"), nil
		}
		cloneType := c.CloneType
		if cloneType == "" {
			cloneType = DefaultCloneType
		}
		r, err := d.svc.CloneAutonomousDatabase(ctx, backend.CloneAutonomousDatabaseRequest{
			SourceID:      c.ResourceID,
			CompartmentID: compartment,
			DbName:        dbName,
			DisplayName:   c.DisplayName,
			CloneType:     cloneType,
		})
		return operation(r, err, "Autonomous database", "clone", c.ResourceID)

	case "restore":
		if c.Timestamp == "" {
			return envelope.Fail("restore requires timestamp (RFC 3339)"), nil
		}
		r, err := d.svc.RestoreAutonomousDatabase(ctx, backend.RestoreAutonomousDatabaseRequest{
			DatabaseID: c.ResourceID,
			Timestamp:  c.Timestamp,
		})
		return operation(r, err, "Autonomous database", "restore", c.ResourceID)

	case "delete":
		if err := d.svc.DeleteAutonomousDatabase(ctx, c.ResourceID); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("Autonomous database", "deletion", c.ResourceID), c.ResourceID), nil

	case "update":
		if c.DisplayName == "" {
			return envelope.Fail("update requires displayName"), nil
		}
		r, err := d.svc.UpdateAutonomousDatabase(ctx, backend.UpdateAutonomousDatabaseRequest{
			DatabaseID:  c.ResourceID,
			DisplayName: c.DisplayName,
		})
		return operation(r, err, "Autonomous database", "update", c.ResourceID)
	}

	return nil, &tools.UnsupportedOperationError{Value: "manage " + c.Verb}
}

// dbSystemActions maps power verbs onto the provider's action names.
var dbSystemActions = map[string]string{
	"start":   "START",
	"stop":    "STOP",
	"restart": "RESET",
}

// manageDbSystem handles the DB system subset: power actions, delete and
// update. The autonomous-only verbs (scale, clone, restore) are a rejected
// precondition here, never a provider call.
func (d *Dispatcher) manageDbSystem(ctx context.Context, c *ManageCall) (envelope.Envelope, error) {
	if action, ok := dbSystemActions[c.Verb]; ok {
		r, err := d.svc.DbSystemAction(ctx, backend.DbSystemActionRequest{
			DbSystemID: c.ResourceID,
			Action:     action,
		})
		return operation(r, err, "DB system", c.Verb, c.ResourceID)
	}

	switch c.Verb {
	case "delete":
		if err := d.svc.TerminateDbSystem(ctx, c.ResourceID); err != nil {
			return nil, err
		}
		return envelope.NewOperation(nil, envelope.ActionMessage("DB system", "termination", c.ResourceID), c.ResourceID), nil

	case "update":
		if c.DisplayName == "" {
			return envelope.Fail("update requires displayName"), nil
		}
		r, err := d.svc.UpdateDbSystem(ctx, backend.UpdateDbSystemRequest{
			DbSystemID:  c.ResourceID,
			DisplayName: c.DisplayName,
		})
		return operation(r, err, "DB system", "update", c.ResourceID)
	}

	return envelope.Fail(c.Verb + " is only valid for the autonomous-database resource type"), nil
}

func operation(r backend.Resource, err error, kind, verb, id string) (envelope.Envelope, error) {
	if err != nil {
		return nil, err
	}
	return envelope.NewOperation(r, envelope.ActionMessage(kind, verb, id), id), nil
}
