// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package backend defines the contract between ocimcp's dispatchers and the
// cloud provider connection that actually performs resource operations.
//
// The connection exposes one method per (service, operation) pair. Resource
// records returned by the provider are relayed as-is; ocimcp never interprets
// their fields beyond the identifier used for operation follow-up.
package backend

import "context"

// Resource is an opaque resource record returned by the provider. The core
// passes it through to the caller without inspecting its shape.
type Resource map[string]any

// ID returns the resource's identifier field, or "" when absent.
func (r Resource) ID() string {
	if id, ok := r["id"].(string); ok {
		return id
	}
	return ""
}

// ListPage is the result of a list operation: the fetched items plus an
// opaque continuation token when more pages exist.
type ListPage struct {
	Items    []Resource
	NextPage string
}

// ListFilter carries the list filters shared by every domain.
type ListFilter struct {
	CompartmentID  string
	Limit          int
	DisplayName    string
	LifecycleState string
}

// Connection aggregates the per-domain service clients. It is constructed
// once at startup, shared read-only by all dispatchers, and closed exactly
// once during graceful shutdown.
type Connection interface {
	Compute() Compute
	StorageNetwork() StorageNetwork
	Database() Database
	MonitoringSecurity() MonitoringSecurity
	Close() error
}

// Unconnected returns a Connection with no live services. It exists so the
// tool catalog can be introspected (names, descriptions, input schemas)
// without provider credentials. Invoking any operation on it panics.
func Unconnected() Connection { return unconnected{} }

type unconnected struct{}

func (unconnected) Compute() Compute                       { return nil }
func (unconnected) StorageNetwork() StorageNetwork         { return nil }
func (unconnected) Database() Database                     { return nil }
func (unconnected) MonitoringSecurity() MonitoringSecurity { return nil }
func (unconnected) Close() error                           { return nil }

// ------------------------------------------------------------------
// Compute service
// ------------------------------------------------------------------

// Compute covers instances, images, shapes and attachments.
type Compute interface {
	ListInstances(ctx context.Context, f ListFilter) (*ListPage, error)
	ListImages(ctx context.Context, f ListFilter) (*ListPage, error)
	ListShapes(ctx context.Context, f ListFilter) (*ListPage, error)
	ListVNICAttachments(ctx context.Context, f ListFilter) (*ListPage, error)
	ListVolumeAttachments(ctx context.Context, f ListFilter) (*ListPage, error)

	GetInstance(ctx context.Context, id string) (Resource, error)
	GetImage(ctx context.Context, id string) (Resource, error)
	GetVNICAttachment(ctx context.Context, id string) (Resource, error)

	LaunchInstance(ctx context.Context, req LaunchInstanceRequest) (Resource, error)

	// InstanceAction performs a power action (START, STOP, SOFTRESET).
	InstanceAction(ctx context.Context, req InstanceActionRequest) (Resource, error)
	TerminateInstance(ctx context.Context, id string) error
	UpdateInstance(ctx context.Context, req UpdateInstanceRequest) (Resource, error)
	AttachVolume(ctx context.Context, req AttachVolumeRequest) (Resource, error)
	DetachVolume(ctx context.Context, attachmentID string) error
}

// ------------------------------------------------------------------
// Storage & network service
// ------------------------------------------------------------------

// StorageNetwork covers object storage buckets/objects, block volumes and
// the virtual network primitives (VCNs, subnets, security groups).
type StorageNetwork interface {
	ListBuckets(ctx context.Context, req ListBucketsRequest) (*ListPage, error)
	ListObjects(ctx context.Context, req ListObjectsRequest) (*ListPage, error)
	ListVolumes(ctx context.Context, f ListFilter) (*ListPage, error)
	ListVCNs(ctx context.Context, f ListFilter) (*ListPage, error)
	ListSubnets(ctx context.Context, req ListSubnetsRequest) (*ListPage, error)
	ListNetworkSecurityGroups(ctx context.Context, f ListFilter) (*ListPage, error)

	GetBucket(ctx context.Context, req BucketRef) (Resource, error)
	GetVolume(ctx context.Context, id string) (Resource, error)
	GetVCN(ctx context.Context, id string) (Resource, error)
	GetSubnet(ctx context.Context, id string) (Resource, error)
	GetNetworkSecurityGroup(ctx context.Context, id string) (Resource, error)

	CreateBucket(ctx context.Context, req CreateBucketRequest) (Resource, error)
	CreateVolume(ctx context.Context, req CreateVolumeRequest) (Resource, error)
	CreateVCN(ctx context.Context, req CreateVCNRequest) (Resource, error)
	CreateSubnet(ctx context.Context, req CreateSubnetRequest) (Resource, error)
	CreateNetworkSecurityGroup(ctx context.Context, req CreateNSGRequest) (Resource, error)

	AddNetworkSecurityGroupRule(ctx context.Context, req NSGRuleRequest) (Resource, error)
	RemoveNetworkSecurityGroupRule(ctx context.Context, groupID, ruleID string) error

	DeleteBucket(ctx context.Context, req BucketRef) error
	DeleteVolume(ctx context.Context, id string) error
	DeleteVCN(ctx context.Context, id string) error
	DeleteSubnet(ctx context.Context, id string) error
	DeleteNetworkSecurityGroup(ctx context.Context, id string) error
}

// ------------------------------------------------------------------
// Database & analytics service
// ------------------------------------------------------------------

// Database covers autonomous databases, DB systems and backups.
type Database interface {
	ListAutonomousDatabases(ctx context.Context, f ListFilter) (*ListPage, error)
	ListDbSystems(ctx context.Context, f ListFilter) (*ListPage, error)
	ListDatabases(ctx context.Context, req ListDatabasesRequest) (*ListPage, error)
	ListDbHomes(ctx context.Context, f ListFilter) (*ListPage, error)
	ListBackups(ctx context.Context, f ListFilter) (*ListPage, error)

	GetAutonomousDatabase(ctx context.Context, id string) (Resource, error)
	GetDbSystem(ctx context.Context, id string) (Resource, error)
	GetDatabase(ctx context.Context, id string) (Resource, error)

	CreateAutonomousDatabase(ctx context.Context, req CreateAutonomousDatabaseRequest) (Resource, error)
	CreateDatabase(ctx context.Context, req CreateDatabaseRequest) (Resource, error)
	CreateBackup(ctx context.Context, req CreateBackupRequest) (Resource, error)

	StartAutonomousDatabase(ctx context.Context, id string) (Resource, error)
	StopAutonomousDatabase(ctx context.Context, id string) (Resource, error)
	RestartAutonomousDatabase(ctx context.Context, id string) (Resource, error)
	ScaleAutonomousDatabase(ctx context.Context, req ScaleAutonomousDatabaseRequest) (Resource, error)
	CloneAutonomousDatabase(ctx context.Context, req CloneAutonomousDatabaseRequest) (Resource, error)
	RestoreAutonomousDatabase(ctx context.Context, req RestoreAutonomousDatabaseRequest) (Resource, error)
	UpdateAutonomousDatabase(ctx context.Context, req UpdateAutonomousDatabaseRequest) (Resource, error)
	DeleteAutonomousDatabase(ctx context.Context, id string) error

	// DbSystemAction performs a power action (START, STOP, RESET) on a DB
	// system node.
	DbSystemAction(ctx context.Context, req DbSystemActionRequest) (Resource, error)
	UpdateDbSystem(ctx context.Context, req UpdateDbSystemRequest) (Resource, error)
	TerminateDbSystem(ctx context.Context, id string) error
}

// ------------------------------------------------------------------
// Monitoring & security service
// ------------------------------------------------------------------

// MonitoringSecurity covers alarms, metric namespaces and IAM resources.
type MonitoringSecurity interface {
	ListAlarms(ctx context.Context, f ListFilter) (*ListPage, error)
	ListMetrics(ctx context.Context, req ListMetricsRequest) (*ListPage, error)
	ListUsers(ctx context.Context, f ListFilter) (*ListPage, error)
	ListGroups(ctx context.Context, f ListFilter) (*ListPage, error)
	ListPolicies(ctx context.Context, f ListFilter) (*ListPage, error)
	ListCompartments(ctx context.Context, f ListFilter) (*ListPage, error)

	GetAlarm(ctx context.Context, id string) (Resource, error)
	GetUser(ctx context.Context, id string) (Resource, error)
	GetGroup(ctx context.Context, id string) (Resource, error)
	GetPolicy(ctx context.Context, id string) (Resource, error)
	GetCompartment(ctx context.Context, id string) (Resource, error)

	CreateAlarm(ctx context.Context, req CreateAlarmRequest) (Resource, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (Resource, error)
	CreateGroup(ctx context.Context, req CreateGroupRequest) (Resource, error)
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (Resource, error)

	UpdateAlarm(ctx context.Context, req UpdateAlarmRequest) (Resource, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (Resource, error)
	UpdateGroup(ctx context.Context, req UpdateGroupRequest) (Resource, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (Resource, error)
	DeleteAlarm(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	DeleteGroup(ctx context.Context, id string) error
	DeletePolicy(ctx context.Context, id string) error

	AddUserToGroup(ctx context.Context, req GroupMembershipRequest) (Resource, error)
	RemoveUserFromGroup(ctx context.Context, req GroupMembershipRequest) error
}
