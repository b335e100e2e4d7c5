// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package backend

// Request shapes consumed by the provider connection. Dispatchers construct
// these fully resolved: defaults applied, required fields verified.

// ------------------------------------------------------------------
// Compute
// ------------------------------------------------------------------

// LaunchInstanceRequest creates a compute instance.
type LaunchInstanceRequest struct {
	CompartmentID      string
	AvailabilityDomain string
	Shape              string
	ImageID            string
	SubnetID           string
	DisplayName        string
	SSHAuthorizedKeys  string
}

// InstanceActionRequest performs a power action on an instance.
type InstanceActionRequest struct {
	InstanceID string
	Action     string // START, STOP, SOFTRESET
}

// UpdateInstanceRequest changes mutable instance fields.
type UpdateInstanceRequest struct {
	InstanceID  string
	DisplayName string
}

// AttachVolumeRequest attaches a block volume to an instance.
type AttachVolumeRequest struct {
	InstanceID string
	VolumeID   string
}

// ------------------------------------------------------------------
// Storage & network
// ------------------------------------------------------------------

// BucketRef names a bucket within an object storage namespace.
type BucketRef struct {
	NamespaceName string
	BucketName    string
}

// ListBucketsRequest lists buckets in a namespace and compartment.
type ListBucketsRequest struct {
	NamespaceName string
	Filter        ListFilter
}

// ListObjectsRequest lists objects in a bucket.
type ListObjectsRequest struct {
	NamespaceName string
	BucketName    string
	Prefix        string
	Limit         int
}

// ListSubnetsRequest lists subnets, optionally scoped to one VCN.
type ListSubnetsRequest struct {
	VcnID  string
	Filter ListFilter
}

// CreateBucketRequest creates an object storage bucket.
type CreateBucketRequest struct {
	NamespaceName string
	CompartmentID string
	Name          string
	StorageTier   string
	PublicAccess  string
}

// CreateVolumeRequest creates a block volume.
type CreateVolumeRequest struct {
	CompartmentID      string
	AvailabilityDomain string
	DisplayName        string
	SizeInGBs          int
	VpusPerGB          int
}

// CreateVCNRequest creates a virtual cloud network.
type CreateVCNRequest struct {
	CompartmentID string
	CidrBlock     string
	DisplayName   string
	DNSLabel      string
}

// CreateSubnetRequest creates a subnet inside a VCN.
type CreateSubnetRequest struct {
	CompartmentID string
	VcnID         string
	CidrBlock     string
	DisplayName   string
	DNSLabel      string
}

// CreateNSGRequest creates a network security group. Inline rules are applied
// by the dispatcher with one AddNetworkSecurityGroupRule call per rule.
type CreateNSGRequest struct {
	CompartmentID string
	VcnID         string
	DisplayName   string
}

// SecurityRule is one ingress/egress rule on a network security group.
type SecurityRule struct {
	Direction   string // INGRESS or EGRESS
	Protocol    string // "6" TCP, "17" UDP, "1" ICMP, "all"
	Source      string
	Destination string
	Description string
}

// NSGRuleRequest adds one rule to an existing group.
type NSGRuleRequest struct {
	GroupID string
	Rule    SecurityRule
}

// ------------------------------------------------------------------
// Database & analytics
// ------------------------------------------------------------------

// ListDatabasesRequest lists databases under a DB system or a DB home.
// Exactly one of DbSystemID / DbHomeID is set; the dispatcher rejects the
// call before it reaches the connection when both are absent.
type ListDatabasesRequest struct {
	CompartmentID string
	DbSystemID    string
	DbHomeID      string
	Limit         int
}

// CreateAutonomousDatabaseRequest creates an autonomous database. The
// dispatcher fills DbWorkload, LicenseModel and the two booleans with their
// documented defaults before the connection sees the request.
type CreateAutonomousDatabaseRequest struct {
	CompartmentID        string
	DbName               string
	DisplayName          string
	CpuCoreCount         int
	DataStorageSizeInTBs int
	AdminPassword        string
	DbWorkload           string // OLTP or DW
	LicenseModel         string // LICENSE_INCLUDED or BRING_YOUR_OWN_LICENSE
	IsAutoScalingEnabled bool
	IsFreeTier           bool
	CharacterSet         string
}

// CreateDatabaseRequest creates a database within a DB home.
type CreateDatabaseRequest struct {
	DbHomeID      string
	DbName        string
	AdminPassword string
	CharacterSet  string
}

// CreateBackupRequest creates an on-demand database backup.
type CreateBackupRequest struct {
	DatabaseID  string
	DisplayName string
}

// ScaleAutonomousDatabaseRequest resizes an autonomous database. Zero-valued
// fields are left untouched; at least one is set.
type ScaleAutonomousDatabaseRequest struct {
	DatabaseID           string
	CpuCoreCount         int
	DataStorageSizeInTBs int
}

// CloneAutonomousDatabaseRequest clones an autonomous database.
type CloneAutonomousDatabaseRequest struct {
	SourceID      string
	CompartmentID string
	DbName        string
	DisplayName   string
	CloneType     string // FULL or METADATA
}

// RestoreAutonomousDatabaseRequest restores to a point in time.
type RestoreAutonomousDatabaseRequest struct {
	DatabaseID string
	Timestamp  string // RFC 3339
}

// UpdateAutonomousDatabaseRequest changes mutable database fields.
type UpdateAutonomousDatabaseRequest struct {
	DatabaseID  string
	DisplayName string
}

// DbSystemActionRequest performs a power action on a DB system node.
type DbSystemActionRequest struct {
	DbSystemID string
	Action     string // START, STOP, RESET
}

// UpdateDbSystemRequest changes mutable DB system fields.
type UpdateDbSystemRequest struct {
	DbSystemID  string
	DisplayName string
}

// ------------------------------------------------------------------
// Monitoring & security
// ------------------------------------------------------------------

// ListMetricsRequest lists metric definitions in a namespace.
type ListMetricsRequest struct {
	CompartmentID string
	NamespaceName string
	Limit         int
}

// CreateAlarmRequest creates a monitoring alarm.
type CreateAlarmRequest struct {
	CompartmentID string
	DisplayName   string
	NamespaceName string
	Query         string
	Severity      string
	Destinations  []string
	IsEnabled     bool
}

// UpdateAlarmRequest changes alarm state or fields; used for the
// enable-alarm / disable-alarm verbs.
type UpdateAlarmRequest struct {
	AlarmID     string
	DisplayName string
	IsEnabled   *bool
}

// UpdateUserRequest changes an IAM user's description.
type UpdateUserRequest struct {
	UserID      string
	Description string
}

// UpdateGroupRequest changes an IAM group's description.
type UpdateGroupRequest struct {
	GroupID     string
	Description string
}

// UpdatePolicyRequest changes an IAM policy's description or statements.
type UpdatePolicyRequest struct {
	PolicyID    string
	Description string
	Statements  []string
}

// CreateUserRequest creates an IAM user.
type CreateUserRequest struct {
	CompartmentID string
	Name          string
	Description   string
	Email         string
}

// CreateGroupRequest creates an IAM group.
type CreateGroupRequest struct {
	CompartmentID string
	Name          string
	Description   string
}

// CreatePolicyRequest creates an IAM policy.
type CreatePolicyRequest struct {
	CompartmentID string
	Name          string
	Description   string
	Statements    []string
}

// GroupMembershipRequest adds or removes a user from a group.
type GroupMembershipRequest struct {
	GroupID string
	UserID  string
}
