// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package monitoring

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ------------------------------------------------------------------
// Test doubles
// ------------------------------------------------------------------

type spyMonitoring struct {
	calls int

	listFilter     *backend.ListFilter
	listMetricsReq *backend.ListMetricsRequest
	listPage       *backend.ListPage
	listErr        error

	getID       string
	getResource backend.Resource
	getErr      error

	createdAlarm  *backend.CreateAlarmRequest
	createdUser   *backend.CreateUserRequest
	createdGroup  *backend.CreateGroupRequest
	createdPolicy *backend.CreatePolicyRequest

	updatedAlarm  *backend.UpdateAlarmRequest
	updatedUser   *backend.UpdateUserRequest
	updatedGroup  *backend.UpdateGroupRequest
	updatedPolicy *backend.UpdatePolicyRequest
	membershipReq *backend.GroupMembershipRequest
	membershipOp  string
	deletedKind   string
	deletedID     string

	opResource backend.Resource
	opErr      error
}

func (s *spyMonitoring) page() (*backend.ListPage, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.listPage != nil {
		return s.listPage, nil
	}
	return &backend.ListPage{}, nil
}

func (s *spyMonitoring) list(f backend.ListFilter) (*backend.ListPage, error) {
	s.calls++
	s.listFilter = &f
	return s.page()
}

func (s *spyMonitoring) ListAlarms(_ context.Context, f backend.ListFilter) (*backend.ListPage, error) {
	return s.list(f)
}
func (s *spyMonitoring) ListMetrics(_ context.Context, req backend.ListMetricsRequest) (*backend.ListPage, error) {
	s.calls++
	s.listMetricsReq = &req
	return s.page()
}
func (s *spyMonitoring) ListUsers(_ context.Context, f backend.ListFilter) (*backend.ListPage, error) {
	return s.list(f)
}
func (s *spyMonitoring) ListGroups(_ context.Context, f backend.ListFilter) (*backend.ListPage, error) {
	return s.list(f)
}
func (s *spyMonitoring) ListPolicies(_ context.Context, f backend.ListFilter) (*backend.ListPage, error) {
	return s.list(f)
}
func (s *spyMonitoring) ListCompartments(_ context.Context, f backend.ListFilter) (*backend.ListPage, error) {
	return s.list(f)
}

func (s *spyMonitoring) get(id string) (backend.Resource, error) {
	s.calls++
	s.getID = id
	return s.getResource, s.getErr
}

func (s *spyMonitoring) GetAlarm(_ context.Context, id string) (backend.Resource, error) {
	return s.get(id)
}
func (s *spyMonitoring) GetUser(_ context.Context, id string) (backend.Resource, error) {
	return s.get(id)
}
func (s *spyMonitoring) GetGroup(_ context.Context, id string) (backend.Resource, error) {
	return s.get(id)
}
func (s *spyMonitoring) GetPolicy(_ context.Context, id string) (backend.Resource, error) {
	return s.get(id)
}
func (s *spyMonitoring) GetCompartment(_ context.Context, id string) (backend.Resource, error) {
	return s.get(id)
}

func (s *spyMonitoring) CreateAlarm(_ context.Context, req backend.CreateAlarmRequest) (backend.Resource, error) {
	s.calls++
	s.createdAlarm = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) CreateUser(_ context.Context, req backend.CreateUserRequest) (backend.Resource, error) {
	s.calls++
	s.createdUser = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) CreateGroup(_ context.Context, req backend.CreateGroupRequest) (backend.Resource, error) {
	s.calls++
	s.createdGroup = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) CreatePolicy(_ context.Context, req backend.CreatePolicyRequest) (backend.Resource, error) {
	s.calls++
	s.createdPolicy = &req
	return s.opResource, s.opErr
}

func (s *spyMonitoring) UpdateAlarm(_ context.Context, req backend.UpdateAlarmRequest) (backend.Resource, error) {
	s.calls++
	s.updatedAlarm = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) UpdateUser(_ context.Context, req backend.UpdateUserRequest) (backend.Resource, error) {
	s.calls++
	s.updatedUser = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) UpdateGroup(_ context.Context, req backend.UpdateGroupRequest) (backend.Resource, error) {
	s.calls++
	s.updatedGroup = &req
	return s.opResource, s.opErr
}
func (s *spyMonitoring) UpdatePolicy(_ context.Context, req backend.UpdatePolicyRequest) (backend.Resource, error) {
	s.calls++
	s.updatedPolicy = &req
	return s.opResource, s.opErr
}

func (s *spyMonitoring) del(kind, id string) error {
	s.calls++
	s.deletedKind = kind
	s.deletedID = id
	return s.opErr
}

func (s *spyMonitoring) DeleteAlarm(_ context.Context, id string) error  { return s.del("alarm", id) }
func (s *spyMonitoring) DeleteUser(_ context.Context, id string) error   { return s.del("user", id) }
func (s *spyMonitoring) DeleteGroup(_ context.Context, id string) error  { return s.del("group", id) }
func (s *spyMonitoring) DeletePolicy(_ context.Context, id string) error { return s.del("policy", id) }

func (s *spyMonitoring) AddUserToGroup(_ context.Context, req backend.GroupMembershipRequest) (backend.Resource, error) {
	s.calls++
	s.membershipReq = &req
	s.membershipOp = "add"
	return s.opResource, s.opErr
}
func (s *spyMonitoring) RemoveUserFromGroup(_ context.Context, req backend.GroupMembershipRequest) error {
	s.calls++
	s.membershipReq = &req
	s.membershipOp = "remove"
	return s.opErr
}

type spyConnection struct {
	monitoring backend.MonitoringSecurity
}

func (c *spyConnection) Compute() backend.Compute                       { return nil }
func (c *spyConnection) StorageNetwork() backend.StorageNetwork         { return nil }
func (c *spyConnection) Database() backend.Database                     { return nil }
func (c *spyConnection) MonitoringSecurity() backend.MonitoringSecurity { return c.monitoring }
func (c *spyConnection) Close() error                                   { return nil }

func readyConfig() *config.Config {
	return &config.Config{
		TenancyOCID:    "ocid1.tenancy.oc1..test",
		UserOCID:       "ocid1.user.oc1..test",
		KeyFingerprint: "aa:bb:cc",
		PrivateKeyPath: "/tmp/key.pem",
		Region:         "us-ashburn-1",
		CompartmentID:  "ocid1.compartment.oc1..default",
	}
}

func newTool(spy *spyMonitoring, cfg *config.Config) tools.Tool {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTool(&spyConnection{monitoring: spy}, cfg, log)
}

func decodeResult(t *testing.T, res *tools.ToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text), &payload))
	return payload
}

// ------------------------------------------------------------------
// list
// ------------------------------------------------------------------

func TestListMetricsRequiresNamespace(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "list",
		"resourceType": "metrics",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "listing metrics requires namespaceName", payload["message"])
	assert.Zero(t, spy.calls)
}

func TestListMetricsPassesNamespace(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	_, err := tool.Execute(context.Background(), map[string]any{
		"action":        "list",
		"resourceType":  "metrics",
		"namespaceName": "oci_computeagent",
	})
	require.NoError(t, err)

	require.NotNil(t, spy.listMetricsReq)
	assert.Equal(t, "oci_computeagent", spy.listMetricsReq.NamespaceName)
	assert.Equal(t, "ocid1.compartment.oc1..default", spy.listMetricsReq.CompartmentID)
}

func TestListCompartments(t *testing.T) {
	spy := &spyMonitoring{listPage: &backend.ListPage{
		Items: []backend.Resource{
			{"id": "ocid1.compartment.oc1..a"},
			{"id": "ocid1.compartment.oc1..b"},
			{"id": "ocid1.compartment.oc1..c"},
		},
	}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "list",
		"resourceType": "compartments",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.EqualValues(t, 3, payload["count"])
	assert.Equal(t, "Found 3 compartments", payload["message"])
}

// ------------------------------------------------------------------
// create
// ------------------------------------------------------------------

func TestCreateAlarmAppliesDefaults(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.alarm.oc1..new"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "create",
		"resourceType": "alarm",
		"data": map[string]any{
			"compartmentId": "ocid1.compartment.oc1..x",
			"namespaceName": "oci_computeagent",
			"query":         "CpuUtilization[1m].mean() > 80",
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.createdAlarm)
	assert.Equal(t, "WARNING", spy.createdAlarm.Severity)
	assert.Regexp(t, `^alarm-\d{8}-\d{6}$`, spy.createdAlarm.DisplayName)
	assert.Equal(t, "CpuUtilization[1m].mean() > 80", spy.createdAlarm.Query)
}

func TestCreatePolicyRequiresStatements(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	_, err := tool.Execute(context.Background(), map[string]any{
		"action":       "create",
		"resourceType": "policy",
		"data": map[string]any{
			"compartmentId": "ocid1.compartment.oc1..x",
			"name":          "readers",
			"description":   "Read-only access",
			"statements":    []any{},
		},
	})
	var invalid *tools.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, spy.calls)
}

func TestCreatePolicy(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.policy.oc1..new"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "create",
		"resourceType": "policy",
		"data": map[string]any{
			"compartmentId": "ocid1.compartment.oc1..x",
			"name":          "readers",
			"description":   "Read-only access",
			"statements":    []any{"Allow group readers to read all-resources in tenancy"},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.createdPolicy)
	assert.Equal(t, []string{"Allow group readers to read all-resources in tenancy"}, spy.createdPolicy.Statements)

	payload := decodeResult(t, res)
	assert.Equal(t, "Policy creation initiated: readers", payload["message"])
}

// ------------------------------------------------------------------
// manage
// ------------------------------------------------------------------

func TestManageDisableAlarm(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.alarm.oc1..a"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "alarm",
		"verb":         "disable-alarm",
		"resourceId":   "ocid1.alarm.oc1..a",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.updatedAlarm)
	require.NotNil(t, spy.updatedAlarm.IsEnabled)
	assert.False(t, *spy.updatedAlarm.IsEnabled)

	payload := decodeResult(t, res)
	assert.Equal(t, "Alarm disablement initiated: ocid1.alarm.oc1..a", payload["message"])
}

func TestManageEnableAlarm(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.alarm.oc1..a"}}
	tool := newTool(spy, readyConfig())

	_, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "alarm",
		"verb":         "enable-alarm",
		"resourceId":   "ocid1.alarm.oc1..a",
	})
	require.NoError(t, err)

	require.NotNil(t, spy.updatedAlarm)
	require.NotNil(t, spy.updatedAlarm.IsEnabled)
	assert.True(t, *spy.updatedAlarm.IsEnabled)
}

func TestManageAlarmVerbOnWrongType(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "user",
		"verb":         "disable-alarm",
		"resourceId":   "ocid1.user.oc1..u",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "disable-alarm is only valid for the alarm resource type", payload["message"])
	assert.Zero(t, spy.calls)
}

func TestManageAddUserToGroup(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.groupmembership.oc1..m"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "group",
		"verb":         "add-user-to-group",
		"resourceId":   "ocid1.group.oc1..g",
		"userId":       "ocid1.user.oc1..u",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.membershipReq)
	assert.Equal(t, "add", spy.membershipOp)
	assert.Equal(t, "ocid1.group.oc1..g", spy.membershipReq.GroupID)
	assert.Equal(t, "ocid1.user.oc1..u", spy.membershipReq.UserID)
}

func TestManageMembershipRequiresUserID(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "group",
		"verb":         "remove-user-from-group",
		"resourceId":   "ocid1.group.oc1..g",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "remove-user-from-group requires userId", payload["message"])
	assert.Zero(t, spy.calls)
}

func TestManageDeleteUser(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "user",
		"verb":         "delete",
		"resourceId":   "ocid1.user.oc1..u",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "user", spy.deletedKind)
	assert.Equal(t, "ocid1.user.oc1..u", spy.deletedID)

	payload := decodeResult(t, res)
	assert.Equal(t, "User deletion initiated: ocid1.user.oc1..u", payload["message"])
}

func TestManageUpdateAlarmRequiresDisplayName(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "alarm",
		"verb":         "update",
		"resourceId":   "ocid1.alarm.oc1..a",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "update requires displayName", payload["message"])
	assert.Zero(t, spy.calls)
}

func TestManageUpdateUser(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.user.oc1..u"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "user",
		"verb":         "update",
		"resourceId":   "ocid1.user.oc1..u",
		"description":  "Team lead",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.updatedUser)
	assert.Equal(t, "ocid1.user.oc1..u", spy.updatedUser.UserID)
	assert.Equal(t, "Team lead", spy.updatedUser.Description)

	payload := decodeResult(t, res)
	assert.Equal(t, "User update initiated: ocid1.user.oc1..u", payload["message"])
}

func TestManageUpdateGroupRequiresDescription(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "group",
		"verb":         "update",
		"resourceId":   "ocid1.group.oc1..g",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "update requires description", payload["message"])
	assert.Zero(t, spy.calls)
}

func TestManageUpdatePolicyStatements(t *testing.T) {
	spy := &spyMonitoring{opResource: backend.Resource{"id": "ocid1.policy.oc1..p"}}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "policy",
		"verb":         "update",
		"resourceId":   "ocid1.policy.oc1..p",
		"statements":   []any{"Allow group readers to read all-resources in tenancy"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, spy.updatedPolicy)
	assert.Equal(t, "ocid1.policy.oc1..p", spy.updatedPolicy.PolicyID)
	assert.Equal(t, []string{"Allow group readers to read all-resources in tenancy"}, spy.updatedPolicy.Statements)
	assert.Empty(t, spy.updatedPolicy.Description)
}

func TestManageUpdatePolicyRequiresAChange(t *testing.T) {
	spy := &spyMonitoring{}
	tool := newTool(spy, readyConfig())

	res, err := tool.Execute(context.Background(), map[string]any{
		"action":       "manage",
		"resourceType": "policy",
		"verb":         "update",
		"resourceId":   "ocid1.policy.oc1..p",
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "update requires description or statements", payload["message"])
	assert.Zero(t, spy.calls)
}
