// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ocitools/ocimcp/pkg/tools"
)

// mockTool implements tools.Tool for testing.
type mockTool struct {
	name   string
	desc   string
	result *tools.ToolResult
	err    error
}

func (m *mockTool) Name() string        { return m.name }
func (m *mockTool) Description() string { return m.desc }
func (m *mockTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{"type": "string", "description": "Operation to perform"},
		},
		"required": []string{"action"},
	}
}
func (m *mockTool) Execute(_ context.Context, args map[string]any) (*tools.ToolResult, error) {
	return m.result, m.err
}

func newTestRegistry() *tools.Registry {
	reg := tools.NewRegistry()
	reg.Register(&mockTool{
		name:   "oci_echo",
		desc:   "Echoes input back",
		result: tools.NewToolResult(`{"success":true,"message":"hello world"}`),
	})
	reg.Register(&mockTool{
		name:   "oci_fail",
		desc:   "Always fails",
		result: tools.ErrorResult(`{"success":false,"message":"something broke"}`),
	})
	reg.Register(&mockTool{
		name: "oci_reject",
		desc: "Rejects its arguments",
		err:  tools.InvalidParams("action must be one of [list get create manage]"),
	})
	return reg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// roundTrip sends a JSON-RPC request line and returns the parsed response.
func roundTrip(t *testing.T, srv *Server, req Request) Response {
	t.Helper()

	input, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	input = append(input, '\n')

	var out bytes.Buffer
	srv.in = bytes.NewReader(input)
	srv.out = &out

	ctx := context.Background()
	if err := srv.Serve(ctx); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", out.String(), err)
	}
	return resp
}

func TestInitialize(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(1),
		Method:  "initialize",
		Params: InitializeParams{
			ProtocolVersion: ProtocolVersion,
			ClientInfo:      EntityInfo{Name: "test-client"},
		},
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result InitializeResult
	json.Unmarshal(raw, &result)

	if result.ProtocolVersion != ProtocolVersion {
		t.Errorf("protocol version = %q, want %q", result.ProtocolVersion, ProtocolVersion)
	}
	if result.ServerInfo.Name != ServerName {
		t.Errorf("server name = %q, want %q", result.ServerInfo.Name, ServerName)
	}
	if result.Capabilities.Tools == nil {
		t.Error("tools capability is nil")
	}
}

func TestToolsList(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(2),
		Method:  "tools/list",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result ToolsListResult
	json.Unmarshal(raw, &result)

	if len(result.Tools) != 3 {
		t.Fatalf("tools count = %d, want 3", len(result.Tools))
	}

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
		if tool.InputSchema == nil {
			t.Errorf("tool %q has nil inputSchema", tool.Name)
		}
	}
	if !names["oci_echo"] {
		t.Error("expected tool 'oci_echo' not found")
	}
	if !names["oci_fail"] {
		t.Error("expected tool 'oci_fail' not found")
	}
}

func TestToolsCall_Success(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(3),
		Method:  "tools/call",
		Params: map[string]any{
			"name":      "oci_echo",
			"arguments": map[string]any{"action": "list"},
		},
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result ToolCallResult
	json.Unmarshal(raw, &result)

	if result.IsError {
		t.Error("expected success, got isError=true")
	}
	if len(result.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(result.Content))
	}
	if !strings.Contains(result.Content[0].Text, "hello world") {
		t.Errorf("text = %q, expected to contain 'hello world'", result.Content[0].Text)
	}
}

// A business failure stays a successful JSON-RPC response with isError set.
func TestToolsCall_BusinessFailure(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(4),
		Method:  "tools/call",
		Params: map[string]any{
			"name":      "oci_fail",
			"arguments": map[string]any{"action": "list"},
		},
	})

	if resp.Error != nil {
		t.Fatalf("unexpected JSON-RPC error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result ToolCallResult
	json.Unmarshal(raw, &result)

	if !result.IsError {
		t.Error("expected isError=true for failing tool")
	}
	if !strings.Contains(result.Content[0].Text, "something broke") {
		t.Errorf("error text = %q, expected to contain 'something broke'", result.Content[0].Text)
	}
}

// An unknown tool is a protocol error, not a business failure.
func TestToolsCall_NotFound(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(5),
		Method:  "tools/call",
		Params: map[string]any{
			"name": "nonexistent",
		},
	})

	if resp.Error == nil {
		t.Fatal("expected JSON-RPC error for unknown tool")
	}
	if resp.Error.Code != ErrNotFound {
		t.Errorf("error code = %d, want %d", resp.Error.Code, ErrNotFound)
	}
}

// Malformed arguments surface as -32602 before any backend work happens.
func TestToolsCall_InvalidParams(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(6),
		Method:  "tools/call",
		Params: map[string]any{
			"name":      "oci_reject",
			"arguments": map[string]any{"action": "explode"},
		},
	})

	if resp.Error == nil {
		t.Fatal("expected JSON-RPC error for invalid params")
	}
	if resp.Error.Code != ErrInvalidParams {
		t.Errorf("error code = %d, want %d", resp.Error.Code, ErrInvalidParams)
	}
	if !strings.Contains(resp.Error.Message, "action must be one of") {
		t.Errorf("error message = %q, expected the violation detail", resp.Error.Message)
	}
}

func TestToolsCall_MissingName(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(7),
		Method:  "tools/call",
		Params:  map[string]any{},
	})

	if resp.Error == nil {
		t.Fatal("expected error for missing tool name")
	}
	if resp.Error.Code != ErrInvalidReq {
		t.Errorf("error code = %d, want %d", resp.Error.Code, ErrInvalidReq)
	}
}

func TestPing(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(8),
		Method:  "ping",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestUnknownMethod(t *testing.T) {
	srv := NewServerWithIO(newTestRegistry(), testLogger(), nil, nil)

	resp := roundTrip(t, srv, Request{
		JSONRPC: "2.0",
		ID:      float64(9),
		Method:  "unknown/method",
	})

	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != ErrNotFound {
		t.Errorf("error code = %d, want %d", resp.Error.Code, ErrNotFound)
	}
}

func TestParseError(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(newTestRegistry(), testLogger(), strings.NewReader("not json\n"), &out)

	ctx := context.Background()
	_ = srv.Serve(ctx)

	var resp Response
	json.Unmarshal(out.Bytes(), &resp)

	if resp.Error == nil {
		t.Fatal("expected parse error")
	}
	if resp.Error.Code != ErrParse {
		t.Errorf("error code = %d, want %d", resp.Error.Code, ErrParse)
	}
}

// Multiple requests on one stream all get answered before Serve returns.
func TestServeDrainsInFlightCalls(t *testing.T) {
	var in bytes.Buffer
	for i := 1; i <= 3; i++ {
		line, _ := json.Marshal(Request{
			JSONRPC: "2.0",
			ID:      float64(i),
			Method:  "tools/call",
			Params: map[string]any{
				"name":      "oci_echo",
				"arguments": map[string]any{"action": "list"},
			},
		})
		in.Write(line)
		in.WriteByte('\n')
	}

	var out bytes.Buffer
	srv := NewServerWithIO(newTestRegistry(), testLogger(), &in, &out)
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("responses = %d, want 3", len(lines))
	}
	seen := map[float64]bool{}
	for _, line := range lines {
		var resp Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}
		if id, ok := resp.ID.(float64); ok {
			seen[id] = true
		}
	}
	for i := 1; i <= 3; i++ {
		if !seen[float64(i)] {
			t.Errorf("missing response for request %d", i)
		}
	}
}

// blockingTool parks in Execute until released, signalling when a call
// has started.
type blockingTool struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingTool) Name() string               { return "oci_slow" }
func (b *blockingTool) Description() string        { return "Blocks until released" }
func (b *blockingTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (b *blockingTool) Execute(_ context.Context, _ map[string]any) (*tools.ToolResult, error) {
	close(b.started)
	<-b.release
	return tools.NewToolResult(`{"success":true}`), nil
}

// Cancelling the context must stop Serve even while the input stream is
// idle, without abandoning calls already accepted.
func TestShutdownOnSignalWhileInputIdle(t *testing.T) {
	slow := &blockingTool{started: make(chan struct{}), release: make(chan struct{})}
	reg := tools.NewRegistry()
	reg.Register(slow)

	in, inW := io.Pipe()
	defer inW.Close()
	var mu sync.Mutex
	var out bytes.Buffer
	srv := NewServerWithIO(reg, testLogger(), in, writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return out.Write(p)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	line, _ := json.Marshal(Request{
		JSONRPC: "2.0",
		ID:      float64(1),
		Method:  "tools/call",
		Params:  map[string]any{"name": "oci_slow"},
	})
	if _, err := inW.Write(append(line, '\n')); err != nil {
		t.Fatalf("write request: %v", err)
	}
	<-slow.started

	// The pipe stays open and idle: cancellation alone must unblock Serve
	// once the in-flight call completes.
	cancel()
	close(slow.release)

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after context cancellation on idle input")
	}

	mu.Lock()
	got := out.String()
	mu.Unlock()
	var resp Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(got)), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", got, err)
	}
	if id, ok := resp.ID.(float64); !ok || id != 1 {
		t.Errorf("response ID = %v, want 1: in-flight call was not drained", resp.ID)
	}
}

// writerFunc adapts a function to io.Writer.
type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
