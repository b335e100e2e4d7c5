// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ocitools/ocimcp/pkg/tools"
)

const (
	// ProtocolVersion is the MCP spec version this server supports.
	ProtocolVersion = "2024-11-05"
	ServerName      = "ocimcp"
	ServerVersion   = "1.0.0"
)

// Server implements a stdio-based MCP server that exposes a tool registry.
type Server struct {
	registry *tools.Registry
	log      *slog.Logger
	in       io.Reader
	out      io.Writer
	mu       sync.Mutex     // serializes writes to stdout
	wg       sync.WaitGroup // in-flight tool calls
}

// NewServer creates an MCP server backed by the given tool registry.
// It reads JSON-RPC from stdin and writes responses to stdout.
func NewServer(registry *tools.Registry, log *slog.Logger) *Server {
	return NewServerWithIO(registry, log, os.Stdin, os.Stdout)
}

// NewServerWithIO creates an MCP server with custom I/O (for testing).
func NewServerWithIO(registry *tools.Registry, log *slog.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{
		registry: registry,
		log:      log,
		in:       in,
		out:      out,
	}
}

// Serve runs the MCP server loop, reading requests until EOF or ctx
// cancellation. In-flight tool calls are drained before it returns, so
// every accepted request gets a response.
//
// The scanner runs in its own goroutine feeding a channel: a blocking
// read on an idle stdin must not delay shutdown, so cancellation is
// raced against the next line rather than checked between lines.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// MCP messages can be large (tool results), increase buffer.
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()

		case raw, ok := <-lines:
			if !ok {
				s.wg.Wait()
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("stdin read error: %w", err)
					}
				default:
				}
				return nil
			}

			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			var req Request
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				s.sendError(nil, ErrParse, "parse error: "+err.Error())
				continue
			}

			s.handleRequest(ctx, &req)
		}
	}
}

// handleRequest dispatches a single JSON-RPC request.
func (s *Server) handleRequest(ctx context.Context, req *Request) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		// Client ack, nothing to do.
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(ctx, req)
	case "ping":
		s.sendResult(req.ID, map[string]any{})
	default:
		// Unknown method: if it has an ID it expects a response.
		if req.ID != nil {
			s.sendError(req.ID, ErrNotFound, "method not found: "+req.Method)
		}
		// Notifications (no ID) are silently ignored per spec.
	}
}

// ── Method handlers ────────────────────────────────────────────────

func (s *Server) handleInitialize(req *Request) {
	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapability{
			Tools: &ToolsCapability{ListChanged: false},
		},
		ServerInfo: EntityInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}
	s.sendResult(req.ID, result)
}

func (s *Server) handleToolsList(req *Request) {
	registered := s.registry.List()

	mcpTools := make([]ToolInfo, 0, len(registered))
	for _, t := range registered {
		// Parameters() already follows JSON Schema, which is exactly
		// what MCP's inputSchema expects.
		inputSchema := t.Parameters()
		if inputSchema == nil {
			inputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		mcpTools = append(mcpTools, ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: inputSchema,
		})
	}

	s.sendResult(req.ID, ToolsListResult{Tools: mcpTools})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) {
	// Parse params.
	raw, err := json.Marshal(req.Params)
	if err != nil {
		s.sendError(req.ID, ErrInternal, "failed to marshal params")
		return
	}

	var params ToolCallParams
	if err := json.Unmarshal(raw, &params); err != nil {
		s.sendError(req.ID, ErrInvalidReq, "invalid tools/call params: "+err.Error())
		return
	}

	if params.Name == "" {
		s.sendError(req.ID, ErrInvalidReq, "tool name is required")
		return
	}

	// Tool calls may block on cloud round-trips; run each in its own
	// goroutine so the loop keeps accepting requests. The WaitGroup
	// drains them on shutdown.
	id := req.ID
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		callID := uuid.NewString()
		s.log.Info("tool call", "call_id", callID, "tool", params.Name)

		result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
		if err != nil {
			code, msg := classifyToolError(err)
			s.log.Warn("tool call rejected", "call_id", callID, "tool", params.Name, "error", msg)
			s.sendError(id, code, msg)
			return
		}

		text := result.Text
		if text == "" {
			text = "(no output)"
		}
		s.sendResult(id, ToolCallResult{
			Content: []ContentBlock{{Type: "text", Text: text}},
			IsError: result.IsError,
		})
	}()
}

// classifyToolError maps registry execution errors onto JSON-RPC codes.
// Anything the tool layer flags as a caller mistake is a protocol error,
// not a business failure.
func classifyToolError(err error) (int, string) {
	if errors.Is(err, tools.ErrToolNotFound) {
		return ErrNotFound, err.Error()
	}
	var invalid *tools.InvalidParamsError
	if errors.As(err, &invalid) {
		return ErrInvalidParams, invalid.Error()
	}
	var unsupported *tools.UnsupportedOperationError
	if errors.As(err, &unsupported) {
		return ErrInvalidParams, unsupported.Error()
	}
	return ErrInternal, err.Error()
}

// ── Wire helpers ───────────────────────────────────────────────────

func (s *Server) sendResult(id any, result any) {
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	s.writeJSON(resp)
}

func (s *Server) sendError(id any, code int, message string) {
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
	s.writeJSON(resp)
}

func (s *Server) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		// Last-resort: log and drop.
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// MCP stdio transport: one JSON object per line.
	_, _ = s.out.Write(data)
	_, _ = s.out.Write([]byte("\n"))
}
