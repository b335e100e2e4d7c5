// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package dispatch holds what the four domain dispatchers share: the action
// discriminator, the tool adapter that runs the validate → configuration
// check → dispatch → classify pipeline, and small helpers for defaults.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/envelope"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// Actions discriminating the call union. Every domain accepts exactly these
// four.
const (
	ActionList   = "list"
	ActionGet    = "get"
	ActionCreate = "create"
	ActionManage = "manage"
)

// DefaultLimit is the page size applied when a list call omits limit.
const DefaultLimit = 50

// ParseAction extracts and checks the action discriminator. It runs before
// variant validation so the caller gets a pointed message instead of a
// four-way union mismatch.
func ParseAction(args map[string]any) (string, error) {
	raw, present := args["action"]
	if !present {
		return "", tools.InvalidParams("action is required (one of list, get, create, manage)")
	}
	action, ok := raw.(string)
	if !ok {
		return "", tools.InvalidParams("action must be a string")
	}
	switch action {
	case ActionList, ActionGet, ActionCreate, ActionManage:
		return action, nil
	}
	return "", tools.InvalidParams(fmt.Sprintf("action %q is not one of list, get, create, manage", action))
}

// GeneratedName builds the default display name for created resources:
// the kind suffixed with a creation timestamp.
func GeneratedName(kind string) string {
	return kind + "-" + time.Now().UTC().Format("20060102-150405")
}

// Dispatcher is one domain's router: it narrows an argument bag into the
// domain's typed call union, then executes exactly one provider operation.
type Dispatcher interface {
	// ParseCall validates and narrows the raw arguments. Failures are
	// protocol-level (*tools.InvalidParamsError).
	ParseCall(args map[string]any) (any, error)

	// Dispatch executes the call. Precondition failures come back as
	// failure envelopes; provider errors are returned unclassified for the
	// tool boundary to classify.
	Dispatch(ctx context.Context, call any) (envelope.Envelope, error)
}

// Tool adapts a domain dispatcher to the tools.Tool contract. It owns the
// single error-classification boundary: provider errors never propagate
// past Execute.
type Tool struct {
	name        string
	description string
	inputSchema map[string]any
	cfg         *config.Config
	dispatcher  Dispatcher
	log         *slog.Logger
}

// NewTool wraps a dispatcher as a catalog tool.
func NewTool(name, description string, inputSchema map[string]any, cfg *config.Config, d Dispatcher, log *slog.Logger) *Tool {
	return &Tool{
		name:        name,
		description: description,
		inputSchema: inputSchema,
		cfg:         cfg,
		dispatcher:  d,
		log:         log,
	}
}

func (t *Tool) Name() string               { return t.name }
func (t *Tool) Description() string        { return t.description }
func (t *Tool) Parameters() map[string]any { return t.inputSchema }

// Execute runs the pipeline. Ordering matters: schema validation first so a
// malformed call is a protocol error even on an unconfigured server, then
// the credential precondition (the provider is never invoked without it),
// then dispatch.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (*tools.ToolResult, error) {
	call, err := t.dispatcher.ParseCall(args)
	if err != nil {
		return nil, err
	}

	if missing := t.cfg.MissingFields(); len(missing) > 0 {
		t.log.Warn("call rejected: credentials not configured", "tool", t.name, "missing", missing)
		return tools.JSONResult(envelope.ConfigGuidance(missing), true)
	}

	env, err := t.dispatcher.Dispatch(ctx, call)
	if err != nil {
		var unsupported *tools.UnsupportedOperationError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		message := backend.Classify(err)
		t.log.Warn("provider call failed", "tool", t.name, "error", message)
		env = envelope.Fail(message)
	}

	return tools.JSONResult(env, !env.OK())
}
