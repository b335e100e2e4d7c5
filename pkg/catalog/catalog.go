// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package catalog assembles the tool set served over MCP: one tool per
// service domain, or a single consolidated tool in reduced deployment mode.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/compute"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/database"
	"github.com/ocitools/ocimcp/pkg/monitoring"
	"github.com/ocitools/ocimcp/pkg/storagenet"
	"github.com/ocitools/ocimcp/pkg/tools"
)

// ConsolidatedToolName is the wire name of the reduced-mode tool.
const ConsolidatedToolName = "oci"

// Domain names accepted by the consolidated tool.
const (
	DomainCompute        = "compute"
	DomainStorageNetwork = "storage-network"
	DomainDatabase       = "database-analytics"
	DomainMonitoring     = "monitoring-security"
)

// Build constructs the tool registry over a shared provider connection.
func Build(conn backend.Connection, cfg *config.Config, log *slog.Logger) *tools.Registry {
	reg := tools.NewRegistry()
	if cfg.Consolidated {
		reg.Register(NewConsolidatedTool(conn, cfg, log))
		return reg
	}
	reg.Register(compute.NewTool(conn, cfg, log))
	reg.Register(storagenet.NewTool(conn, cfg, log))
	reg.Register(database.NewTool(conn, cfg, log))
	reg.Register(monitoring.NewTool(conn, cfg, log))
	return reg
}

// ConsolidatedTool multiplexes the four domain tools behind one name,
// discriminated by a required "domain" argument.
type ConsolidatedTool struct {
	domains map[string]tools.Tool
}

// NewConsolidatedTool builds the reduced-mode tool.
func NewConsolidatedTool(conn backend.Connection, cfg *config.Config, log *slog.Logger) *ConsolidatedTool {
	return &ConsolidatedTool{
		domains: map[string]tools.Tool{
			DomainCompute:        compute.NewTool(conn, cfg, log),
			DomainStorageNetwork: storagenet.NewTool(conn, cfg, log),
			DomainDatabase:       database.NewTool(conn, cfg, log),
			DomainMonitoring:     monitoring.NewTool(conn, cfg, log),
		},
	}
}

func (t *ConsolidatedTool) Name() string { return ConsolidatedToolName }

func (t *ConsolidatedTool) Description() string {
	return "List, get, create and manage OCI resources across all service domains. " +
		"Requires a domain argument: compute, storage-network, database-analytics or monitoring-security; " +
		"remaining arguments follow that domain's schema."
}

// Parameters declares the consolidated input: each branch pins the domain
// discriminator and embeds that domain's full union schema.
func (t *ConsolidatedTool) Parameters() map[string]any {
	branches := make([]any, 0, len(t.domains))
	for _, name := range t.domainNames() {
		branches = append(branches, map[string]any{
			"allOf": []any{
				map[string]any{
					"properties": map[string]any{"domain": map[string]any{"const": name}},
					"required":   []string{"domain"},
				},
				t.domains[name].Parameters(),
			},
		})
	}
	return map[string]any{
		"type":  "object",
		"oneOf": branches,
	}
}

// Execute resolves the domain and delegates, stripping the discriminator so
// the domain tool sees its own call shape.
func (t *ConsolidatedTool) Execute(ctx context.Context, args map[string]any) (*tools.ToolResult, error) {
	raw, present := args["domain"]
	if !present {
		return nil, tools.InvalidParams(fmt.Sprintf("domain is required (one of %v)", t.domainNames()))
	}
	domain, ok := raw.(string)
	if !ok {
		return nil, tools.InvalidParams("domain must be a string")
	}
	target, ok := t.domains[domain]
	if !ok {
		return nil, tools.InvalidParams(fmt.Sprintf("domain %q is not one of %v", domain, t.domainNames()))
	}

	forwarded := make(map[string]any, len(args))
	for k, v := range args {
		if k == "domain" {
			continue
		}
		forwarded[k] = v
	}
	return target.Execute(ctx, forwarded)
}

func (t *ConsolidatedTool) domainNames() []string {
	names := make([]string, 0, len(t.domains))
	for name := range t.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
