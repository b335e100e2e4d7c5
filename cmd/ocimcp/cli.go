// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ocitools/ocimcp/pkg/backend"
	"github.com/ocitools/ocimcp/pkg/catalog"
	"github.com/ocitools/ocimcp/pkg/config"
	"github.com/ocitools/ocimcp/pkg/mcp"
)

// ------------------------------------------------------------------
// Global flags
// ------------------------------------------------------------------

var (
	flagConfig string
	flagDebug  bool
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	// Stdout carries the JSON-RPC stream; all logging goes to stderr.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = defaultConfigPath()
	}
	return config.Load(path)
}

// ------------------------------------------------------------------
// Root command
// ------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ocimcp",
		Short: "ocimcp - MCP server for Oracle Cloud Infrastructure",
		Long: `ocimcp exposes OCI resource operations (compute, storage & network,
database & analytics, monitoring & security) as Model Context Protocol
tools over stdio, for AI clients like Claude Desktop and Gemini CLI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to YAML config file (default ~/.ocimcp/config.yaml)")
	root.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(),
		newToolsCmd(),
		newVersionCmd(),
	)

	return root
}

// ------------------------------------------------------------------
// `ocimcp serve`: stdio MCP server
// ------------------------------------------------------------------

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP stdio server",
		Long: `Start a Model Context Protocol (MCP) server over stdio.

Credentials come from the config file or the OCI_* environment variables.
The server starts either way; calls made before credentials are complete
return setup guidance instead of failing.

Claude Desktop configuration:
  {
    "mcpServers": {
      "oci": {
        "command": "ocimcp",
        "args": ["serve"]
      }
    }
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			factory, ok := backend.Provider(cfg.Provider)
			if !ok {
				return fmt.Errorf("provider %q is not registered (available: %v)", cfg.Provider, backend.ProviderNames())
			}
			conn, err := factory(cfg)
			if err != nil {
				return fmt.Errorf("connect provider %q: %w", cfg.Provider, err)
			}
			defer func() {
				if cerr := conn.Close(); cerr != nil {
					log.Warn("provider close", "error", cerr)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			registry := catalog.Build(conn, cfg, log)
			srv := mcp.NewServer(registry, log)

			log.Info("mcp server starting",
				"provider", cfg.Provider,
				"consolidated", cfg.Consolidated,
				"credentials_ready", cfg.Ready())

			if err := srv.Serve(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			log.Info("mcp server stopped")
			return nil
		},
	}
}

// ------------------------------------------------------------------
// `ocimcp tools`: catalog introspection
// ------------------------------------------------------------------

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server would advertise",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			registry := catalog.Build(backend.Unconnected(), cfg, newLogger())
			for _, t := range registry.List() {
				fmt.Printf("%s\n    %s\n", t.Name(), t.Description())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	}
}
