package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/render"
	"github.com/mj1618/a11ybridge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the handle protocol as tools",
	Long: `Start a Model Context Protocol (MCP) server whose tools create nodes, tree
updates and adapters by name. Handles live as long as the server.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  a11ybridge serve
  a11ybridge serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config)")
	serveCmd.Flags().Int("cache-ttl", 500, "Rendered PNG cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport := cfg.Server.Transport
	if t, _ := cmd.Flags().GetString("transport"); t != "" {
		transport = t
	}
	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	if cacheTTLMs < 0 {
		return fmt.Errorf("cache-ttl must be >= 0")
	}

	srv := server.New(server.Config{
		Platform: cfg.Platform,
		Render: render.Options{
			Scale:   cfg.Render.Scale,
			Padding: cfg.Render.Padding,
			Labels:  cfg.Render.Labels,
		},
		CacheTTL: time.Duration(cacheTTLMs) * time.Millisecond,
		Logger:   logger,
	})
	return srv.Serve(transport, port)
}
