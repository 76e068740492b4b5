package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the automation tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes inspect, menus,
tabs, login, dialogs, keys, fill and screenshots as tools. Sessions stay
open between calls and are closed after --idle-ttl without use.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  winium-desktop serve --url http://localhost:9999 --app-id notepad
  winium-desktop serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("idle-ttl", 600, "Close sessions idle for this many seconds (0 keeps them open)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	idle, _ := cmd.Flags().GetInt("idle-ttl")
	if idle < 0 {
		return fmt.Errorf("--idle-ttl must not be negative")
	}

	srv := server.New(server.Config{
		Transport:  transport,
		Port:       port,
		DefaultApp: opts.AppID,
		IdleTTL:    time.Duration(idle) * time.Second,
	}, newSession, log)
	log.Infof("serving MCP over %s", transport)
	return srv.Serve()
}
