package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/countly/countly-mcp-server/internal/config"
	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/mcp"
	"github.com/countly/countly-mcp-server/internal/tools"
)

// NewToolbox builds the shared Countly MCP toolbox.
func NewToolbox(tc *countly.ToolContext) *mcp.Toolbox {
	return mcp.NewToolbox(
		// Application directory
		tools.CountlyListApps(tc),

		// Per-app analytics
		tools.CountlyDashboard(tc),
		tools.CountlyMetrics(tc),
		tools.CountlyEventsOverview(tc),
		tools.CountlyEventData(tc),
		tools.CountlyTopEvents(tc),
		tools.CountlyCrashes(tc),
		tools.CountlyAppUsers(tc),
		tools.CountlyNotes(tc),

		// Server-level tools
		tools.CountlyServerStats(tc),
		tools.CountlyPing(tc),
	)
}

// NewToolContext wires the Countly client and app cache from config.
func NewToolContext(cfg *config.Config, log *logrus.Entry) *countly.ToolContext {
	client := countly.NewClient(cfg.ServerURL, cfg.HTTPTimeout)
	return countly.NewToolContext(client, cfg.AppCacheTTL, log)
}

// NewMCPServer constructs an MCP server with the shared toolbox.
func NewMCPServer(cfg *config.Config, log *logrus.Entry) *mcp.Server {
	return mcp.NewServer(NewToolbox(NewToolContext(cfg, log)), log)
}

// Run starts the server in the configured transport mode and blocks.
func Run(cfg *config.Config, log *logrus.Entry) error {
	srv := NewMCPServer(cfg, log)
	switch cfg.Mode {
	case config.ModeStdio:
		return mcp.RunStdio(srv, os.Stdin, os.Stdout)
	case config.ModeHTTP:
		return mcp.RunHTTP(srv, cfg.HTTPAddr)
	default:
		return fmt.Errorf("unknown transport mode: %s", cfg.Mode)
	}
}
