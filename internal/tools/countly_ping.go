package tools

import (
	"context"
	"encoding/json"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyPingTool checks connectivity to the Countly server.
type countlyPingTool struct {
	tc *countly.ToolContext
}

// CountlyPing constructs the connectivity check tool.
func CountlyPing(tc *countly.ToolContext) *countlyPingTool {
	return &countlyPingTool{tc: tc}
}

func (t *countlyPingTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_ping",
		Description: "Check that the configured Countly server is reachable. Takes no arguments and needs no auth token.",
		InputSchema: &protocol.JSONSchema{
			Type:       "object",
			Properties: map[string]protocol.JSONSchema{},
			Required:   []string{},
		},
	}
}

func (t *countlyPingTool) Invoke(ctx context.Context, _ json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	data, err := t.tc.Get(ctx, "ping server", "/o/ping", nil)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult("Countly server is reachable:", data), nil
}
