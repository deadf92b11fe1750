package tools

import (
	"context"
	"encoding/json"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyServerStatsTool fetches server-wide data point statistics. The
// app filter is optional here: if the supplied identifier does not
// resolve, the tool reports server-wide numbers instead of failing.
type countlyServerStatsTool struct {
	tc *countly.ToolContext
}

// CountlyServerStats constructs the server stats tool.
func CountlyServerStats(tc *countly.ToolContext) *countlyServerStatsTool {
	return &countlyServerStatsTool{tc: tc}
}

func (t *countlyServerStatsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_server_stats",
		Description: "Fetch server-wide data point statistics, optionally narrowed to one application. An unresolvable app filter falls back to server-wide numbers.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"app_id":             appIDSchema,
				"app_name":           appNameSchema,
				"period":             periodSchema,
				"countly_auth_token": tokenSchema,
			},
			Required: []string{},
		},
	}
}

type serverStatsArgs struct {
	countly.AppArgs
	Period string `json:"period,omitempty"`
}

func (t *countlyServerStatsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args serverStatsArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}

	params, err := t.tc.AuthParams(ctx, args.AuthArgs)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}

	header := "Server data points (all applications):"
	if appID, ok := t.tc.MaybeResolveAppID(ctx, args.AppArgs); ok {
		params.Set("app_id", appID)
		header = "Server data points for app " + appID + ":"
	}
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch server stats", "/o/server-stats/data-points", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(header, data), nil
}
