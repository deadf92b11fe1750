package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyDashboardTool fetches the aggregated dashboard for one app.
type countlyDashboardTool struct {
	tc *countly.ToolContext
}

// CountlyDashboard constructs the dashboard tool.
func CountlyDashboard(tc *countly.ToolContext) *countlyDashboardTool {
	return &countlyDashboardTool{tc: tc}
}

func (t *countlyDashboardTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_dashboard",
		Description: "Fetch the aggregated analytics dashboard (sessions, users, new users, time spent) for an application.",
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

type dashboardArgs struct {
	countly.AppArgs
	Period string `json:"period,omitempty"`
}

func (t *countlyDashboardTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args dashboardArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}

	appID, err := t.tc.ResolveAppID(ctx, args.AppArgs)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	params, err := t.tc.AuthParams(ctx, args.AuthArgs)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	params.Set("app_id", appID)
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch dashboard", "/o/analytics/dashboard", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Dashboard for app %s:", appID), data), nil
}
