package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyEventsOverviewTool lists the custom events an app reports.
type countlyEventsOverviewTool struct {
	tc *countly.ToolContext
}

// CountlyEventsOverview constructs the events overview tool.
func CountlyEventsOverview(tc *countly.ToolContext) *countlyEventsOverviewTool {
	return &countlyEventsOverviewTool{tc: tc}
}

func (t *countlyEventsOverviewTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_events_overview",
		Description: "List the custom event keys an application reports, with segmentation metadata. Use the keys with countly_event_data.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"app_id":             appIDSchema,
				"app_name":           appNameSchema,
				"countly_auth_token": tokenSchema,
			},
			Required: []string{},
		},
	}
}

type eventsOverviewArgs struct {
	countly.AppArgs
}

func (t *countlyEventsOverviewTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args eventsOverviewArgs
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
	params.Set("method", "get_events")

	data, err := t.tc.Get(ctx, "fetch events overview", "/o", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Events for app %s:", appID), data), nil
}
