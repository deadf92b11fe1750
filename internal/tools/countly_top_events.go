package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyTopEventsTool fetches the most frequent events for one app.
type countlyTopEventsTool struct {
	tc *countly.ToolContext
}

// CountlyTopEvents constructs the top events tool.
func CountlyTopEvents(tc *countly.ToolContext) *countlyTopEventsTool {
	return &countlyTopEventsTool{tc: tc}
}

func (t *countlyTopEventsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_top_events",
		Description: "Fetch the most frequently reported custom events for an application over a period.",
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

type topEventsArgs struct {
	countly.AppArgs
	Period string `json:"period,omitempty"`
}

func (t *countlyTopEventsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args topEventsArgs
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
	params.Set("method", "top_events")
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch top events", "/o", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Top events for app %s:", appID), data), nil
}
