package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyEventDataTool fetches counts and sums for one custom event.
type countlyEventDataTool struct {
	tc *countly.ToolContext
}

// CountlyEventData constructs the event data tool.
func CountlyEventData(tc *countly.ToolContext) *countlyEventDataTool {
	return &countlyEventDataTool{tc: tc}
}

func (t *countlyEventDataTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_event_data",
		Description: "Fetch count, sum, and duration series for a single custom event key. Optionally segmented.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"event":              {Type: "string", Description: "Event key as reported by countly_events_overview"},
				"segmentation":       {Type: "string", Description: "Optional segmentation key to break the series down by"},
				"app_id":             appIDSchema,
				"app_name":           appNameSchema,
				"period":             periodSchema,
				"countly_auth_token": tokenSchema,
			},
			Required: []string{"event"},
		},
	}
}

type eventDataArgs struct {
	countly.AppArgs
	Event        string `json:"event"`
	Segmentation string `json:"segmentation,omitempty"`
	Period       string `json:"period,omitempty"`
}

func (t *countlyEventDataTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args eventDataArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}
	if strings.TrimSpace(args.Event) == "" {
		return protocol.CallResult{}, invalidArgs("event is required")
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
	params.Set("method", "events")
	params.Set("event", args.Event)
	if args.Segmentation != "" {
		params.Set("segmentation", args.Segmentation)
	}
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch event data", "/o", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Event %q for app %s:", args.Event, appID), data), nil
}
