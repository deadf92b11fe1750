package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// analyticsMetrics are the /o method names served by the core analytics
// reader.
var analyticsMetrics = []string{
	"users", "sessions", "locations", "devices",
	"device_details", "carriers", "app_versions", "platforms",
}

// countlyMetricsTool fetches a single analytics metric for one app.
type countlyMetricsTool struct {
	tc *countly.ToolContext
}

// CountlyMetrics constructs the analytics metrics tool.
func CountlyMetrics(tc *countly.ToolContext) *countlyMetricsTool {
	return &countlyMetricsTool{tc: tc}
}

func (t *countlyMetricsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_metrics",
		Description: "Fetch an analytics metric (users, sessions, locations, devices, device_details, carriers, app_versions, platforms) for an application over a period.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"metric":             {Type: "string", Enum: analyticsMetrics, Description: "Metric to fetch"},
				"app_id":             appIDSchema,
				"app_name":           appNameSchema,
				"period":             periodSchema,
				"countly_auth_token": tokenSchema,
			},
			Required: []string{"metric"},
		},
	}
}

type metricsArgs struct {
	countly.AppArgs
	Metric string `json:"metric"`
	Period string `json:"period,omitempty"`
}

func (t *countlyMetricsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args metricsArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}
	if !validMetric(args.Metric) {
		return protocol.CallResult{}, invalidArgs("metric must be one of: " + strings.Join(analyticsMetrics, ", "))
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
	params.Set("method", args.Metric)
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch "+args.Metric, "/o", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Metric %s for app %s:", args.Metric, appID), data), nil
}

func validMetric(metric string) bool {
	for _, m := range analyticsMetrics {
		if m == metric {
			return true
		}
	}
	return false
}
