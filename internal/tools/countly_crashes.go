package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyCrashesTool fetches crash groups for one app.
type countlyCrashesTool struct {
	tc *countly.ToolContext
}

// CountlyCrashes constructs the crash analytics tool.
func CountlyCrashes(tc *countly.ToolContext) *countlyCrashesTool {
	return &countlyCrashesTool{tc: tc}
}

func (t *countlyCrashesTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_crashes",
		Description: "Fetch crash groups and crash statistics for an application.",
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

type crashesArgs struct {
	countly.AppArgs
	Period string `json:"period,omitempty"`
}

func (t *countlyCrashesTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args crashesArgs
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
	params.Set("method", "crashes")
	if args.Period != "" {
		params.Set("period", args.Period)
	}

	data, err := t.tc.Get(ctx, "fetch crashes", "/o", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Crashes for app %s:", appID), data), nil
}
