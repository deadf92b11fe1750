package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyAppUsersTool fetches user profiles for one app.
type countlyAppUsersTool struct {
	tc *countly.ToolContext
}

// CountlyAppUsers constructs the app users tool.
func CountlyAppUsers(tc *countly.ToolContext) *countlyAppUsersTool {
	return &countlyAppUsersTool{tc: tc}
}

func (t *countlyAppUsersTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_app_users",
		Description: "Fetch user profiles recorded for an application. Supports a result limit to keep responses small.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"app_id":             appIDSchema,
				"app_name":           appNameSchema,
				"limit":              {Type: "integer", Description: "Maximum number of profiles to return (default 50)"},
				"countly_auth_token": tokenSchema,
			},
			Required: []string{},
		},
	}
}

type appUsersArgs struct {
	countly.AppArgs
	Limit int `json:"limit,omitempty"`
}

func (t *countlyAppUsersTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args appUsersArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}
	if args.Limit <= 0 {
		args.Limit = 50
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
	params.Set("limit", strconv.Itoa(args.Limit))

	data, err := t.tc.Get(ctx, "fetch app users", "/o/app_users/all", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("User profiles for app %s (limit %d):", appID, args.Limit), data), nil
}
