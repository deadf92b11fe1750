package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyNotesTool fetches dashboard annotations for one app.
type countlyNotesTool struct {
	tc *countly.ToolContext
}

// CountlyNotes constructs the notes tool.
func CountlyNotes(tc *countly.ToolContext) *countlyNotesTool {
	return &countlyNotesTool{tc: tc}
}

func (t *countlyNotesTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_notes",
		Description: "Fetch dashboard notes (annotations) recorded for an application.",
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

type notesArgs struct {
	countly.AppArgs
	Period string `json:"period,omitempty"`
}

func (t *countlyNotesTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args notesArgs
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

	data, err := t.tc.Get(ctx, "fetch notes", "/o/notes", params)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	return textResult(fmt.Sprintf("Notes for app %s:", appID), data), nil
}
