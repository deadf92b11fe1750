package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// countlyListAppsTool lists the applications visible to the current token.
type countlyListAppsTool struct {
	tc *countly.ToolContext
}

// CountlyListApps constructs the application directory tool.
func CountlyListApps(tc *countly.ToolContext) *countlyListAppsTool {
	return &countlyListAppsTool{tc: tc}
}

func (t *countlyListAppsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "countly_list_apps",
		Description: "List the Countly applications the current auth token can see, with their IDs. Use the IDs or names with the other tools.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"countly_auth_token": tokenSchema,
			},
			Required: []string{},
		},
	}
}

type listAppsArgs struct {
	countly.AuthArgs
}

func (t *countlyListAppsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args listAppsArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs("invalid arguments")
		}
	}

	apps, err := t.tc.Apps(ctx, args.AuthArgs)
	if err != nil {
		return protocol.CallResult{}, toolError(err)
	}
	if len(apps) == 0 {
		return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: "No applications visible to this token."}}}, nil
	}

	var b strings.Builder
	for _, app := range apps {
		fmt.Fprintf(&b, "- id: %s name: %s", app.ID, app.Name)
		if app.Type != "" {
			fmt.Fprintf(&b, " type: %s", app.Type)
		}
		b.WriteString("\n")
	}

	encoded, marshalErr := json.Marshal(apps)
	if marshalErr != nil {
		return protocol.CallResult{}, &protocol.ResponseError{Code: -32603, Message: "encode app list"}
	}
	return textResult(fmt.Sprintf("Applications (%d):\n%sRaw:", len(apps), b.String()), encoded), nil
}
