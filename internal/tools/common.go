package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
)

// Shared JSON schema fragments for the arguments nearly every tool takes.
var (
	appIDSchema   = protocol.JSONSchema{Type: "string", Description: "Application ID; wins over app_name when both are given"}
	appNameSchema = protocol.JSONSchema{Type: "string", Description: "Application name, matched case-insensitively against the server's app list"}
	tokenSchema   = protocol.JSONSchema{Type: "string", Description: "Auth token override; defaults to COUNTLY_AUTH_TOKEN env (or a token file via COUNTLY_AUTH_TOKEN_FILE)"}
	periodSchema  = protocol.JSONSchema{Type: "string", Description: "Reporting period: 30days, 60days, 90days, month, day, hour, yesterday, or [start,end] millisecond timestamps"}
)

func invalidArgs(msg string) *protocol.ResponseError {
	return &protocol.ResponseError{Code: -32602, Message: msg}
}

// toolError maps core failures onto JSON-RPC error codes. Normalized API
// faults carry their upstream status code; everything else falls into the
// -320xx server error range.
func toolError(err error) *protocol.ResponseError {
	var fault *countly.Fault
	switch {
	case errors.Is(err, countly.ErrMissingAppIdentifier),
		errors.Is(err, countly.ErrAppAmbiguous):
		return &protocol.ResponseError{Code: -32602, Message: err.Error()}
	case errors.Is(err, countly.ErrAppNotFound):
		return &protocol.ResponseError{Code: -32004, Message: err.Error()}
	case errors.Is(err, countly.ErrMissingAuthToken),
		errors.Is(err, countly.ErrTokenFileNotFound),
		errors.Is(err, countly.ErrTokenFileEmpty),
		errors.Is(err, countly.ErrTokenFilePermission):
		return &protocol.ResponseError{Code: -32000, Message: err.Error()}
	case errors.As(err, &fault):
		code := -32603
		if fault.StatusCode != 0 {
			code = fault.StatusCode
		}
		return &protocol.ResponseError{Code: code, Message: fault.Message}
	default:
		return &protocol.ResponseError{Code: -32603, Message: err.Error()}
	}
}

// textResult renders a header plus pretty-printed JSON payload.
func textResult(header string, data json.RawMessage) protocol.CallResult {
	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		pretty = data
	}
	return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: fmt.Sprintf("%s\n%s", header, string(pretty))}}}
}
