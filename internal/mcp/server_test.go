package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countly/countly-mcp-server/internal/protocol"
)

// echoTool records what it was invoked with.
type echoTool struct {
	name     string
	lastMeta string
	lastArgs json.RawMessage
}

func (t *echoTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{Name: t.name, Description: "test tool"}
}

func (t *echoTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	t.lastMeta = protocol.CallMetaString(ctx, "countlyAuthToken")
	t.lastArgs = raw
	return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: "ok"}}}, nil
}

func newTestServer(tools ...Tool) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(NewToolbox(tools...), logger.WithField("component", "test"))
}

func TestHandleInitialize(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	require.NoError(t, err)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "countly-mcp-server", result.ServerInfo.Name)
	assert.NotEmpty(t, result.ProtocolVersion)
}

func TestHandleToolsListSorted(t *testing.T) {
	srv := newTestServer(&echoTool{name: "zeta"}, &echoTool{name: "alpha"})

	resp, err := srv.Handle(context.Background(), protocol.Request{ID: 1, Method: "tools/list"})
	require.NoError(t, err)

	result, ok := resp.Result.(protocol.ListResult)
	require.True(t, ok)
	require.Len(t, result.Tools, 2)
	assert.Equal(t, "alpha", result.Tools[0].Name)
	assert.Equal(t, "zeta", result.Tools[1].Name)
}

func TestHandleToolsCallPassesMeta(t *testing.T) {
	tool := &echoTool{name: "echo"}
	srv := newTestServer(tool)

	params, _ := json.Marshal(protocol.CallParams{
		Name: "echo",
		Args: json.RawMessage(`{"x":1}`),
		Meta: map[string]any{"countlyAuthToken": "tok-session"},
	})
	resp, err := srv.Handle(context.Background(), protocol.Request{ID: 1, Method: "tools/call", Params: params})
	require.NoError(t, err)
	require.Nil(t, resp.Error)

	assert.Equal(t, "tok-session", tool.lastMeta)
	assert.JSONEq(t, `{"x":1}`, string(tool.lastArgs))
}

func TestHandleToolsCallUnknownTool(t *testing.T) {
	srv := newTestServer()

	params, _ := json.Marshal(protocol.CallParams{Name: "nope"})
	resp, err := srv.Handle(context.Background(), protocol.Request{ID: 1, Method: "tools/call", Params: params})
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestHandleUnknownMethod(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.Handle(context.Background(), protocol.Request{ID: 1, Method: "bogus"})
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestHandleRejectsWrongJSONRPCVersion(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.Handle(context.Background(), protocol.Request{JSONRPC: "1.0", ID: 1, Method: "ping"})
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32600, resp.Error.Code)
}
