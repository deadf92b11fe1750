package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/countly/countly-mcp-server/internal/protocol"
)

// RunStdio serves line-delimited JSON-RPC over the given reader and
// writer, one request per line. stdout carries protocol traffic only;
// logs go to the component log file.
func RunStdio(server *Server, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	server.log.Info("stdio MCP server started")
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := enc.Encode(protocol.Response{JSONRPC: "2.0", ID: "0", Error: &protocol.ResponseError{Code: -32700, Message: "invalid JSON"}}); err != nil {
				return err
			}
			continue
		}

		// Notifications expect no reply.
		if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
			continue
		}

		resp, err := server.Handle(context.Background(), req)
		if err != nil {
			resp = WriteError(req.ID, -32603, "internal error", err)
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}
