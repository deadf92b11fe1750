package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countly/countly-mcp-server/internal/countly"
)

// fakeCountly serves the two endpoints the metrics tool touches.
func fakeCountly(t *testing.T) *countly.ToolContext {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("auth_token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Missing parameter \"auth_token\""}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/o/apps/mine":
			_, _ = w.Write([]byte(`{"admin_of":{"6075f94":{"_id":"6075f94","name":"Demo App"}}}`))
		case r.URL.Path == "/o" && r.URL.Query().Get("method") == "users":
			_, _ = w.Write([]byte(`{"2026":{"8":{"u":42}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Invalid path"}`))
		}
	}))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return countly.NewToolContext(countly.NewClient(srv.URL, time.Second), time.Minute, logger.WithField("component", "test"))
}

func TestMetricsInvokeResolvesByName(t *testing.T) {
	t.Setenv(countly.EnvAuthToken, "")
	t.Setenv(countly.EnvAuthTokenFile, "")
	tool := CountlyMetrics(fakeCountly(t))

	raw, _ := json.Marshal(map[string]string{
		"metric":             "users",
		"app_name":           "demo app",
		"countly_auth_token": "tok",
	})
	result, toolErr := tool.Invoke(context.Background(), raw)
	require.Nil(t, toolErr)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "Metric users for app 6075f94:")
	assert.Contains(t, result.Content[0].Text, "\"u\": 42")
}

func TestMetricsInvokeRejectsUnknownMetric(t *testing.T) {
	tool := CountlyMetrics(fakeCountly(t))

	raw, _ := json.Marshal(map[string]string{"metric": "velocity"})
	_, toolErr := tool.Invoke(context.Background(), raw)
	require.NotNil(t, toolErr)
	assert.Equal(t, -32602, toolErr.Code)
}

func TestMetricsInvokeRequiresIdentifier(t *testing.T) {
	t.Setenv(countly.EnvAuthToken, "tok")
	t.Setenv(countly.EnvAuthTokenFile, "")
	tool := CountlyMetrics(fakeCountly(t))

	raw, _ := json.Marshal(map[string]string{"metric": "users"})
	_, toolErr := tool.Invoke(context.Background(), raw)
	require.NotNil(t, toolErr)
	assert.Equal(t, -32602, toolErr.Code)
}

func TestMetricsInvokeUnknownApp(t *testing.T) {
	t.Setenv(countly.EnvAuthToken, "tok")
	t.Setenv(countly.EnvAuthTokenFile, "")
	tool := CountlyMetrics(fakeCountly(t))

	raw, _ := json.Marshal(map[string]string{"metric": "users", "app_name": "nope"})
	_, toolErr := tool.Invoke(context.Background(), raw)
	require.NotNil(t, toolErr)
	assert.Equal(t, -32004, toolErr.Code)
}
