package countly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/countly/countly-mcp-server/internal/protocol"
)

// MetaAuthToken is the tools/call _meta field carrying a session-scoped
// token override. It wins over every other token source.
const MetaAuthToken = "countlyAuthToken"

// argTokenKey threads a tool's countly_auth_token argument through the
// context so the app cache fetcher can honor the same source priority.
type argTokenKey struct{}

func withArgToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, argTokenKey{}, token)
}

func argTokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(argTokenKey{}).(string)
	return tok
}

// AuthArgs is the token argument shared by authenticated tools.
type AuthArgs struct {
	CountlyAuthToken string `json:"countly_auth_token,omitempty"`
}

// AppArgs bundles the identifier and auth fields shared by app-scoped
// tools.
type AppArgs struct {
	ResolveArgs
	AuthArgs
}

// ToolContext bundles everything a tool handler needs to talk to the
// Countly server: the HTTP client, the app resolution cache, and a
// logger. One instance is built at startup and shared by every tool.
type ToolContext struct {
	client *Client
	apps   *AppCache
	log    *logrus.Entry
}

// NewToolContext wires the client and the app cache together.
func NewToolContext(client *Client, cacheTTL time.Duration, log *logrus.Entry) *ToolContext {
	tc := &ToolContext{client: client, log: log}
	tc.apps = NewAppCache(tc.fetchApps, cacheTTL)
	return tc
}

// Apps exposes the cached application table.
func (tc *ToolContext) Apps(ctx context.Context, auth AuthArgs) ([]App, error) {
	return tc.apps.Apps(withArgToken(ctx, auth.CountlyAuthToken))
}

// ResolveAppID resolves the application identifier for a call.
func (tc *ToolContext) ResolveAppID(ctx context.Context, args AppArgs) (string, error) {
	ctx = withArgToken(ctx, args.CountlyAuthToken)
	return tc.apps.ResolveAppID(ctx, args.ResolveArgs)
}

// MaybeResolveAppID is the best-effort variant for tools whose app filter
// is optional: a resolution failure logs a warning and reports "no
// filter" instead of failing the call. Use it only where proceeding
// unfiltered is the intended behavior.
func (tc *ToolContext) MaybeResolveAppID(ctx context.Context, args AppArgs) (string, bool) {
	if args.AppID == "" && args.AppName == "" {
		return "", false
	}
	id, err := tc.ResolveAppID(ctx, args)
	if err != nil {
		tc.log.WithError(err).Warn("app resolution failed, proceeding without app filter")
		return "", false
	}
	return id, true
}

// AuthParams resolves the auth token for a call and returns it as query
// parameters. The session override in the call _meta wins over the tool
// argument, which wins over the environment.
func (tc *ToolContext) AuthParams(ctx context.Context, args AuthArgs) (url.Values, error) {
	token, err := RequireAuthToken(AuthConfig{
		Override: protocol.CallMetaString(ctx, MetaAuthToken),
		Argument: args.CountlyAuthToken,
	})
	if err != nil {
		return nil, err
	}
	return url.Values{"auth_token": []string{token}}, nil
}

// Get issues a GET through the fault normalizer. callContext prefixes any
// resulting fault message.
func (tc *ToolContext) Get(ctx context.Context, callContext, path string, params url.Values) (json.RawMessage, error) {
	return SafeAPICall(callContext, func() (json.RawMessage, error) {
		return tc.client.Get(ctx, path, params)
	})
}

// fetchApps pulls the application table from /o/apps/mine, merging the
// admin_of and user_of maps the server returns. It is only ever invoked
// through the cache's single-flight refresh.
func (tc *ToolContext) fetchApps(ctx context.Context) ([]App, error) {
	params, err := tc.AuthParams(ctx, AuthArgs{CountlyAuthToken: argTokenFrom(ctx)})
	if err != nil {
		return nil, err
	}

	data, err := tc.Get(ctx, "fetch application list", "/o/apps/mine", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		AdminOf map[string]App `json:"admin_of"`
		UserOf  map[string]App `json:"user_of"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode application list: %w", err)
	}

	seen := make(map[string]bool)
	var table []App
	appendApps := func(apps map[string]App) {
		for id, app := range apps {
			if app.ID == "" {
				app.ID = id
			}
			if app.ID == "" || seen[app.ID] {
				continue
			}
			seen[app.ID] = true
			table = append(table, app)
		}
	}
	appendApps(payload.AdminOf)
	appendApps(payload.UserOf)

	sort.Slice(table, func(i, j int) bool { return table[i].Name < table[j].Name })

	tc.log.WithField("apps", len(table)).Debug("application table refreshed")
	return table, nil
}
