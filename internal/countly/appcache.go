package countly

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// App resolution failures.
var (
	ErrMissingAppIdentifier = errors.New("either app_id or app_name is required")
	ErrAppNotFound          = errors.New("no application matches the given name")
	ErrAppAmbiguous         = errors.New("application name matches more than one application")
)

// App is one row of the server's application table.
type App struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Key      string `json:"key,omitempty"`
	Type     string `json:"type,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// AppFetcher retrieves the current application table from the server.
type AppFetcher func(ctx context.Context) ([]App, error)

// AppCache owns the application table. It refreshes the table through the
// injected fetcher with single-flight semantics: at most one fetch is in
// flight per process, and concurrent callers attach to it instead of
// issuing their own. A failed fetch leaves the previous table in place so
// the next caller may retry.
type AppCache struct {
	fetch AppFetcher
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	table     []App
	fetchedAt time.Time
}

// NewAppCache builds a cache around the injected fetcher.
func NewAppCache(fetch AppFetcher, ttl time.Duration) *AppCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AppCache{fetch: fetch, ttl: ttl, now: time.Now}
}

// Apps returns the application table. A fresh table is returned without
// any I/O; a stale or absent one triggers a single-flight refresh.
func (c *AppCache) Apps(ctx context.Context) ([]App, error) {
	if table, ok := c.freshTable(); ok {
		return table, nil
	}
	return c.refresh(ctx)
}

func (c *AppCache) freshTable() ([]App, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table == nil {
		return nil, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.table, true
}

// refresh fetches the table unconditionally. Concurrent callers collapse
// onto the same in-flight fetch and share its result or failure.
func (c *AppCache) refresh(ctx context.Context) ([]App, error) {
	out, err, _ := c.group.Do("apps", func() (any, error) {
		table, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.table = table
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]App), nil
}

// ResolveArgs are the identifier fields shared by app-scoped tools.
type ResolveArgs struct {
	AppID   string `json:"app_id,omitempty"`
	AppName string `json:"app_name,omitempty"`
}

// ResolveAppID translates a caller-supplied identifier into an app id. An
// explicit app_id is trusted verbatim; the server is the source of truth
// for its validity. An app_name is matched case-insensitively against the
// cached table, with one forced refresh on a miss so applications created
// after the last fetch still resolve. A name matching more than one
// application is refused rather than tie-broken.
func (c *AppCache) ResolveAppID(ctx context.Context, args ResolveArgs) (string, error) {
	if id := strings.TrimSpace(args.AppID); id != "" {
		return id, nil
	}
	name := strings.TrimSpace(args.AppName)
	if name == "" {
		return "", ErrMissingAppIdentifier
	}

	table, err := c.Apps(ctx)
	if err != nil {
		return "", err
	}
	matches := matchByName(table, name)
	if len(matches) == 0 {
		if table, err = c.refresh(ctx); err != nil {
			return "", err
		}
		matches = matchByName(table, name)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrAppNotFound, name)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAppAmbiguous, name)
	}
}

func matchByName(table []App, name string) []App {
	var matches []App
	for _, app := range table {
		if strings.EqualFold(app.Name, name) {
			matches = append(matches, app)
		}
	}
	return matches
}
