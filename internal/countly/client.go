package countly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failing response body is retained for
// fault messages.
const maxErrorBody = 64 << 10

// Client issues read-only requests against a Countly server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given Countly base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET against path with the given query parameters and
// decodes the response body as JSON. Failures come back as tagged
// transport errors (HTTPError, NoResponseError) for the fault normalizer.
// Error tags carry the URL without the query string so tokens never leak
// into messages.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	plainURL := c.baseURL + path
	fullURL := plainURL
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NoResponseError{Method: http.MethodGet, URL: plainURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Method: http.MethodGet, URL: plainURL, Body: body}
	}

	var data json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return data, nil
}
