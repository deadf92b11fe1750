package countly

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FaultKind classifies a normalized API failure.
type FaultKind string

const (
	FaultClient       FaultKind = "client_error"
	FaultServer       FaultKind = "server_error"
	FaultNoResponse   FaultKind = "no_response"
	FaultUnclassified FaultKind = "unclassified"
)

// Fault is the uniform error surfaced for any failing API call. Raw
// transport errors never cross this boundary.
type Fault struct {
	Kind       FaultKind
	StatusCode int
	Message    string
	Details    any
}

func (f *Fault) Error() string { return f.Message }

// HTTPError tags a response that arrived with a non-success status.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s %s", e.StatusCode, e.Method, e.URL)
}

// NoResponseError tags a request that was sent but never answered.
type NoResponseError struct {
	Method string
	URL    string
	Err    error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("no response from %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NoResponseError) Unwrap() error { return e.Err }

// maxBodySummary caps serialized payload summaries so the final fault
// message stays well under ~400 characters regardless of payload size.
const maxBodySummary = 300

// ErrorDetails is the transport-independent view of a failure.
type ErrorDetails struct {
	StatusCode int
	Message    string
	Details    any
}

// ExtractErrorDetails flattens a tagged transport error into status code,
// message, and payload details.
func ExtractErrorDetails(err error) ErrorDetails {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		summary, details := summarizeBody(httpErr.Body)
		msg := fmt.Sprintf("HTTP %d error", httpErr.StatusCode)
		if summary != "" {
			msg += ": " + summary
		}
		if httpErr.Method != "" && httpErr.URL != "" {
			msg += fmt.Sprintf(" (%s %s)", httpErr.Method, httpErr.URL)
		}
		return ErrorDetails{StatusCode: httpErr.StatusCode, Message: msg, Details: details}
	}

	var noResp *NoResponseError
	if errors.As(err, &noResp) {
		msg := "No response from server"
		if noResp.Err != nil {
			msg += ": " + noResp.Err.Error()
		}
		if noResp.Method != "" && noResp.URL != "" {
			msg += fmt.Sprintf(" (%s %s)", noResp.Method, noResp.URL)
		}
		return ErrorDetails{Message: msg}
	}

	if err == nil {
		return ErrorDetails{Message: "unknown error"}
	}
	return ErrorDetails{Message: err.Error()}
}

// summarizeBody picks a human-readable summary out of a failing response
// body, preferring the structured fields Countly reports errors in.
func summarizeBody(body []byte) (string, any) {
	if len(body) == 0 {
		return "", nil
	}
	var structured map[string]any
	if err := json.Unmarshal(body, &structured); err == nil {
		for _, key := range []string{"error", "message", "result"} {
			if s, ok := structured[key].(string); ok && s != "" {
				return truncateSummary(s), structured
			}
		}
		if raw, err := json.Marshal(structured); err == nil {
			return truncateSummary(string(raw)), structured
		}
		return "", structured
	}
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return truncateSummary(plain), plain
	}
	return truncateSummary(string(body)), nil
}

func truncateSummary(s string) string {
	if len(s) <= maxBodySummary {
		return s
	}
	return s[:maxBodySummary] + "..."
}

// WrapAPIError normalizes any failure from a Countly API call into a
// classified Fault: 4xx responses are client errors, 5xx responses and
// unreachable upstreams are server errors, everything else is
// unclassified. callContext, when non-empty, prefixes the message.
func WrapAPIError(err error, callContext string) *Fault {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}

	d := ExtractErrorDetails(err)
	kind := FaultUnclassified
	switch {
	case d.StatusCode >= 400 && d.StatusCode < 500:
		kind = FaultClient
	case d.StatusCode >= 500:
		kind = FaultServer
	default:
		var noResp *NoResponseError
		if errors.As(err, &noResp) {
			kind = FaultServer
		}
	}

	msg := d.Message
	if callContext != "" {
		msg = callContext + ": " + msg
	}
	return &Fault{Kind: kind, StatusCode: d.StatusCode, Message: msg, Details: d.Details}
}

// SafeAPICall runs call and normalizes any failure through WrapAPIError.
// Every network-touching operation in the tool layer goes through here;
// on success the result is returned unchanged.
func SafeAPICall[T any](callContext string, call func() (T, error)) (T, error) {
	out, err := call()
	if err != nil {
		var zero T
		return zero, WrapAPIError(err, callContext)
	}
	return out, nil
}
