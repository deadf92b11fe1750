package countly

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractErrorDetailsHTTPError(t *testing.T) {
	err := &HTTPError{
		StatusCode: 400,
		Method:     "GET",
		URL:        "https://countly.example.com/o",
		Body:       []byte(`{"error":"Invalid input parameter"}`),
	}

	d := ExtractErrorDetails(err)
	assert.Equal(t, 400, d.StatusCode)
	assert.Contains(t, d.Message, "HTTP 400 error")
	assert.Contains(t, d.Message, "Invalid input parameter")
	assert.Contains(t, d.Message, "GET https://countly.example.com/o")
}

func TestExtractErrorDetailsPrefersErrorOverMessage(t *testing.T) {
	err := &HTTPError{
		StatusCode: 400,
		Body:       []byte(`{"error":"bad app_id","message":"less specific","result":"noise"}`),
	}

	d := ExtractErrorDetails(err)
	assert.Contains(t, d.Message, "bad app_id")
	assert.NotContains(t, d.Message, "less specific")
}

func TestExtractErrorDetailsFallsBackToResult(t *testing.T) {
	err := &HTTPError{StatusCode: 401, Body: []byte(`{"result":"Token expired"}`)}

	d := ExtractErrorDetails(err)
	assert.Contains(t, d.Message, "Token expired")
}

func TestExtractErrorDetailsRawStringBody(t *testing.T) {
	err := &HTTPError{StatusCode: 502, Body: []byte("Bad Gateway")}

	d := ExtractErrorDetails(err)
	assert.Contains(t, d.Message, "Bad Gateway")
}

func TestExtractErrorDetailsTruncatesOversizedBody(t *testing.T) {
	body := fmt.Sprintf(`{"data":%q}`, strings.Repeat("x", 5000))
	err := &HTTPError{
		StatusCode: 500,
		Method:     "GET",
		URL:        "https://countly.example.com/o",
		Body:       []byte(body),
	}

	d := ExtractErrorDetails(err)
	assert.Less(t, len(d.Message), 400)
	assert.Contains(t, d.Message, "...")
}

func TestExtractErrorDetailsNoResponse(t *testing.T) {
	err := &NoResponseError{
		Method: "GET",
		URL:    "https://countly.example.com/o/ping",
		Err:    errors.New("connection refused"),
	}

	d := ExtractErrorDetails(err)
	assert.Zero(t, d.StatusCode)
	assert.Contains(t, d.Message, "No response from server")
	assert.Contains(t, d.Message, "connection refused")
	assert.Contains(t, d.Message, "GET https://countly.example.com/o/ping")
}

func TestExtractErrorDetailsPlainError(t *testing.T) {
	d := ExtractErrorDetails(errors.New("decode response: unexpected EOF"))
	assert.Zero(t, d.StatusCode)
	assert.Equal(t, "decode response: unexpected EOF", d.Message)
}

func TestWrapAPIErrorClassification(t *testing.T) {
	for _, status := range []int{401, 403, 404, 422} {
		fault := WrapAPIError(&HTTPError{StatusCode: status}, "")
		assert.Equal(t, FaultClient, fault.Kind, "status %d", status)
		assert.Equal(t, status, fault.StatusCode)
	}

	fault := WrapAPIError(&HTTPError{StatusCode: 500}, "")
	assert.Equal(t, FaultServer, fault.Kind)

	fault = WrapAPIError(&NoResponseError{Err: errors.New("timeout")}, "")
	assert.Equal(t, FaultServer, fault.Kind)
	assert.Zero(t, fault.StatusCode)

	fault = WrapAPIError(errors.New("decode response: unexpected EOF"), "")
	assert.Equal(t, FaultUnclassified, fault.Kind)
}

func TestWrapAPIErrorContextPrefix(t *testing.T) {
	fault := WrapAPIError(&HTTPError{StatusCode: 404, Body: []byte(`{"error":"not found"}`)}, "fetch dashboard")
	assert.True(t, strings.HasPrefix(fault.Message, "fetch dashboard: "), fault.Message)
}

func TestWrapAPIErrorPassesThroughFaults(t *testing.T) {
	original := &Fault{Kind: FaultClient, StatusCode: 400, Message: "already wrapped"}
	assert.Same(t, original, WrapAPIError(original, "outer"))
}

func TestSafeAPICallSuccess(t *testing.T) {
	out, err := SafeAPICall("noop", func() (string, error) { return "result", nil })
	require.NoError(t, err)
	assert.Equal(t, "result", out)
}

func TestSafeAPICallNormalizesFailures(t *testing.T) {
	_, err := SafeAPICall("fetch sessions", func() (string, error) {
		return "", &HTTPError{StatusCode: 500, Body: []byte(`{"error":"oops"}`)}
	})
	require.Error(t, err)

	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, FaultServer, fault.Kind)
	assert.Contains(t, fault.Message, "fetch sessions: ")

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr), "raw transport error escaped the boundary")
}
