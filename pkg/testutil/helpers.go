package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewHTTPRequest builds a body-less request for handler tests
func NewHTTPRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// ExecuteRequest serves req through handler and returns the recorded response
func ExecuteRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// AssertStatus checks the status code and prints the body on mismatch
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "body: %s", rr.Body.String())
}

// ParseEnvelope decodes the {success, data, error} envelope, unmarshals data
// into target when both are present, and returns the success flag.
func ParseEnvelope(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) bool {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), "body: %s", rr.Body.String())
	if target != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, target), "data: %s", envelope.Data)
	}
	return envelope.Success
}

// DefaultTestContext returns a context cancelled after 30 seconds or at test end
func DefaultTestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// RequireEventually polls condition every interval and fails the test with msg after timeout
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msg string) {
	t.Helper()
	require.Eventually(t, condition, timeout, interval, msg)
}

// SkipIfShort skips integration tests under -short
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}
