package integration

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

const wishlistPort = 8010

// baseURL returns the base URL for a service running on the given port.
func baseURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// seededProductID returns the stable catalog ID for the nth seeded product.
// It mirrors the ID scheme used by scripts/seed_catalog.go so flow tests can
// reference real rows without querying the database.
func seededProductID(index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("lux-fashion-catalog:%d", index)))
	hex := fmt.Sprintf("%x", h[:16])
	return fmt.Sprintf("%s-%s-4%s-%x%s-%s",
		hex[0:8],
		hex[8:12],
		hex[13:16],
		0x8|(h[8]&0x3),
		hex[17:20],
		hex[20:32],
	)
}

// skipIfNotRunning performs a quick health check against the service.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T, port int) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL(port) + "/health/live")
	if err != nil {
		t.Skipf("service on port %d not reachable (Docker not running?): %v", port, err)
	}
	resp.Body.Close()
}

// newSession creates a fresh anonymous session and returns its bearer token.
func newSession(t *testing.T) string {
	t.Helper()
	status, data := httpPost(t, baseURL(wishlistPort)+"/api/v1/sessions", nil, "")
	requireStatus(t, status, 201)
	return extractString(t, data, "token")
}

// httpGet performs an HTTP GET request with an optional Bearer token and
// returns the status code and decoded JSON body.
func httpGet(t *testing.T, url string, token string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodGet, url, nil, token)
}

// httpPost performs an HTTP POST request with a JSON body and optional token.
func httpPost(t *testing.T, url string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodPost, url, body, token)
}

// httpDelete performs an HTTP DELETE request with an optional Bearer token.
func httpDelete(t *testing.T, url string, token string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodDelete, url, nil, token)
}

// doJSONRequest is the internal helper for JSON HTTP requests.
func doJSONRequest(t *testing.T, method, url string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body failed: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBytes)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("creating %s request for %s failed: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// decodeBody reads the response body and attempts to decode it as JSON.
// If the body is empty or not JSON, it returns an empty map.
func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading response body failed: %v", err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		// Not JSON; return the raw string in a "raw" key for debugging.
		return map[string]interface{}{"raw": string(raw)}
	}
	return result
}

// requireStatus asserts that the HTTP status code matches the expected value.
func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d", want, got)
	}
}

// extractField extracts a value from a nested map using a dot-separated path.
// For example, extractField(data, "error.code") navigates data["error"]["code"].
func extractField(data map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = data
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// extractString is a convenience wrapper around extractField that returns a string.
func extractString(t *testing.T, data map[string]interface{}, path string) string {
	t.Helper()
	val := extractField(data, path)
	if val == nil {
		t.Fatalf("expected string at path %q, got nil", path)
	}
	s, ok := val.(string)
	if !ok {
		t.Fatalf("expected string at path %q, got %T: %v", path, val, val)
	}
	return s
}

// listItems extracts the items array from a wishlist list response.
func listItems(t *testing.T, data map[string]interface{}) []interface{} {
	t.Helper()
	val, ok := data["items"]
	if !ok {
		t.Fatalf("expected items array in response, got %v", data)
	}
	items, ok := val.([]interface{})
	if !ok {
		t.Fatalf("expected items to be an array, got %T", val)
	}
	return items
}
