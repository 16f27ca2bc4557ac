package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the catalog has no matching resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned for 429 responses. It also matches ErrNetwork.
	ErrRateLimited = errors.New("rate limited")
)

// NewHTTPClient creates an HTTP client with the standard catalog timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// URLEncode percent-encodes s for use in a query string.
func URLEncode(s string) string { return url.QueryEscape(s) }

// NormalizeQuery trims and collapses internal whitespace, lowercasing the
// result. Two queries that normalize equally share a cache entry.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
